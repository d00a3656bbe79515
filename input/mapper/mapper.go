// Package mapper translates platform input events into
// statemachine.EdgeTraversers, owning the allocation of contiguous source
// slots per logical key that statemachine.InputSources addresses.
package mapper

import "github.com/dof-engine/dofcore/input/statemachine"

// PlatformID identifies a single physical input (a specific key, button,
// or axis) as reported by the platform layer.
type PlatformID uint32

type mappingKind int

const (
	kindButton mappingKind = iota
	kindAxis1D
	kindAxis2D
	kindKeyAsAxis1D
	kindKeyAsAxis2D
)

func (k mappingKind) rangeKind() statemachine.RangeKind {
	switch k {
	case kindButton:
		return statemachine.RangeButton
	case kindAxis1D, kindKeyAsAxis1D:
		return statemachine.RangeAxis1D
	default:
		return statemachine.RangeAxis2D
	}
}

type direction struct {
	amount1D float64
	amount2D [2]float64
}

type binding struct {
	key  statemachine.LogicalKey
	kind mappingKind
	dir  direction
}

type reverseEntry struct {
	kind        mappingKind
	platforms   []PlatformID
	index       map[PlatformID]uint32
	sourceRange statemachine.InputSourceRange
}

// Mapper owns the platform-id -> logical-key bindings and, after Bind, the
// concrete source range allocated to each bound key.
type Mapper struct {
	bindings map[PlatformID]binding
	reverse  map[statemachine.LogicalKey]*reverseEntry
	keyOrder []statemachine.LogicalKey
}

// New returns an empty Mapper.
func New() *Mapper {
	return &Mapper{
		bindings: make(map[PlatformID]binding),
		reverse:  make(map[statemachine.LogicalKey]*reverseEntry),
	}
}

func (m *Mapper) entryFor(key statemachine.LogicalKey, kind mappingKind) *reverseEntry {
	e, ok := m.reverse[key]
	if !ok {
		e = &reverseEntry{kind: kind, index: make(map[PlatformID]uint32)}
		m.reverse[key] = e
		m.keyOrder = append(m.keyOrder, key)
	}
	return e
}

func (m *Mapper) bind(p PlatformID, key statemachine.LogicalKey, kind mappingKind, dir direction) {
	m.bindings[p] = binding{key: key, kind: kind, dir: dir}
	e := m.entryFor(key, kind)
	e.platforms = append(e.platforms, p)
}

// AddKeyMapping binds a platform button to a logical key directly.
func (m *Mapper) AddKeyMapping(p PlatformID, key statemachine.LogicalKey) {
	m.bind(p, key, kindButton, direction{})
}

// AddAxis1DMapping binds a platform axis to a logical key, passed through
// unmodified.
func (m *Mapper) AddAxis1DMapping(p PlatformID, key statemachine.LogicalKey) {
	m.bind(p, key, kindAxis1D, direction{})
}

func (m *Mapper) AddAxis2DMapping(p PlatformID, key statemachine.LogicalKey) {
	m.bind(p, key, kindAxis2D, direction{})
}

// AddKeyAs1DRelativeMapping binds a platform button to a logical axis key:
// key-down reports amount as the axis delta, key-up reports -amount.
func (m *Mapper) AddKeyAs1DRelativeMapping(p PlatformID, key statemachine.LogicalKey, amount float64) {
	m.bind(p, key, kindKeyAsAxis1D, direction{amount1D: amount})
}

func (m *Mapper) AddKeyAs2DRelativeMapping(p PlatformID, key statemachine.LogicalKey, amount [2]float64) {
	m.bind(p, key, kindKeyAsAxis2D, direction{amount2D: amount})
}

// Bind allocates a contiguous source-slot range per logical key, sized to
// the number of platform inputs bound to it, and records each platform
// input's absolute source id within that range. Ranges for buttons,
// 1D axes, and 2D axes are allocated independently since each addresses a
// different InputSources slab. Allocation order follows first-bind order,
// so repeated Bind calls over the same binding sequence are deterministic.
func (m *Mapper) Bind() {
	var buttonCursor, axis1DCursor, axis2DCursor uint32
	for _, key := range m.keyOrder {
		e := m.reverse[key]
		kind := e.kind.rangeKind()
		var cursor *uint32
		switch kind {
		case statemachine.RangeButton:
			cursor = &buttonCursor
		case statemachine.RangeAxis1D:
			cursor = &axis1DCursor
		default:
			cursor = &axis2DCursor
		}

		begin := *cursor
		for i, p := range e.platforms {
			e.index[p] = begin + uint32(i)
		}
		*cursor += uint32(len(e.platforms))
		e.sourceRange = statemachine.InputSourceRange{Kind: kind, Begin: begin, End: *cursor}
	}
}

// GetInputSource returns the source range Bind allocated to key.
func (m *Mapper) GetInputSource(key statemachine.LogicalKey) (statemachine.InputSourceRange, bool) {
	e, ok := m.reverse[key]
	if !ok {
		return statemachine.InputSourceRange{}, false
	}
	return e.sourceRange, true
}

// NewInputSources allocates InputSources slabs sized to accommodate every
// range Bind has allocated so far.
func (m *Mapper) NewInputSources() statemachine.InputSources {
	var buttons, axes1D, axes2D uint32
	for _, e := range m.reverse {
		switch e.kind.rangeKind() {
		case statemachine.RangeButton:
			if e.sourceRange.End > buttons {
				buttons = e.sourceRange.End
			}
		case statemachine.RangeAxis1D:
			if e.sourceRange.End > axes1D {
				axes1D = e.sourceRange.End
			}
		default:
			if e.sourceRange.End > axes2D {
				axes2D = e.sourceRange.End
			}
		}
	}
	return statemachine.InputSources{
		Buttons: make([]bool, buttons),
		Axes1D:  make([]float64, axes1D),
		Axes2D:  make([][2]float64, axes2D),
	}
}

func (m *Mapper) traverserFor(p PlatformID) (binding, uint32, bool) {
	b, ok := m.bindings[p]
	if !ok {
		return binding{}, 0, false
	}
	e := m.reverse[b.key]
	return b, e.index[p], true
}

// OnKeyDown translates a platform key-down into an EdgeTraverser. For a
// direction-mapped key it reports the bound amount as an axis delta
// instead of a button payload.
func (m *Mapper) OnKeyDown(p PlatformID) statemachine.EdgeTraverser {
	b, src, ok := m.traverserFor(p)
	if !ok {
		return statemachine.EdgeTraverser{Payload: statemachine.EmptyTraverser{}}
	}
	e := m.reverse[b.key]
	base := statemachine.EdgeTraverser{Key: b.key, InputSource: src, SourceRange: e.sourceRange}
	switch b.kind {
	case kindButton:
		base.Payload = statemachine.KeyDownTraverser{}
	case kindKeyAsAxis1D:
		base.Payload = statemachine.Axis1DTraverser{Delta: b.dir.amount1D, Absolute: statemachine.AxisUnset}
	case kindKeyAsAxis2D:
		base.Payload = statemachine.Axis2DTraverser{Delta: b.dir.amount2D, Absolute: statemachine.Axis2DUnset}
	default:
		base.Payload = statemachine.EmptyTraverser{}
	}
	return base
}

// OnKeyUp translates a platform key-up, negating the bound amount for a
// direction-mapped key.
func (m *Mapper) OnKeyUp(p PlatformID) statemachine.EdgeTraverser {
	b, src, ok := m.traverserFor(p)
	if !ok {
		return statemachine.EdgeTraverser{Payload: statemachine.EmptyTraverser{}}
	}
	e := m.reverse[b.key]
	base := statemachine.EdgeTraverser{Key: b.key, InputSource: src, SourceRange: e.sourceRange}
	switch b.kind {
	case kindButton:
		base.Payload = statemachine.KeyUpTraverser{}
	case kindKeyAsAxis1D:
		base.Payload = statemachine.Axis1DTraverser{Delta: -b.dir.amount1D, Absolute: statemachine.AxisUnset}
	case kindKeyAsAxis2D:
		base.Payload = statemachine.Axis2DTraverser{
			Delta:    [2]float64{-b.dir.amount2D[0], -b.dir.amount2D[1]},
			Absolute: statemachine.Axis2DUnset,
		}
	default:
		base.Payload = statemachine.EmptyTraverser{}
	}
	return base
}

func (m *Mapper) onAxis1D(p PlatformID, value float64, relative bool) statemachine.EdgeTraverser {
	b, src, ok := m.traverserFor(p)
	if !ok {
		return statemachine.EdgeTraverser{Payload: statemachine.EmptyTraverser{}}
	}
	e := m.reverse[b.key]
	payload := statemachine.Axis1DTraverser{Delta: statemachine.AxisUnset, Absolute: statemachine.AxisUnset}
	if relative {
		payload.Delta = value
	} else {
		payload.Absolute = value
	}
	return statemachine.EdgeTraverser{Key: b.key, InputSource: src, SourceRange: e.sourceRange, Payload: payload}
}

func (m *Mapper) OnAxis1DRelative(p PlatformID, delta float64) statemachine.EdgeTraverser {
	return m.onAxis1D(p, delta, true)
}

func (m *Mapper) OnAxis1DAbsolute(p PlatformID, absolute float64) statemachine.EdgeTraverser {
	return m.onAxis1D(p, absolute, false)
}

func (m *Mapper) onAxis2D(p PlatformID, value [2]float64, relative bool) statemachine.EdgeTraverser {
	b, src, ok := m.traverserFor(p)
	if !ok {
		return statemachine.EdgeTraverser{Payload: statemachine.EmptyTraverser{}}
	}
	e := m.reverse[b.key]
	payload := statemachine.Axis2DTraverser{Delta: statemachine.Axis2DUnset, Absolute: statemachine.Axis2DUnset}
	if relative {
		payload.Delta = value
	} else {
		payload.Absolute = value
	}
	return statemachine.EdgeTraverser{Key: b.key, InputSource: src, SourceRange: e.sourceRange, Payload: payload}
}

func (m *Mapper) OnAxis2DRelative(p PlatformID, delta [2]float64) statemachine.EdgeTraverser {
	return m.onAxis2D(p, delta, true)
}

func (m *Mapper) OnAxis2DAbsolute(p PlatformID, absolute [2]float64) statemachine.EdgeTraverser {
	return m.onAxis2D(p, absolute, false)
}

// OnTick builds the time-step traverser. It carries InvalidKey since it is
// not associated with any one logical key — it accumulates time_active on
// every currently active node and only key-less (timeout) guards gate on
// it.
func (m *Mapper) OnTick(dt statemachine.Timespan) statemachine.EdgeTraverser {
	return statemachine.EdgeTraverser{Key: statemachine.InvalidKey, Payload: statemachine.TickTraverser{Elapsed: dt}}
}
