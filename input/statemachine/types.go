// Package statemachine implements a guarded graph traversal machine: nodes
// are abstract input states, edges carry the conditions ("guards") under
// which traversal moves between them, and an EdgeTraverser carries one
// unit of translated platform input through the graph.
package statemachine

import "math"

type (
	LogicalKey uint32
	EventID    uint32
	NodeIndex  uint32
	Timespan   uint32
)

// RootNode is always active and represents "no logical state."
const RootNode NodeIndex = 0

const InvalidKey LogicalKey = LogicalKey(^uint32(0))
const InvalidEvent EventID = EventID(^uint32(0))

// AxisUnset marks an EdgeTraverser axis field (delta or absolute) as not
// supplied by the caller, to be derived from the other one.
const AxisUnset = math.MaxFloat64

// Axis2DUnset is the 2D analogue of AxisUnset.
var Axis2DUnset = [2]float64{math.MaxFloat64, math.MaxFloat64}

// RangeKind identifies which InputSources slab a range addresses.
type RangeKind int

const (
	RangeButton RangeKind = iota
	RangeAxis1D
	RangeAxis2D
)

// InputSourceRange is the contiguous span [Begin, End) of source slots of
// one kind. The zero value (Begin == End == 0) covers no slots, so
// accumulating over it is a no-op; Empty reports only the inverted case
// Begin > End.
type InputSourceRange struct {
	Kind       RangeKind
	Begin, End uint32
}

func (r InputSourceRange) Empty() bool { return r.Begin > r.End }

// InputSources holds the committed value of every bound platform input,
// addressed by the absolute source id a Mapper assigned it.
type InputSources struct {
	Buttons []bool
	Axes1D  []float64
	Axes2D  [][2]float64
}

func (s *InputSources) AccumulatedButton(r InputSourceRange) bool {
	for i := r.Begin; i < r.End; i++ {
		if s.Buttons[i] {
			return true
		}
	}
	return false
}

func (s *InputSources) AccumulatedAxis1D(r InputSourceRange) float64 {
	var total float64
	for i := r.Begin; i < r.End; i++ {
		total += s.Axes1D[i]
	}
	return total
}

func (s *InputSources) AccumulatedAxis2D(r InputSourceRange) [2]float64 {
	var total [2]float64
	for i := r.Begin; i < r.End; i++ {
		total[0] += s.Axes2D[i][0]
		total[1] += s.Axes2D[i][1]
	}
	return total
}

// EventPayload is the sum type carried by a published Event.
type EventPayload interface{ isEventPayload() }

type EmptyPayload struct{}

func (EmptyPayload) isEventPayload() {}

// Axis1DPayload carries a scalar axis value. Delta is only meaningful when
// the event was triggered by the edge that changed the axis; otherwise it
// is zero and Absolute is populated instead.
type Axis1DPayload struct{ Delta, Absolute float64 }

func (Axis1DPayload) isEventPayload() {}

type Axis2DPayload struct{ Delta, Absolute [2]float64 }

func (Axis2DPayload) isEventPayload() {}

// Event is published when traversal activates a node carrying an
// EventDescription.
type Event struct {
	ID         EventID
	TimeInNode Timespan
	Payload    EventPayload
}

// EventDescription templates the Event a node publishes on activation.
// Payload's concrete type selects which fill logic applies; InputSource is
// resolved from a logical key to a concrete range by a mapper's Bind.
type EventDescription struct {
	ID          EventID
	InputSource InputSourceRange
	Payload     EventPayload
}

// Guard is the sum type an edge evaluates to decide whether it may be
// traversed.
type Guard interface{ isGuard() }

type emptyGuard struct{}

func (emptyGuard) isGuard() {}

// Unconditional returns a guard that always passes.
func Unconditional() Guard { return emptyGuard{} }

type timeoutGuard struct{ after Timespan }

func (timeoutGuard) isGuard() {}

// OnTimeout returns a guard that passes once the active node's time_active
// reaches after.
func OnTimeout(after Timespan) Guard { return timeoutGuard{after: after} }

type keyDownGuard struct{}

func (keyDownGuard) isGuard() {}

// OnKeyDown returns a guard that passes when the traverser is a key-down
// for the edge's logical key.
func OnKeyDown() Guard { return keyDownGuard{} }

type keyUpGuard struct{}

func (keyUpGuard) isGuard() {}

// OnKeyUp returns a guard that passes when the traverser is a key-up for
// the edge's logical key.
func OnKeyUp() Guard { return keyUpGuard{} }

type delta1DGuard struct{ min, max float64 }

func (delta1DGuard) isGuard() {}

// OnDelta1D returns a guard that passes when the traverser's axis delta
// lies in [min,max].
func OnDelta1D(min, max float64) Guard { return delta1DGuard{min: min, max: max} }

type delta2DGuard struct{ min, max [2]float64 }

func (delta2DGuard) isGuard() {}

func OnDelta2D(min, max [2]float64) Guard { return delta2DGuard{min: min, max: max} }

type absolute1DGuard struct{ min, max float64 }

func (absolute1DGuard) isGuard() {}

// OnAbsolute1D returns a guard that passes when the traverser's axis
// absolute value lies in [min,max].
func OnAbsolute1D(min, max float64) Guard { return absolute1DGuard{min: min, max: max} }

type absolute2DGuard struct{ min, max [2]float64 }

func (absolute2DGuard) isGuard() {}

func OnAbsolute2D(min, max [2]float64) Guard { return absolute2DGuard{min: min, max: max} }

func between(v, min, max float64) bool { return v >= min && v <= max }

// TraverserPayload is the sum type carried by an EdgeTraverser.
type TraverserPayload interface{ isTraverserPayload() }

type EmptyTraverser struct{}

func (EmptyTraverser) isTraverserPayload() {}

type KeyDownTraverser struct{}

func (KeyDownTraverser) isTraverserPayload() {}

type KeyUpTraverser struct{}

func (KeyUpTraverser) isTraverserPayload() {}

type TickTraverser struct{ Elapsed Timespan }

func (TickTraverser) isTraverserPayload() {}

// Axis1DTraverser carries either Delta or Absolute (the other is
// AxisUnset); the machine derives the missing half from the current
// source value before committing.
type Axis1DTraverser struct{ Delta, Absolute float64 }

func (Axis1DTraverser) isTraverserPayload() {}

type Axis2DTraverser struct{ Delta, Absolute [2]float64 }

func (Axis2DTraverser) isTraverserPayload() {}

func isEmptyPayload(p TraverserPayload) bool {
	if p == nil {
		return true
	}
	_, ok := p.(EmptyTraverser)
	return ok
}

// EdgeTraverser is one unit of translated platform input pushed through
// Machine.Traverse.
type EdgeTraverser struct {
	Key         LogicalKey
	InputSource uint32
	SourceRange InputSourceRange
	Payload     TraverserPayload
}
