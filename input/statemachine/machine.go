package statemachine

// Machine is a built, traversable instance of a Builder's graph.
type Machine struct {
	nodes     []node
	edges     []edge
	events    []EventDescription
	sources   InputSources
	active    []NodeIndex
	published []Event
}

func fillAxis1D(t *Axis1DTraverser, sources *InputSources, idx uint32, r InputSourceRange) {
	abs := t.Absolute
	if abs == AxisUnset {
		abs = t.Delta + sources.Axes1D[idx]
	}
	t.Delta = abs - sources.Axes1D[idx]
	sources.Axes1D[idx] = abs
	t.Absolute = sources.AccumulatedAxis1D(r)
}

func fillAxis2D(t *Axis2DTraverser, sources *InputSources, idx uint32, r InputSourceRange) {
	for c := 0; c < 2; c++ {
		abs := t.Absolute[c]
		if abs == AxisUnset {
			abs = t.Delta[c] + sources.Axes2D[idx][c]
		}
		t.Delta[c] = abs - sources.Axes2D[idx][c]
		sources.Axes2D[idx][c] = abs
	}
	t.Absolute = sources.AccumulatedAxis2D(r)
}

func commitButton(sources *InputSources, idx uint32, r InputSourceRange, isDown bool) bool {
	before := sources.AccumulatedButton(r)
	sources.Buttons[idx] = isDown
	after := sources.AccumulatedButton(r)
	return before != after
}

// fillAndCommit derives whichever of delta/absolute an axis traverser
// omitted, writes the new value into sources, and for button traversers
// collapses into EmptyTraverser when the key's aggregated state (across
// every platform input bound to it) did not actually change.
func fillAndCommit(t *EdgeTraverser, sources *InputSources) {
	switch p := t.Payload.(type) {
	case Axis1DTraverser:
		fillAxis1D(&p, sources, t.InputSource, t.SourceRange)
		t.Payload = p
	case Axis2DTraverser:
		fillAxis2D(&p, sources, t.InputSource, t.SourceRange)
		t.Payload = p
	case KeyDownTraverser:
		if !commitButton(sources, t.InputSource, t.SourceRange, true) {
			t.Payload = EmptyTraverser{}
		}
	case KeyUpTraverser:
		if !commitButton(sources, t.InputSource, t.SourceRange, false) {
			t.Payload = EmptyTraverser{}
		}
	}
}

func shouldTraverse(e *edge, t EdgeTraverser, timeInNode Timespan) bool {
	if _, ok := e.guard.(emptyGuard); ok {
		return true
	}
	if e.key != InvalidKey && e.key != t.Key {
		return false
	}
	switch g := e.guard.(type) {
	case timeoutGuard:
		return timeInNode >= g.after
	case keyDownGuard:
		_, ok := t.Payload.(KeyDownTraverser)
		return ok
	case keyUpGuard:
		_, ok := t.Payload.(KeyUpTraverser)
		return ok
	case delta1DGuard:
		a, ok := t.Payload.(Axis1DTraverser)
		return ok && between(a.Delta, g.min, g.max)
	case delta2DGuard:
		a, ok := t.Payload.(Axis2DTraverser)
		return ok && between(a.Delta[0], g.min[0], g.max[0]) && between(a.Delta[1], g.min[1], g.max[1])
	case absolute1DGuard:
		a, ok := t.Payload.(Axis1DTraverser)
		return ok && between(a.Absolute, g.min, g.max)
	case absolute2DGuard:
		a, ok := t.Payload.(Axis2DTraverser)
		return ok && between(a.Absolute[0], g.min[0], g.max[0]) && between(a.Absolute[1], g.min[1], g.max[1])
	default:
		return false
	}
}

func fillEventPayload(desc EventDescription, t EdgeTraverser, sources *InputSources) EventPayload {
	switch desc.Payload.(type) {
	case Axis1DPayload:
		if desc.InputSource == t.SourceRange {
			if a, ok := t.Payload.(Axis1DTraverser); ok {
				return Axis1DPayload{Delta: a.Delta, Absolute: a.Absolute}
			}
		}
		return Axis1DPayload{Absolute: sources.AccumulatedAxis1D(desc.InputSource)}
	case Axis2DPayload:
		if desc.InputSource == t.SourceRange {
			if a, ok := t.Payload.(Axis2DTraverser); ok {
				return Axis2DPayload{Delta: a.Delta, Absolute: a.Absolute}
			}
		}
		return Axis2DPayload{Absolute: sources.AccumulatedAxis2D(desc.InputSource)}
	default:
		return EmptyPayload{}
	}
}

func removeActive(active []NodeIndex, i int) []NodeIndex {
	last := len(active) - 1
	active[i] = active[last]
	return active[:last]
}

// Traverse pushes one EdgeTraverser through every currently active node.
// It fills in whichever half of an axis traverser the caller omitted and
// commits the result to the machine's InputSources, suppresses redundant
// button traversers, and then walks each active node's edges in
// insertion order. An edge that fires may activate its destination
// (publishing that node's event, if any), deactivate the source node
// (unless the edge forks), and/or consume the traverser — which stops
// the whole pass, leaving any other currently-active nodes unvisited.
func (m *Machine) Traverse(t EdgeTraverser) {
	if isEmptyPayload(t.Payload) {
		return
	}
	fillAndCommit(&t, &m.sources)
	if isEmptyPayload(t.Payload) {
		return
	}

	tick, isTick := t.Payload.(TickTraverser)

	for i := 0; i < len(m.active); {
		activeIdx := m.active[i]
		n := &m.nodes[activeIdx]
		if isTick {
			n.timeActive += tick.Elapsed
		}

		removedActiveNode := false
		eventConsumed := false

		for e := n.edgeHead; e != sentinel; {
			edg := &m.edges[e]
			if !shouldTraverse(edg, t, n.timeActive) {
				e = edg.next
				continue
			}
			if edg.consumeEvent {
				eventConsumed = true
			}

			if edg.to != RootNode && !m.nodes[edg.to].active {
				dest := &m.nodes[edg.to]
				dest.active = true
				m.active = append(m.active, edg.to)
				if dest.event != InvalidEvent {
					desc := m.events[dest.event]
					m.published = append(m.published, Event{
						ID:         desc.ID,
						TimeInNode: n.timeActive,
						Payload:    fillEventPayload(desc, t, &m.sources),
					})
				}
			}

			if activeIdx != RootNode && (edg.to == RootNode || !edg.fork) {
				n.active = false
				n.timeActive = 0
				m.active = removeActive(m.active, i)
				removedActiveNode = true
				break
			}
			if edg.consumeEvent {
				break
			}
			e = edg.next
		}

		if eventConsumed {
			return
		}
		if !removedActiveNode {
			i++
		}
	}
}

func (m *Machine) IsNodeActive(n NodeIndex) bool { return m.nodes[n].active }

func (m *Machine) GetAbsoluteAxis1D(r InputSourceRange) float64 { return m.sources.AccumulatedAxis1D(r) }

func (m *Machine) GetAbsoluteAxis2D(r InputSourceRange) [2]float64 {
	return m.sources.AccumulatedAxis2D(r)
}

func (m *Machine) GetButtonPressed(r InputSourceRange) bool { return m.sources.AccumulatedButton(r) }

// Events returns every Event published since the last ClearEvents.
func (m *Machine) Events() []Event { return m.published }

func (m *Machine) ClearEvents() { m.published = m.published[:0] }
