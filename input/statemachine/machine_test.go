package statemachine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dof-engine/dofcore/input/statemachine"
)

const keyAction statemachine.LogicalKey = 1

func twoButtonSources() statemachine.InputSources {
	return statemachine.InputSources{Buttons: make([]bool, 2)}
}

func buttonRange() statemachine.InputSourceRange {
	return statemachine.InputSourceRange{Kind: statemachine.RangeButton, Begin: 0, End: 2}
}

// TestRedundantKeyDownIsSuppressed covers the scenario where two distinct
// platform buttons are bound to the same logical key: pressing the second
// one while the first is still held must not re-traverse the already-taken
// edge, because the key's aggregated button state did not change.
func TestRedundantKeyDownIsSuppressed(t *testing.T) {
	b := statemachine.NewBuilder()
	pressed := b.AddNode(nil)
	b.AddEdge(statemachine.RootNode, pressed, keyAction, statemachine.OnKeyDown(), false, false)

	m := b.Build(twoButtonSources())
	r := buttonRange()

	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 0, SourceRange: r, Payload: statemachine.KeyDownTraverser{}})
	require.True(t, m.IsNodeActive(pressed))

	// Second source presses down while the first is still held: the
	// aggregated button state across the range doesn't change, so the
	// traverser collapses to empty and nothing happens.
	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 1, SourceRange: r, Payload: statemachine.KeyDownTraverser{}})
	assert.True(t, m.IsNodeActive(pressed))
}

// TestChargeAndRelease covers player_root -key_down-> begin -> hold
// (unconditional) -key_up-> release: a single key-down traversal must
// cascade through the unconditional edge within the same call, and the
// matching key-up must then move from hold to release.
func TestChargeAndRelease(t *testing.T) {
	b := statemachine.NewBuilder()
	begin := b.AddNode(nil)
	hold := b.AddNode(nil)
	release := b.AddNode(nil)

	b.AddEdge(statemachine.RootNode, begin, keyAction, statemachine.OnKeyDown(), false, false)
	b.AddEdge(begin, hold, statemachine.InvalidKey, statemachine.Unconditional(), false, false)
	b.AddEdge(hold, release, keyAction, statemachine.OnKeyUp(), false, false)

	m := b.Build(statemachine.InputSources{Buttons: make([]bool, 1)})
	r := statemachine.InputSourceRange{Kind: statemachine.RangeButton, Begin: 0, End: 1}

	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 0, SourceRange: r, Payload: statemachine.KeyDownTraverser{}})
	assert.False(t, m.IsNodeActive(begin), "begin should have cascaded through the unconditional edge")
	assert.True(t, m.IsNodeActive(hold))

	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 0, SourceRange: r, Payload: statemachine.KeyUpTraverser{}})
	assert.False(t, m.IsNodeActive(hold))
	assert.True(t, m.IsNodeActive(release))
}

// TestConsumeEventStopsRemainingActiveNodes checks that consuming an edge
// stops the whole Traverse pass: an active node later in the active list
// (x, forked alongside a from root in the same pass) never gets its own
// matching edge evaluated once an earlier node (a) consumes the event.
func TestConsumeEventStopsRemainingActiveNodes(t *testing.T) {
	b := statemachine.NewBuilder()
	a := b.AddNode(nil)
	x := b.AddNode(nil)
	sideA := b.AddNode(nil)
	sideX := b.AddNode(nil)
	b.AddEdge(statemachine.RootNode, a, statemachine.InvalidKey, statemachine.Unconditional(), false, true)
	b.AddEdge(statemachine.RootNode, x, statemachine.InvalidKey, statemachine.Unconditional(), false, true)
	b.AddEdge(a, sideA, keyAction, statemachine.OnKeyDown(), true, false)
	b.AddEdge(x, sideX, keyAction, statemachine.OnKeyDown(), false, false)

	m := b.Build(statemachine.InputSources{Buttons: make([]bool, 1)})
	r := statemachine.InputSourceRange{Kind: statemachine.RangeButton, Begin: 0, End: 1}

	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 0, SourceRange: r, Payload: statemachine.KeyDownTraverser{}})
	require.True(t, m.IsNodeActive(sideA))
	assert.False(t, m.IsNodeActive(sideX), "x's edge must never be evaluated once a consumed the event first")
}

func TestEventPublishedOnNodeActivation(t *testing.T) {
	b := statemachine.NewBuilder()
	r := statemachine.InputSourceRange{Kind: statemachine.RangeAxis1D, Begin: 0, End: 1}
	moved := b.AddNode(&statemachine.EventDescription{ID: 7, InputSource: r, Payload: statemachine.Axis1DPayload{}})
	b.AddEdge(statemachine.RootNode, moved, keyAction, statemachine.OnDelta1D(0.5, 10), false, false)

	m := b.Build(statemachine.InputSources{Axes1D: make([]float64, 1)})
	m.Traverse(statemachine.EdgeTraverser{Key: keyAction, InputSource: 0, SourceRange: r, Payload: statemachine.Axis1DTraverser{Delta: 2, Absolute: statemachine.AxisUnset}})

	events := m.Events()
	require.Len(t, events, 1)
	assert.Equal(t, statemachine.EventID(7), events[0].ID)
	payload, ok := events[0].Payload.(statemachine.Axis1DPayload)
	require.True(t, ok)
	assert.Equal(t, 2.0, payload.Delta)
	assert.Equal(t, 2.0, payload.Absolute)

	m.ClearEvents()
	assert.Empty(t, m.Events())
}
