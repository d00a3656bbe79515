package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dof-engine/dofcore/input/mapper"
	"github.com/dof-engine/dofcore/input/statemachine"
)

const (
	keyJump    statemachine.LogicalKey = 1
	keyMoveX   statemachine.LogicalKey = 2
	keyAimDir  statemachine.LogicalKey = 3
	keyLookPad statemachine.LogicalKey = 4
)

func TestBindAllocatesContiguousRangesPerKind(t *testing.T) {
	m := mapper.New()
	m.AddKeyMapping(1, keyJump)
	m.AddKeyMapping(2, keyJump) // redundant second binding on the same key
	m.AddKeyAs1DRelativeMapping(3, keyMoveX, 1)
	m.AddKeyAs1DRelativeMapping(4, keyMoveX, -1)
	m.AddAxis2DMapping(5, keyLookPad)
	m.Bind()

	jumpRange, ok := m.GetInputSource(keyJump)
	require.True(t, ok)
	assert.Equal(t, statemachine.InputSourceRange{Kind: statemachine.RangeButton, Begin: 0, End: 2}, jumpRange)

	moveRange, ok := m.GetInputSource(keyMoveX)
	require.True(t, ok)
	assert.Equal(t, statemachine.InputSourceRange{Kind: statemachine.RangeAxis1D, Begin: 0, End: 2}, moveRange)

	lookRange, ok := m.GetInputSource(keyLookPad)
	require.True(t, ok)
	assert.Equal(t, statemachine.InputSourceRange{Kind: statemachine.RangeAxis2D, Begin: 0, End: 1}, lookRange)

	sources := m.NewInputSources()
	assert.Len(t, sources.Buttons, 2)
	assert.Len(t, sources.Axes1D, 2)
	assert.Len(t, sources.Axes2D, 1)
}

func TestOnKeyDownAndUpProduceButtonTraversers(t *testing.T) {
	m := mapper.New()
	m.AddKeyMapping(1, keyJump)
	m.Bind()

	down := m.OnKeyDown(1)
	assert.Equal(t, keyJump, down.Key)
	assert.IsType(t, statemachine.KeyDownTraverser{}, down.Payload)

	up := m.OnKeyUp(1)
	assert.IsType(t, statemachine.KeyUpTraverser{}, up.Payload)
}

func TestOnKeyDownForUnboundPlatformIsEmpty(t *testing.T) {
	m := mapper.New()
	m.Bind()
	tr := m.OnKeyDown(99)
	assert.IsType(t, statemachine.EmptyTraverser{}, tr.Payload)
}

func TestKeyAsAxisMappingNegatesOnRelease(t *testing.T) {
	m := mapper.New()
	m.AddKeyAs1DRelativeMapping(1, keyMoveX, 1.0)
	m.Bind()

	down := m.OnKeyDown(1)
	payload, ok := down.Payload.(statemachine.Axis1DTraverser)
	require.True(t, ok)
	assert.Equal(t, 1.0, payload.Delta)

	up := m.OnKeyUp(1)
	payload, ok = up.Payload.(statemachine.Axis1DTraverser)
	require.True(t, ok)
	assert.Equal(t, -1.0, payload.Delta)
}

func TestAxis1DRelativeAndAbsolute(t *testing.T) {
	m := mapper.New()
	m.AddAxis1DMapping(1, keyAimDir)
	m.Bind()

	rel := m.OnAxis1DRelative(1, 0.25)
	p, ok := rel.Payload.(statemachine.Axis1DTraverser)
	require.True(t, ok)
	assert.Equal(t, 0.25, p.Delta)
	assert.Equal(t, statemachine.AxisUnset, p.Absolute)

	abs := m.OnAxis1DAbsolute(1, 0.75)
	p, ok = abs.Payload.(statemachine.Axis1DTraverser)
	require.True(t, ok)
	assert.Equal(t, 0.75, p.Absolute)
	assert.Equal(t, statemachine.AxisUnset, p.Delta)
}

// TestRedundantKeyDownSuppressedEndToEnd wires the mapper into a built
// machine: two platform buttons bound to the same logical key must not
// re-traverse an edge when the second one presses while the first is
// still held.
func TestRedundantKeyDownSuppressedEndToEnd(t *testing.T) {
	m := mapper.New()
	m.AddKeyMapping(1, keyJump)
	m.AddKeyMapping(2, keyJump)
	m.Bind()

	b := statemachine.NewBuilder()
	pressed := b.AddNode(nil)
	b.AddEdge(statemachine.RootNode, pressed, keyJump, statemachine.OnKeyDown(), false, false)
	sm := b.Build(m.NewInputSources())

	sm.Traverse(m.OnKeyDown(1))
	require.True(t, sm.IsNodeActive(pressed))

	sm.Traverse(m.OnKeyDown(2))
	assert.True(t, sm.IsNodeActive(pressed))
}
