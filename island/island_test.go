package island

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLine(t *testing.T) *Graph[string, int] {
	t.Helper()
	g := New[string, int]()
	for _, k := range []string{"A", "B", "C", "D", "E"} {
		g.AddNode(k, PropagateAll)
	}
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 2)
	g.AddEdge("C", "D", 3)
	g.AddEdge("C", "E", 4)
	return g
}

func islandNodeSets(islands []Island[string, int]) []map[string]bool {
	out := make([]map[string]bool, len(islands))
	for i, isl := range islands {
		m := make(map[string]bool, len(isl.Nodes))
		for _, n := range isl.Nodes {
			m[n] = true
		}
		out[i] = m
	}
	return out
}

func TestCutArticulationNode(t *testing.T) {
	g := buildLine(t)
	g.RemoveNode("C")
	g.Rebuild(PropagateAll)

	sets := islandNodeSets(g.Islands())
	require.Len(t, sets, 3)

	assert.Contains(t, sets, map[string]bool{"A": true, "B": true})
	assert.Contains(t, sets, map[string]bool{"D": true})
	assert.Contains(t, sets, map[string]bool{"E": true})
}

func TestBeforeCutIsSingleIsland(t *testing.T) {
	g := buildLine(t)
	g.Rebuild(PropagateAll)
	require.Len(t, g.Islands(), 1)
	assert.Len(t, g.Islands()[0].Nodes, 5)
	assert.Len(t, g.Islands()[0].Edges, 4)
}

func TestNonPropagatingNodeIsReachableButDoesNotExtend(t *testing.T) {
	g := New[string, int]()
	g.AddNode("root", PropagateAll)
	g.AddNode("mid", PropagateNone)
	g.AddNode("far", PropagateAll)
	g.AddEdge("root", "mid", 1)
	g.AddEdge("mid", "far", 2)

	g.Rebuild(PropagateAll)

	require.Len(t, g.Islands(), 2)
	rootIsland := islandNodeSets(g.Islands())
	assert.Contains(t, rootIsland, map[string]bool{"root": true, "mid": true})
	assert.Contains(t, rootIsland, map[string]bool{"far": true})
}

func TestIslandWithNoPropagatingNodesIsDiscarded(t *testing.T) {
	g := New[string, int]()
	g.AddNode("a", PropagateNone)
	g.AddNode("b", PropagateNone)
	g.AddEdge("a", "b", 1)

	g.Rebuild(PropagateAll)
	assert.Empty(t, g.Islands())
}

func TestAddEdgeUnknownEndpointPanics(t *testing.T) {
	g := New[string, int]()
	g.AddNode("a", PropagateAll)
	assert.Panics(t, func() { g.AddEdge("a", "ghost", 0) })
}

func TestRemoveAbsentEdgePanics(t *testing.T) {
	g := New[string, int]()
	g.AddNode("a", PropagateAll)
	g.AddNode("b", PropagateAll)
	assert.Panics(t, func() { g.RemoveEdge("a", "b") })
}

func TestRemoveNodeClearsMirrorEntries(t *testing.T) {
	g := buildLine(t)
	g.RemoveNode("B")

	// C should now only connect to D and E.
	g.Rebuild(PropagateAll)
	sets := islandNodeSets(g.Islands())
	require.Len(t, sets, 2)
	assert.Contains(t, sets, map[string]bool{"A": true})
	assert.Contains(t, sets, map[string]bool{"C": true, "D": true, "E": true})
}

func TestRebuildIsDeterministic(t *testing.T) {
	g := buildLine(t)
	g.Rebuild(PropagateAll)
	first := g.Islands()[0]
	g.Rebuild(PropagateAll)
	second := g.Islands()[0]
	assert.Equal(t, first, second)
}
