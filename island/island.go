// Package island implements an intrusive adjacency graph over free-list
// backed nodes, edges, and edge-entries, with on-demand connected-component
// recomputation subject to a per-node propagation mask.
package island

import (
	"github.com/dof-engine/dofcore/doferr"
	"github.com/dof-engine/dofcore/freelist"
)

// PropagationMask gates whether a node extends island traversal. A node
// with PropagateNone is still reachable (and listed) in an island formed by
// a propagating neighbor, but its own edges are never walked.
type PropagationMask uint8

const (
	PropagateNone PropagationMask = 0
	PropagateAll  PropagationMask = ^PropagationMask(0)
)

const sentinel = -1

type nodeSlot[K comparable] struct {
	key         K
	propagation PropagationMask
	edgeHead    int
	free        bool
}

func (n *nodeSlot[K]) MarkFree() {
	var zero K
	n.key = zero
	n.propagation = PropagateNone
	n.edgeHead = sentinel
	n.free = true
}
func (n *nodeSlot[K]) IsFree() bool { return n.free }

type edgeSlot[E any] struct {
	a, b           int
	entryA, entryB int
	data           E
	free           bool
}

func (e *edgeSlot[E]) MarkFree() {
	var zero E
	e.data = zero
	e.free = true
}
func (e *edgeSlot[E]) IsFree() bool { return e.free }

type entrySlot struct {
	edge int
	node int
	next int
	free bool
}

func (s *entrySlot) MarkFree() { s.edge, s.node, s.next, s.free = -1, -1, sentinel, true }
func (s *entrySlot) IsFree() bool { return s.free }

// Edge is a caller-facing view of an edge, keyed by the two node keys it
// connects.
type Edge[K comparable, E any] struct {
	A, B K
	Data E
}

// Island is one connected component produced by Rebuild: its propagating
// root plus every node and edge reachable from it, in discovery order.
type Island[K comparable, E any] struct {
	Nodes []K
	Edges []Edge[K, E]
}

// Graph is a node/edge graph addressed by caller-supplied comparable keys,
// carrying an E-typed payload per edge.
type Graph[K comparable, E any] struct {
	nodes   *freelist.List[nodeSlot[K], *nodeSlot[K]]
	edges   *freelist.List[edgeSlot[E], *edgeSlot[E]]
	entries *freelist.List[entrySlot, *entrySlot]
	byKey   map[K]int

	islands []Island[K, E]

	visitedNodes []bool
	visitedEdges []bool
	stack        []int
}

// New returns an empty Graph.
func New[K comparable, E any]() *Graph[K, E] {
	return &Graph[K, E]{
		nodes:   freelist.New[nodeSlot[K], *nodeSlot[K]](),
		edges:   freelist.New[edgeSlot[E], *edgeSlot[E]](),
		entries: freelist.New[entrySlot, *entrySlot](),
		byKey:   make(map[K]int),
	}
}

// AddNode registers key with the given propagation mask. Panics if key is
// already present.
func (g *Graph[K, E]) AddNode(key K, propagation PropagationMask) {
	if _, exists := g.byKey[key]; exists {
		panic("island: node key already registered")
	}
	idx := g.nodes.Insert(nodeSlot[K]{key: key, propagation: propagation, edgeHead: sentinel})
	g.byKey[key] = idx
}

// RemoveNode deletes key and every edge touching it. Removing an unknown
// key is a programmer error.
func (g *Graph[K, E]) RemoveNode(key K) {
	idx, ok := g.byKey[key]
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}
	n := g.nodes.At(idx)
	for e := n.edgeHead; e != sentinel; {
		entry := g.entries.At(e)
		next := entry.next
		edgeIdx := entry.edge
		edge := g.edges.At(edgeIdx)

		var mirrorNode, mirrorEntry int
		if edge.entryA == e {
			mirrorNode, mirrorEntry = edge.b, edge.entryB
		} else {
			mirrorNode, mirrorEntry = edge.a, edge.entryA
		}
		g.unlinkEntry(mirrorNode, mirrorEntry)
		g.entries.Erase(mirrorEntry)
		g.entries.Erase(e)
		g.edges.Erase(edgeIdx)

		e = next
	}
	g.nodes.Erase(idx)
	delete(g.byKey, key)
}

// AddEdge connects a and b, carrying data. Either endpoint being unknown is
// a programmer error (assert, per the failure-mode contract).
func (g *Graph[K, E]) AddEdge(a, b K, data E) {
	aIdx, ok := g.byKey[a]
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}
	bIdx, ok := g.byKey[b]
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}

	edgeIdx := g.edges.Insert(edgeSlot[E]{a: aIdx, b: bIdx, data: data})
	entryA := g.entries.Insert(entrySlot{edge: edgeIdx, node: aIdx, next: sentinel})
	entryB := g.entries.Insert(entrySlot{edge: edgeIdx, node: bIdx, next: sentinel})

	e := g.edges.At(edgeIdx)
	e.entryA, e.entryB = entryA, entryB

	g.appendEntry(aIdx, entryA)
	g.appendEntry(bIdx, entryB)
}

// RemoveEdge disconnects a and b. An absent edge is a programmer error.
func (g *Graph[K, E]) RemoveEdge(a, b K) {
	aIdx, ok := g.byKey[a]
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}
	bIdx, ok := g.byKey[b]
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}

	entryIdx, edgeIdx, ok := g.findEntry(aIdx, bIdx)
	if !ok {
		panic(doferr.ErrUnknownEndpoint)
	}
	edge := g.edges.At(edgeIdx)
	var mirrorNode, mirrorEntry int
	if edge.entryA == entryIdx {
		mirrorNode, mirrorEntry = edge.b, edge.entryB
	} else {
		mirrorNode, mirrorEntry = edge.a, edge.entryA
	}

	g.unlinkEntry(aIdx, entryIdx)
	g.unlinkEntry(mirrorNode, mirrorEntry)
	g.entries.Erase(entryIdx)
	g.entries.Erase(mirrorEntry)
	g.edges.Erase(edgeIdx)
}

func (g *Graph[K, E]) appendEntry(nodeIdx, entryIdx int) {
	n := g.nodes.At(nodeIdx)
	if n.edgeHead == sentinel {
		n.edgeHead = entryIdx
		return
	}
	cur := n.edgeHead
	for {
		ce := g.entries.At(cur)
		if ce.next == sentinel {
			ce.next = entryIdx
			return
		}
		cur = ce.next
	}
}

func (g *Graph[K, E]) unlinkEntry(nodeIdx, entryIdx int) {
	n := g.nodes.At(nodeIdx)
	if n.edgeHead == entryIdx {
		n.edgeHead = g.entries.At(entryIdx).next
		return
	}
	prev := n.edgeHead
	for prev != sentinel {
		prevEntry := g.entries.At(prev)
		if prevEntry.next == entryIdx {
			prevEntry.next = g.entries.At(entryIdx).next
			return
		}
		prev = prevEntry.next
	}
}

func (g *Graph[K, E]) findEntry(nodeIdx, otherIdx int) (entryIdx, edgeIdx int, ok bool) {
	n := g.nodes.At(nodeIdx)
	for e := n.edgeHead; e != sentinel; {
		entry := g.entries.At(e)
		other := g.edges.At(entry.edge).a
		if other == nodeIdx {
			other = g.edges.At(entry.edge).b
		}
		if other == otherIdx {
			return e, entry.edge, true
		}
		e = entry.next
	}
	return 0, 0, false
}

// Rebuild recomputes every island from scratch: a full connected-components
// pass gated by each node's propagation mask against gate. Discards any
// component with zero propagating nodes. Pass PropagateAll to ignore
// masking and include every propagating (non-PropagateNone) node.
func (g *Graph[K, E]) Rebuild(gate PropagationMask) {
	n := g.nodes.Len()
	if cap(g.visitedNodes) < n {
		g.visitedNodes = make([]bool, n)
	} else {
		g.visitedNodes = g.visitedNodes[:n]
		for i := range g.visitedNodes {
			g.visitedNodes[i] = false
		}
	}
	m := g.edges.Len()
	if cap(g.visitedEdges) < m {
		g.visitedEdges = make([]bool, m)
	} else {
		g.visitedEdges = g.visitedEdges[:m]
		for i := range g.visitedEdges {
			g.visitedEdges[i] = false
		}
	}
	g.islands = g.islands[:0]
	g.stack = g.stack[:0]

	propagates := func(idx int) bool {
		p := g.nodes.At(idx).propagation
		return p&gate != 0
	}

	for i := 0; i < n; i++ {
		if g.nodes.IsFree(i) || g.visitedNodes[i] || !propagates(i) {
			continue
		}

		var isl Island[K, E]
		g.stack = append(g.stack, i)
		g.visitedNodes[i] = true
		isl.Nodes = append(isl.Nodes, g.nodes.At(i).key)

		for len(g.stack) > 0 {
			cur := g.stack[len(g.stack)-1]
			g.stack = g.stack[:len(g.stack)-1]

			curNode := g.nodes.At(cur)
			for e := curNode.edgeHead; e != sentinel; {
				entry := g.entries.At(e)
				if g.visitedEdges[entry.edge] {
					e = entry.next
					continue
				}
				edge := g.edges.At(entry.edge)
				target := edge.a
				if target == cur {
					target = edge.b
				}

				g.visitedEdges[entry.edge] = true
				isl.Edges = append(isl.Edges, Edge[K, E]{
					A:    g.nodes.At(edge.a).key,
					B:    g.nodes.At(edge.b).key,
					Data: edge.data,
				})

				if !g.visitedNodes[target] {
					g.visitedNodes[target] = true
					isl.Nodes = append(isl.Nodes, g.nodes.At(target).key)
					if propagates(target) {
						g.stack = append(g.stack, target)
					}
				}
				e = entry.next
			}
		}

		g.islands = append(g.islands, isl)
	}
}

// Islands returns the components computed by the most recent Rebuild.
func (g *Graph[K, E]) Islands() []Island[K, E] { return g.islands }

// NodeCount returns the number of live nodes.
func (g *Graph[K, E]) NodeCount() int { return len(g.byKey) }
