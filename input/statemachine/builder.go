package statemachine

const sentinel = -1

type node struct {
	edgeHead   int
	event      EventID
	timeActive Timespan
	active     bool
}

type edge struct {
	to           NodeIndex
	key          LogicalKey
	guard        Guard
	consumeEvent bool
	fork         bool
	next         int
}

func appendEdge(n *node, idx int, edges []edge) {
	if n.edgeHead == sentinel {
		n.edgeHead = idx
		return
	}
	cur := n.edgeHead
	for edges[cur].next != sentinel {
		cur = edges[cur].next
	}
	edges[cur].next = idx
}

// Builder assembles the node/edge graph a Machine traverses. The zero
// value is not usable; use NewBuilder.
type Builder struct {
	nodes  []node
	edges  []edge
	events []EventDescription
}

// NewBuilder returns a Builder seeded with RootNode.
func NewBuilder() *Builder {
	b := &Builder{}
	b.nodes = append(b.nodes, node{edgeHead: sentinel, event: InvalidEvent})
	return b
}

// AddNode appends a node, optionally publishing desc's event when the node
// activates, and returns its index.
func (b *Builder) AddNode(desc *EventDescription) NodeIndex {
	idx := NodeIndex(len(b.nodes))
	n := node{edgeHead: sentinel, event: InvalidEvent}
	if desc != nil {
		n.event = EventID(len(b.events))
		b.events = append(b.events, *desc)
	}
	b.nodes = append(b.nodes, n)
	return idx
}

// AddEdge appends an edge from -> to, gated by key (InvalidKey to match
// any traverser's key) and guard. consume stops the rest of the calling
// Traverse pass once this edge fires; fork leaves the source node active
// alongside the destination instead of deactivating it.
func (b *Builder) AddEdge(from, to NodeIndex, key LogicalKey, guard Guard, consume, fork bool) {
	if guard == nil {
		guard = Unconditional()
	}
	idx := len(b.edges)
	b.edges = append(b.edges, edge{to: to, key: key, guard: guard, consumeEvent: consume, fork: fork, next: sentinel})
	appendEdge(&b.nodes[from], idx, b.edges)
}

// EventSource returns the currently resolved source range for the
// EventDescription a node publishes, zero-value if the node has none.
func (b *Builder) EventSource(node NodeIndex) (InputSourceRange, bool) {
	n := b.nodes[node]
	if n.event == InvalidEvent {
		return InputSourceRange{}, false
	}
	return b.events[n.event].InputSource, true
}

// SetEventSource resolves the input source range for the event published
// by node, called by a mapper's Bind once ranges are allocated.
func (b *Builder) SetEventSource(node NodeIndex, r InputSourceRange) {
	n := b.nodes[node]
	if n.event == InvalidEvent {
		return
	}
	b.events[n.event].InputSource = r
}

// Build finalizes the graph into a Machine with RootNode active and
// sources as the committed input values it mutates during traversal.
func (b *Builder) Build(sources InputSources) *Machine {
	nodes := make([]node, len(b.nodes))
	copy(nodes, b.nodes)
	nodes[RootNode].active = true

	return &Machine{
		nodes:   nodes,
		edges:   b.edges,
		events:  b.events,
		sources: sources,
		active:  []NodeIndex{RootNode},
	}
}
