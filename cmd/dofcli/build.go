package main

import (
	"fmt"

	"github.com/dof-engine/dofcore/broadphase"
	"github.com/dof-engine/dofcore/dofconfig"
	"github.com/dof-engine/dofcore/input/statemachine"
	"github.com/dof-engine/dofcore/island"
	"github.com/dof-engine/dofcore/row"
	"github.com/dof-engine/dofcore/table"
)

// instances is everything a dofcli run/bench/serve invocation builds from
// a Scenario, plus the name->id lookups operations address tables, island
// nodes, and logical keys by.
type instances struct {
	db         *table.Database
	tablesByID map[string]table.TableID

	graph *island.Graph[string, struct{}]

	sweep *broadphase.Sweep2D
	boxes map[uint64]dofconfig.BoxConfig

	machine      *statemachine.Machine
	keysByID     map[string]statemachine.LogicalKey
	keyRangeByID map[string]statemachine.InputSourceRange
}

func build(s *dofconfig.Scenario) (*instances, error) {
	in := &instances{
		tablesByID:   make(map[string]table.TableID),
		sweep:        broadphase.New(),
		boxes:        make(map[uint64]dofconfig.BoxConfig),
		keysByID:     make(map[string]statemachine.LogicalKey),
		keyRangeByID: make(map[string]statemachine.InputSourceRange),
	}

	in.db = table.NewDatabase(s.Pool.Reservation)
	for _, tc := range s.Tables {
		b := table.NewBuilder()
		for i, rc := range tc.Rows {
			rt := row.RowType(i)
			r, err := buildRow(rc.Kind)
			if err != nil {
				return nil, fmt.Errorf("table %s row %s: %w", tc.Name, rc.Name, err)
			}
			if rc.Kind == "stable_id" {
				b.WithStableIDRow(rt)
				continue
			}
			b.WithRow(rt, r)
		}
		in.tablesByID[tc.Name] = in.db.CreateTable(b)
	}

	in.graph = island.New[string, struct{}]()
	for _, n := range s.Island.Nodes {
		in.graph.AddNode(n, island.PropagateAll)
	}
	for _, e := range s.Island.Edges {
		in.graph.AddEdge(e.A, e.B, struct{}{})
	}

	for _, box := range s.Broadphase {
		in.sweep.Insert(broadphase.Key(box.Key), box.MinX, box.MinY, box.MaxX, box.MaxY)
		in.boxes[box.Key] = box
	}

	sb := statemachine.NewBuilder()
	nodesByName := map[string]statemachine.NodeIndex{"": statemachine.RootNode}
	for _, nc := range s.StateMachine.Nodes {
		var desc *statemachine.EventDescription
		if nc.Event != nil {
			desc = &statemachine.EventDescription{ID: statemachine.EventID(nc.Event.ID)}
		}
		nodesByName[nc.Name] = sb.AddNode(desc)
	}
	nextKey := statemachine.LogicalKey(1)
	for _, ec := range s.StateMachine.Edges {
		from, ok := nodesByName[ec.From]
		if !ok {
			return nil, fmt.Errorf("state machine edge references unknown node %q", ec.From)
		}
		to, ok := nodesByName[ec.To]
		if !ok {
			return nil, fmt.Errorf("state machine edge references unknown node %q", ec.To)
		}
		key := statemachine.InvalidKey
		if ec.Key != "" {
			k, ok := in.keysByID[ec.Key]
			if !ok {
				k = nextKey
				nextKey++
				in.keysByID[ec.Key] = k
				// Each logical key gets its own single-slot button range;
				// dofcli's demo scenarios drive the state machine with
				// on/off key events only, never raw axis input.
				slot := uint32(k - 1)
				in.keyRangeByID[ec.Key] = statemachine.InputSourceRange{Kind: statemachine.RangeButton, Begin: slot, End: slot + 1}
			}
			key = k
		}
		guard, err := dofconfig.BuildGuard(ec.Guard)
		if err != nil {
			return nil, err
		}
		sb.AddEdge(from, to, key, guard, ec.Consume, ec.Fork)
	}
	in.machine = sb.Build(statemachine.InputSources{Buttons: make([]bool, nextKey-1)})

	return in, nil
}

// keyTraverser builds the EdgeTraverser for a key_event operation.
func (in *instances) keyTraverser(edgeKey, kind string) (statemachine.EdgeTraverser, error) {
	key, ok := in.keysByID[edgeKey]
	if !ok {
		return statemachine.EdgeTraverser{}, fmt.Errorf("unknown edge key %q", edgeKey)
	}
	r := in.keyRangeByID[edgeKey]
	t := statemachine.EdgeTraverser{Key: key, InputSource: r.Begin, SourceRange: r}
	switch kind {
	case "down":
		t.Payload = statemachine.KeyDownTraverser{}
	case "up":
		t.Payload = statemachine.KeyUpTraverser{}
	default:
		return statemachine.EdgeTraverser{}, fmt.Errorf("unknown key_event kind %q", kind)
	}
	return t, nil
}

func buildRow(kind string) (row.Row, error) {
	switch kind {
	case "plain_f64":
		return row.NewPlain[float64](), nil
	case "plain_i64":
		return row.NewPlain[int64](), nil
	case "sparse_f64":
		return row.NewSparse[float64](), nil
	case "sparse_flag":
		return row.NewSparseFlag(), nil
	case "stable_id":
		// handled by WithStableIDRow at the call site, which discards the
		// nil row returned here.
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown row kind %q", kind)
	}
}
