package main

import (
	"flag"
	"fmt"

	"github.com/dof-engine/dofcore/broadphase"
	"github.com/dof-engine/dofcore/dofconfig"
	"github.com/dof-engine/dofcore/input/statemachine"
	"github.com/dof-engine/dofcore/island"
)

func runCmd(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(`dofcli run - run a scenario's scripted operations once and print a summary

Usage:
  dofcli run <config.yaml>`)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("run: expected exactly one config path")
	}
	return runScenario(fs.Arg(0))
}

func runScenario(path string) error {
	s, err := dofconfig.Load(path)
	if err != nil {
		return err
	}
	in, err := build(s)
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	for i, op := range s.Operations {
		if err := applyOperation(in, op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Type, err)
		}
	}

	printSummary(in)
	return nil
}

func applyOperation(in *instances, op dofconfig.OperationConfig) error {
	switch op.Type {
	case "add_elements":
		id, ok := in.tablesByID[op.Table]
		if !ok {
			return fmt.Errorf("unknown table %q", op.Table)
		}
		_, err := in.db.AddElements(id, op.Count, nil)
		return err
	case "swap_remove":
		id, ok := in.tablesByID[op.Table]
		if !ok {
			return fmt.Errorf("unknown table %q", op.Table)
		}
		return in.db.SwapRemove(id, op.Index)
	case "rebuild_islands":
		in.graph.Rebuild(island.PropagateAll)
		return nil
	case "reinsert_box":
		old, ok := in.boxes[op.Key]
		if !ok {
			return fmt.Errorf("unknown broadphase key %d", op.Key)
		}
		in.sweep.Reinsert(broadphase.Key(op.Key), old.MinX, old.MinY, op.MinX, op.MinY, op.MaxX, op.MaxY)
		in.boxes[op.Key] = dofconfig.BoxConfig{Key: op.Key, MinX: op.MinX, MinY: op.MinY, MaxX: op.MaxX, MaxY: op.MaxY}
		return nil
	case "tick":
		in.machine.Traverse(statemachine.EdgeTraverser{
			Key:     statemachine.InvalidKey,
			Payload: statemachine.TickTraverser{Elapsed: statemachine.Timespan(op.DTMillis)},
		})
		return nil
	case "key_event":
		t, err := in.keyTraverser(op.EdgeKey, op.Kind)
		if err != nil {
			return err
		}
		in.machine.Traverse(t)
		return nil
	default:
		return fmt.Errorf("unknown operation type %q", op.Type)
	}
}

func printSummary(in *instances) {
	fmt.Println("tables:")
	for name, id := range in.tablesByID {
		t, _ := in.db.Table(id)
		fmt.Printf("  %-12s len=%d rows=%v\n", name, t.Len(), t.RowTypes())
	}

	fmt.Println("islands:")
	for i, isl := range in.graph.Islands() {
		fmt.Printf("  %d: nodes=%v edges=%d\n", i, isl.Nodes, len(isl.Edges))
	}

	fmt.Println("broadphase pairs:")
	for _, p := range in.sweep.Pairs() {
		fmt.Printf("  (%d, %d)\n", p.A, p.B)
	}

	fmt.Println("state machine events:")
	for _, ev := range in.machine.Events() {
		fmt.Printf("  id=%d time=%d\n", ev.ID, ev.TimeInNode)
	}
}
