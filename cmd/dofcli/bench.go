package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/dof-engine/dofcore/dofconfig"
)

func benchCmd(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	n := fs.Int("n", 1000, "number of iterations")
	fs.Usage = func() {
		fmt.Println(`dofcli bench - repeat a scenario's operations and report timing per operation type

Usage:
  dofcli bench [-n iterations] <config.yaml>`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("bench: expected exactly one config path")
	}
	return benchScenario(fs.Arg(0), *n)
}

// benchScenario repeats the scenario's operations n times, reporting total
// elapsed time per operation type.
func benchScenario(path string, n int) error {
	s, err := dofconfig.Load(path)
	if err != nil {
		return err
	}

	elapsed := make(map[string]time.Duration)
	counts := make(map[string]int)

	for iter := 0; iter < n; iter++ {
		in, err := build(s)
		if err != nil {
			return fmt.Errorf("building scenario: %w", err)
		}
		for _, op := range s.Operations {
			start := time.Now()
			if err := applyOperation(in, op); err != nil {
				return fmt.Errorf("iteration %d operation %s: %w", iter, op.Type, err)
			}
			elapsed[op.Type] += time.Since(start)
			counts[op.Type]++
		}
	}

	fmt.Printf("bench: %d iterations\n", n)
	for opType, total := range elapsed {
		count := counts[opType]
		fmt.Printf("  %-16s total=%v avg=%v (n=%d)\n", opType, total, total/time.Duration(count), count)
	}
	return nil
}
