package main

import (
	"flag"
	"fmt"

	"github.com/dof-engine/dofcore/dofconfig"
	"github.com/dof-engine/dofcore/dofdebug"
)

func serveCmd(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8099, "introspection server port")
	fs.Usage = func() {
		fmt.Println(`dofcli serve - serve a scenario's live instances over the introspection API

Usage:
  dofcli serve [-port N] <config.yaml>`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("serve: expected exactly one config path")
	}
	return serveScenario(fs.Arg(0), *port)
}

// serveScenario builds the scenario's instances once and serves them over
// dofdebug's read-only introspection API until interrupted.
func serveScenario(path string, port int) error {
	s, err := dofconfig.Load(path)
	if err != nil {
		return err
	}
	in, err := build(s)
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	srv := dofdebug.New(port, in.db, in.tablesByID, in.graph, in.sweep)
	return srv.Run()
}
