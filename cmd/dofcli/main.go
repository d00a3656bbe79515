// dofcli is a unified CLI for running and inspecting dofcore scenarios.
//
// # Commands
//
//	dofcli run <config.yaml>             Run a scenario's scripted operations once
//	dofcli bench [-n N] <config.yaml>    Repeat a scenario's operations and time them
//	dofcli serve [-port N] <config.yaml> Serve a scenario's live state over HTTP
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	rest := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runCmd(rest)
	case "bench":
		err = benchCmd(rest)
	case "serve":
		err = serveCmd(rest)
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("dofcli version %s\n", version)
		return
	default:
		fmt.Fprintf(os.Stderr, "dofcli: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "dofcli %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`dofcli - run and inspect dofcore scenarios

Usage:
  dofcli <command> [flags] <config.yaml>

Commands:
  run      Run a scenario's scripted operations once and print a summary
  bench    Repeat a scenario's operations and report timing per operation type
  serve    Serve a scenario's live state over the introspection API

Examples:
  dofcli run scenario.yaml
  dofcli bench -n 5000 scenario.yaml
  dofcli serve -port 8099 scenario.yaml

Run 'dofcli <command> -h' for flags specific to a command.`)
}
