// Package doferr collects the sentinel error kinds shared across the core
// packages, so callers can use errors.Is instead of comparing strings.
package doferr

import "errors"

// ErrStaleReference names the stale-reference kind: a Ref whose version no
// longer matches the version stored in the stable mapping pool. Never
// fatal. stableid.Ref.Deref and table.Database.Resolve report staleness
// with a false ok result rather than returning this error.
var ErrStaleReference = errors.New("dofcore: stable reference is stale")

// ErrRowTypeMismatch is returned when a table is asked for a row type it
// does not contain.
var ErrRowTypeMismatch = errors.New("dofcore: table does not contain row type")

// ErrUnknownTable is returned when a table id does not resolve to a live
// table in the database.
var ErrUnknownTable = errors.New("dofcore: unknown table")

// ErrCapacityExhausted indicates the stable id pool grew past its
// reservation. Call sites treat this as fatal: it invalidates the
// lock-free-read concurrency contract of the pool, so CreateKey panics with
// this error rather than returning it.
var ErrCapacityExhausted = errors.New("dofcore: stable id pool capacity exhausted")

// ErrUnknownEndpoint indicates an island graph edge referenced a node that
// was never added. Programmer error: AddEdge panics with this error.
var ErrUnknownEndpoint = errors.New("dofcore: island graph edge references unknown node")
