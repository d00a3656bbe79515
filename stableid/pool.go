// Package stableid implements the process-wide stable mapping pool: a paged
// vector of (table, index) mappings addressed by generationally-versioned
// keys, plus a Ref type that detects when the slot it points at has been
// reused for something else.
//
// Storage is paged rather than contiguous (grounded on the segmented-arena
// shape in a pack reference implementation of arena-backed storage) so
// pages never move on growth: a *Ref observes a fixed memory location for
// the lifetime of the pool, and TryGet needs no lock to read it.
package stableid

import "sync"

// pageSize bounds how many entries live in one allocation, so growing the
// pool never has to copy already-issued entries into a new backing array.
const pageSize = 4096

// Key identifies a slot in the pool. It stays valid (as an addressable
// slot) for the pool's lifetime; whether the slot currently holds the
// mapping the caller expects is a question for Ref, not Key.
type Key int32

// Mapping is the payload a pool slot holds: which table and element index
// a stable key currently refers to.
type Mapping struct {
	TableID uint32
	Index   uint32
}

type entry struct {
	mapping Mapping
	version uint32
	valid   bool
}

// Pool is a fixed-reservation paged vector of mappings plus a free-index
// stack. Reads (TryGet) are lock-free; mutations take Pool's mutex.
type Pool struct {
	mu          sync.Mutex
	pages       [][]entry
	reservation int
	count       int
	free        []int
}

// New returns a Pool reserving capacity for up to reservation keys. The
// reservation is fixed: CreateKey panics with doferr.ErrCapacityExhausted
// once it is exhausted, since exceeding it would invalidate the pool's
// lock-free-read contract (pages would need to move).
func New(reservation int) *Pool {
	if reservation < 0 {
		reservation = 0
	}
	pageCount := (reservation + pageSize - 1) / pageSize
	pages := make([][]entry, pageCount)
	remaining := reservation
	for i := range pages {
		n := pageSize
		if remaining < n {
			n = remaining
		}
		pages[i] = make([]entry, n)
		remaining -= n
	}
	return &Pool{pages: pages, reservation: reservation}
}

func (p *Pool) entryAt(k Key) *entry {
	idx := int(k)
	return &p.pages[idx/pageSize][idx%pageSize]
}

// Reservation returns the pool's fixed capacity.
func (p *Pool) Reservation() int { return p.reservation }
