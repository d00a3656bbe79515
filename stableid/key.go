package stableid

import "github.com/dof-engine/dofcore/doferr"

// CreateKey allocates a fresh key, preferring a freed slot over extending
// the pool. Panics with doferr.ErrCapacityExhausted if the reservation is
// exhausted — a programmer error per spec, since it breaks the
// lock-free-read concurrency contract.
func (p *Pool) CreateKey() Key {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.createKeyLocked()
}

func (p *Pool) createKeyLocked() Key {
	if n := len(p.free); n > 0 {
		k := p.free[n-1]
		p.free = p.free[:n-1]
		e := p.entryAt(Key(k))
		e.valid = true
		return Key(k)
	}
	if p.count >= p.reservation {
		panic(doferr.ErrCapacityExhausted)
	}
	k := p.count
	p.count++
	p.entryAt(Key(k)).valid = true
	return Key(k)
}

// InsertKey writes m into k's slot without disturbing its version. Intended
// for first use after CreateKey/TryClaimKnown.
func (p *Pool) InsertKey(k Key, m Mapping) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.entryAt(k)
	e.mapping = m
	e.valid = true
}

// UpdateKey rewrites an already-inserted key's mapping (e.g. after a table
// migration moves the element it refers to), preserving its version so
// existing Refs keep resolving.
func (p *Pool) UpdateKey(k Key, m Mapping) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.entryAt(k)
	e.mapping = m
	e.valid = true
}

// EraseKey invalidates k, bumps its version so any outstanding Ref observes
// staleness, and returns the slot to the free stack.
func (p *Pool) EraseKey(k Key) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := p.entryAt(k)
	e.valid = false
	e.version++
	p.free = append(p.free, int(k))
}

// TryGet returns k's mapping iff its slot is currently valid. Lock-free:
// pages never move, and callers are responsible for the scheduler-level
// discipline that no writer touches a mapping a reader may be observing.
func (p *Pool) TryGet(k Key) (Mapping, bool) {
	if int(k) < 0 || int(k) >= p.count {
		return Mapping{}, false
	}
	e := p.entryAt(k)
	if !e.valid {
		return Mapping{}, false
	}
	return e.mapping, true
}

// TryClaimKnown registers a caller-supplied key (e.g. one restored from a
// prior run) as in-use rather than minting a new one. It succeeds if k is
// within the reservation and not already claimed; any slots it skips over
// while extending the pool are pushed onto the free stack so they remain
// available to future CreateKey calls.
func (p *Pool) TryClaimKnown(k Key) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	idx := int(k)
	if idx < 0 || idx >= p.reservation {
		return false
	}
	if idx >= p.count {
		for i := p.count; i < idx; i++ {
			p.free = append(p.free, i)
		}
		p.count = idx + 1
		p.entryAt(k).valid = true
		return true
	}
	e := p.entryAt(k)
	if e.valid {
		return false
	}
	p.removeFree(k)
	e.valid = true
	return true
}

func (p *Pool) removeFree(k Key) {
	for i, f := range p.free {
		if f == int(k) {
			p.free = append(p.free[:i], p.free[i+1:]...)
			return
		}
	}
}
