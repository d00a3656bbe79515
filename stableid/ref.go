package stableid

// Ref captures a key together with the version its mapping held at
// creation time. Deref succeeds iff the pool-stored version still matches,
// so a Ref taken before an erase-and-reuse cycle never silently resolves to
// the slot's new occupant.
type Ref struct {
	pool     *Pool
	key      Key
	expected uint32
}

// NewRef snapshots k's current version into a Ref. The key must already be
// valid in pool.
func NewRef(pool *Pool, k Key) Ref {
	e := pool.entryAt(k)
	return Ref{pool: pool, key: k, expected: e.version}
}

// Key returns the key this Ref was created from.
func (r Ref) Key() Key { return r.key }

// Deref returns the mapping iff the slot's version still matches what was
// observed at Ref creation.
func (r Ref) Deref() (Mapping, bool) {
	if r.pool == nil {
		return Mapping{}, false
	}
	e := r.pool.entryAt(r.key)
	if !e.valid || e.version != r.expected {
		return Mapping{}, false
	}
	return e.mapping, true
}
