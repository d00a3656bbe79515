// Package broadphase implements 2-axis sweep-and-prune: two sorted
// boundary lists (begin/end sentinels per key) whose overlap reconciles
// into 2D collision pairs as keys are inserted, erased, and reinserted.
package broadphase

import "sort"

// Key identifies an object tracked by the sweep structure.
type Key uint64

// Pair is a canonically ordered (min key first) overlapping pair.
type Pair struct {
	A, B Key
}

func canon(a, b Key) Pair {
	if a <= b {
		return Pair{a, b}
	}
	return Pair{b, a}
}

type element struct {
	boundary float64
	key      Key
	isStart  bool
}

// axis is a single sorted-by-boundary list carrying a begin and an end
// sentinel per inserted key.
type axis struct {
	elems []element
}

func (a *axis) lowerBound(v float64) int {
	return sort.Search(len(a.elems), func(i int) bool { return a.elems[i].boundary >= v })
}

func (a *axis) insertAt(i int, e element) {
	a.elems = append(a.elems, element{})
	copy(a.elems[i+1:], a.elems[i:])
	a.elems[i] = e
}

func (a *axis) removeAt(i int) {
	copy(a.elems[i:], a.elems[i+1:])
	a.elems = a.elems[:len(a.elems)-1]
}

// insert places key's [min,max) interval, returning the distinct keys whose
// intervals overlap it on this axis: those with a boundary inside [min,max)
// and those whose interval already contains min.
func (a *axis) insert(key Key, min, max float64) []Key {
	begin := a.lowerBound(min)
	a.insertAt(begin, element{boundary: min, key: key, isStart: true})

	var gained []Key
	seen := make(map[Key]bool)
	open := make(map[Key]bool)
	for _, e := range a.elems[:begin] {
		open[e.key] = e.isStart
	}
	for k, isOpen := range open {
		if isOpen {
			seen[k] = true
			gained = append(gained, k)
		}
	}
	i := begin + 1
	for i < len(a.elems) && a.elems[i].boundary < max {
		k := a.elems[i].key
		if !seen[k] {
			seen[k] = true
			gained = append(gained, k)
		}
		i++
	}
	a.insertAt(i, element{boundary: max, key: key, isStart: false})
	return gained
}

func (a *axis) findBegin(key Key, min float64) int {
	i := a.lowerBound(min)
	for i < len(a.elems) && !(a.elems[i].key == key && a.elems[i].isStart) {
		i++
	}
	return i
}

// erase removes key's begin/end pair (located via its current min
// boundary), returning the distinct keys whose intervals overlapped it on
// this axis, including those whose interval contained it.
func (a *axis) erase(key Key, min float64) []Key {
	begin := a.findBegin(key, min)
	var lost []Key
	seen := make(map[Key]bool)
	open := make(map[Key]bool)
	for _, e := range a.elems[:begin] {
		open[e.key] = e.isStart
	}
	for k, isOpen := range open {
		if isOpen {
			seen[k] = true
			lost = append(lost, k)
		}
	}
	end := begin + 1
	for a.elems[end].key != key {
		k := a.elems[end].key
		if !seen[k] {
			seen[k] = true
			lost = append(lost, k)
		}
		end++
	}
	a.removeAt(end)
	a.removeAt(begin)
	return lost
}

// Sweep2D tracks axis-aligned boxes on two independent sorted axes and
// reconciles their overlap into 2D collision pairs.
type Sweep2D struct {
	x, y axis
}

// New returns an empty Sweep2D.
func New() *Sweep2D { return &Sweep2D{} }

func toSet(ks []Key) map[Key]bool {
	s := make(map[Key]bool, len(ks))
	for _, k := range ks {
		s[k] = true
	}
	return s
}

func overlapSet(xs, ys []Key) map[Key]bool {
	xset := toSet(xs)
	out := make(map[Key]bool)
	for _, k := range ys {
		if xset[k] {
			out[k] = true
		}
	}
	return out
}

func sortPairs(ps []Pair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].A != ps[j].A {
			return ps[i].A < ps[j].A
		}
		return ps[i].B < ps[j].B
	})
}

func pairsFromSet(key Key, s map[Key]bool) []Pair {
	out := make([]Pair, 0, len(s))
	for k := range s {
		out = append(out, canon(key, k))
	}
	sortPairs(out)
	return out
}

// allOverlappingPairs computes every pair of keys currently overlapping on
// this axis via a single left-to-right sweep over the open intervals.
func (a *axis) allOverlappingPairs() map[Pair]bool {
	out := make(map[Pair]bool)
	var active []Key
	for _, e := range a.elems {
		if e.isStart {
			for _, k := range active {
				out[canon(k, e.key)] = true
			}
			active = append(active, e.key)
			continue
		}
		for i, k := range active {
			if k == e.key {
				active = append(active[:i], active[i+1:]...)
				break
			}
		}
	}
	return out
}

// Insert adds key's box, returning pairs newly overlapping on both axes.
func (s *Sweep2D) Insert(key Key, minX, minY, maxX, maxY float64) []Pair {
	xs := s.x.insert(key, minX, maxX)
	ys := s.y.insert(key, minY, maxY)
	return pairsFromSet(key, overlapSet(xs, ys))
}

// Erase removes key's box, located via its current minimum corner,
// returning pairs that were overlapping on both axes.
func (s *Sweep2D) Erase(key Key, oldMinX, oldMinY float64) []Pair {
	xs := s.x.erase(key, oldMinX)
	ys := s.y.erase(key, oldMinY)
	return pairsFromSet(key, overlapSet(xs, ys))
}

// Reinsert moves key from its old box (located via its old minimum
// corner) to the new box, returning the pairs gained and lost on both
// axes as a result.
func (s *Sweep2D) Reinsert(key Key, oldMinX, oldMinY, newMinX, newMinY, newMaxX, newMaxY float64) (gained, lost []Pair) {
	beforeX := s.x.erase(key, oldMinX)
	beforeY := s.y.erase(key, oldMinY)
	afterX := s.x.insert(key, newMinX, newMaxX)
	afterY := s.y.insert(key, newMinY, newMaxY)

	before := overlapSet(beforeX, beforeY)
	after := overlapSet(afterX, afterY)

	lostSet := make(map[Key]bool)
	for k := range before {
		if !after[k] {
			lostSet[k] = true
		}
	}
	gainedSet := make(map[Key]bool)
	for k := range after {
		if !before[k] {
			gainedSet[k] = true
		}
	}
	return pairsFromSet(key, gainedSet), pairsFromSet(key, lostSet)
}

// Pairs recomputes every pair currently overlapping on both axes. It is a
// read-only accessor for introspection; normal operation should rely on
// the incremental pairs returned by Insert/Erase/Reinsert instead of
// polling this.
func (s *Sweep2D) Pairs() []Pair {
	xs := s.x.allOverlappingPairs()
	ys := s.y.allOverlappingPairs()
	out := make([]Pair, 0, len(xs))
	for p := range xs {
		if ys[p] {
			out = append(out, p)
		}
	}
	sortPairs(out)
	return out
}
