package row

import "github.com/dof-engine/dofcore/packedindex"

// Sparse is a bidirectional sparse-index <-> dense-slot map with a
// type-specific packed value store aligned to the dense side. Only set
// entries occupy storage; iteration visits the packed slots in current
// dense order.
//
// The sparse index space coincides with table element position, since a
// Sparse row lives inside a table like any other row — so SwapRemove must
// relabel tail entries rather than simply compacting a dense array.
type Sparse[T any] struct {
	sparseToDense *packedindex.Array // index sparse+1 -> dense (0 = unset)
	denseToSparse *packedindex.Array // index dense -> sparse
	values        []T                // values[dense-1], capacity-doubling, never shrinks
	tableLen      int
}

// NewSparse returns an empty Sparse row.
func NewSparse[T any]() *Sparse[T] {
	return &Sparse[T]{
		sparseToDense: packedindex.New(),
		denseToSparse: packedindex.New(),
	}
}

func (s *Sparse[T]) Len() int { return s.tableLen }

// Count returns the number of set entries.
func (s *Sparse[T]) Count() int { return s.denseToSparse.Len() }

// Contains reports whether sparse currently holds a value.
func (s *Sparse[T]) Contains(sparse int) bool {
	return s.sparseToDense.GetOrZero(sparse+1) != 0
}

// Get returns the value at sparse and whether it is set.
func (s *Sparse[T]) Get(sparse int) (T, bool) {
	dense := s.sparseToDense.GetOrZero(sparse + 1)
	if dense == 0 {
		var zero T
		return zero, false
	}
	return s.values[dense-1], true
}

// Insert sets sparse to v, returning the assigned dense slot (1-based).
// Overwrites in place if sparse was already set.
func (s *Sparse[T]) Insert(sparse int, v T) int {
	if dense := s.sparseToDense.GetOrZero(sparse + 1); dense != 0 {
		s.values[dense-1] = v
		return int(dense)
	}
	s.ensureSparseCapacity(sparse + 1)
	dense := s.denseToSparse.Push(uint64(sparse))
	s.values = growValues(s.values, dense)
	s.values[dense-1] = v
	s.sparseToDense.Set(sparse+1, uint64(dense))
	return dense
}

// Erase removes sparse if present, swap-removing the last dense slot into
// its place. No-op if sparse was not set.
func (s *Sparse[T]) Erase(sparse int) {
	dense := s.sparseToDense.GetOrZero(sparse + 1)
	if dense == 0 {
		return
	}
	lastDense := s.denseToSparse.Len()
	if int(dense) != lastDense {
		lastSparse := s.denseToSparse.Get(lastDense)
		s.denseToSparse.Set(int(dense), lastSparse)
		s.values[dense-1] = s.values[lastDense-1]
		s.sparseToDense.Set(int(lastSparse)+1, dense)
	}
	s.denseToSparse.Pop()
	var zero T
	s.values[lastDense-1] = zero
	s.values = s.values[:lastDense-1]
	s.sparseToDense.Set(sparse+1, 0)
}

// Iterate visits every set entry in current dense order, sparse index
// first, calling fn until it returns false or entries are exhausted.
func (s *Sparse[T]) Iterate(fn func(sparse int, value T) bool) {
	for dense := 1; dense <= s.denseToSparse.Len(); dense++ {
		sp := int(s.denseToSparse.Get(dense))
		if !fn(sp, s.values[dense-1]) {
			return
		}
	}
}

func (s *Sparse[T]) ensureSparseCapacity(n int) {
	if s.sparseToDense.Len() < n {
		s.sparseToDense.Resize(n, 0)
	}
}

func (s *Sparse[T]) Resize(newLen int) {
	oldLen := s.tableLen
	if newLen < oldLen {
		removed := oldLen - newLen
		remaining := newLen
		if removed <= remaining {
			for sp := newLen; sp < oldLen; sp++ {
				s.Erase(sp)
			}
		} else {
			var toErase []int
			for dense := 1; dense <= s.denseToSparse.Len(); dense++ {
				sp := int(s.denseToSparse.Get(dense))
				if sp >= newLen {
					toErase = append(toErase, sp)
				}
			}
			for _, sp := range toErase {
				s.Erase(sp)
			}
		}
	}
	s.sparseToDense.Resize(newLen, 0)
	s.tableLen = newLen
}

func (s *Sparse[T]) SwapRemove(begin, end, total int) {
	count := end - begin
	for k := count - 1; k >= 0; k-- {
		destPos := begin + k
		srcPos := total - count + k
		if destPos == srcPos {
			s.Erase(destPos)
			continue
		}
		s.Erase(destPos)
		if dense := s.sparseToDense.GetOrZero(srcPos + 1); dense != 0 {
			s.relocate(srcPos, destPos, dense)
		}
	}
	s.Resize(total - count)
}

// relocate rekeys an entry from oldSparse to newSparse without touching its
// dense slot or value, since dense-side storage is addressed by dense slot,
// not by sparse position.
func (s *Sparse[T]) relocate(oldSparse, newSparse int, dense uint64) {
	s.ensureSparseCapacity(newSparse + 1)
	s.sparseToDense.Set(newSparse+1, dense)
	s.denseToSparse.Set(int(dense), uint64(newSparse))
	s.sparseToDense.Set(oldSparse+1, 0)
}

func (s *Sparse[T]) Migrate(src Row, fromIdx, count, toIdx int) {
	var srcSparse *Sparse[T]
	if src != nil {
		var ok bool
		srcSparse, ok = src.(*Sparse[T])
		if !ok {
			panic("row: Migrate called with mismatched row type")
		}
	}
	for k := 0; k < count; k++ {
		dst := toIdx + k
		if srcSparse == nil {
			s.Erase(dst)
			continue
		}
		if v, ok := srcSparse.Get(fromIdx + k); ok {
			s.Insert(dst, v)
		} else {
			s.Erase(dst)
		}
	}
}

// growValues doubles capacity as needed and never shrinks it, matching the
// allocation policy for sparse rows' packed value storage.
func growValues[T any](values []T, need int) []T {
	if cap(values) >= need {
		return values[:need]
	}
	newCap := cap(values)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]T, need, newCap)
	copy(grown, values)
	return grown
}
