package row

import "github.com/dof-engine/dofcore/packedindex"

// SparseFlag is a Sparse row with no payload: it records presence only,
// using the same sparse<->dense packed-index machinery.
type SparseFlag struct {
	sparseToDense *packedindex.Array
	denseToSparse *packedindex.Array
	tableLen      int
}

func NewSparseFlag() *SparseFlag {
	return &SparseFlag{
		sparseToDense: packedindex.New(),
		denseToSparse: packedindex.New(),
	}
}

func (s *SparseFlag) Len() int   { return s.tableLen }
func (s *SparseFlag) Count() int { return s.denseToSparse.Len() }

func (s *SparseFlag) Contains(sparse int) bool {
	return s.sparseToDense.GetOrZero(sparse+1) != 0
}

func (s *SparseFlag) Set(sparse int) {
	if s.Contains(sparse) {
		return
	}
	s.ensureSparseCapacity(sparse + 1)
	dense := s.denseToSparse.Push(uint64(sparse))
	s.sparseToDense.Set(sparse+1, uint64(dense))
}

func (s *SparseFlag) Erase(sparse int) {
	dense := s.sparseToDense.GetOrZero(sparse + 1)
	if dense == 0 {
		return
	}
	lastDense := s.denseToSparse.Len()
	if int(dense) != lastDense {
		lastSparse := s.denseToSparse.Get(lastDense)
		s.denseToSparse.Set(int(dense), lastSparse)
		s.sparseToDense.Set(int(lastSparse)+1, dense)
	}
	s.denseToSparse.Pop()
	s.sparseToDense.Set(sparse+1, 0)
}

func (s *SparseFlag) Iterate(fn func(sparse int) bool) {
	for dense := 1; dense <= s.denseToSparse.Len(); dense++ {
		if !fn(int(s.denseToSparse.Get(dense))) {
			return
		}
	}
}

func (s *SparseFlag) ensureSparseCapacity(n int) {
	if s.sparseToDense.Len() < n {
		s.sparseToDense.Resize(n, 0)
	}
}

func (s *SparseFlag) Resize(newLen int) {
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

func (s *SparseFlag) SwapRemove(begin, end, total int) {
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
			s.ensureSparseCapacity(destPos + 1)
			s.sparseToDense.Set(destPos+1, dense)
			s.denseToSparse.Set(int(dense), uint64(destPos))
			s.sparseToDense.Set(srcPos+1, 0)
		}
	}
	s.Resize(total - count)
}

func (s *SparseFlag) Migrate(src Row, fromIdx, count, toIdx int) {
	var srcFlag *SparseFlag
	if src != nil {
		var ok bool
		srcFlag, ok = src.(*SparseFlag)
		if !ok {
			panic("row: Migrate called with mismatched row type")
		}
	}
	for k := 0; k < count; k++ {
		dst := toIdx + k
		if srcFlag != nil && srcFlag.Contains(fromIdx+k) {
			s.Set(dst)
		} else {
			s.Erase(dst)
		}
	}
}
