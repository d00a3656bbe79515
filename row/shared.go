package row

// Shared holds a single value observed by every element of its table: a
// per-table singleton. Resize/SwapRemove/Migrate are no-ops — a shared
// row's "length" is always 1 regardless of table element count, per the
// table length-equality invariant's carve-out.
type Shared[T any] struct {
	value T
}

// NewShared returns a Shared row holding the zero value of T.
func NewShared[T any]() *Shared[T] {
	return &Shared[T]{}
}

// Get returns the shared value.
func (r *Shared[T]) Get() T { return r.value }

// Set overwrites the shared value.
func (r *Shared[T]) Set(v T) { r.value = v }

func (r *Shared[T]) Len() int { return 1 }

func (r *Shared[T]) Resize(int)                                 {}
func (r *Shared[T]) SwapRemove(begin, end, total int)           {}
func (r *Shared[T]) Migrate(src Row, fromIdx, count, toIdx int) {}

// isShared marks Shared as exempt from the table length-equality check.
// Unexported: only package table's invariant check needs to see it, via
// the IsShared helper below.
func (r *Shared[T]) isShared() bool { return true }

type sharedMarker interface {
	isShared() bool
}

// IsShared reports whether r is a Shared row (length-exempt in a table).
func IsShared(r Row) bool {
	s, ok := r.(sharedMarker)
	return ok && s.isShared()
}
