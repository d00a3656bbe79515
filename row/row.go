// Package row implements the column storage backing a table.Table: a
// compact plain row, sparse and sparse-flag rows with a packed-index backed
// map, and a shared row observed by every element of its table.
//
// All four satisfy Row, the uniform operation set a table drives without
// knowing the concrete element type: Resize, SwapRemove, Migrate. Typed
// accessors downcast to the concrete *Plain[T]/*Sparse[T]/*SparseFlag/*
// Shared[T] at the call site, keyed by a RowType id — never by reflection.
package row

// RowType identifies the kind of a row within a table (its data type and
// role), so a table's row-type-id -> Row map can be downcast to a concrete
// type at the accessor call site.
type RowType uint32

// Row is the uniform interface every row flavor implements so a table can
// drive resize/swap-remove/migrate without knowing the element type.
type Row interface {
	// Len returns the row's current table-element length (1 for a Shared row).
	Len() int
	// Resize grows or shrinks the row to newLen elements, default-valuing
	// any newly exposed slots.
	Resize(newLen int)
	// SwapRemove removes the half-open range [begin, end) by moving the
	// trailing `end-begin` elements (positions [total-count, total)) down
	// into the vacated slots, then shrinking the row to total-count.
	SwapRemove(begin, end, total int)
	// Migrate move-assigns count elements from src (possibly nil, meaning
	// "default-initialize instead") at [fromIdx, fromIdx+count) into this
	// row's [toIdx, toIdx+count). The destination range must already exist
	// (callers resize before migrating).
	Migrate(src Row, fromIdx, count, toIdx int)
}
