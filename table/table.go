// Package table implements the runtime database: tables of parallel rows
// keyed by row-type id, and the database that owns them alongside the
// shared stable mapping pool. Elements migrate between tables while their
// stable handles keep resolving to the element's current (table, index).
package table

import (
	"fmt"

	"github.com/dof-engine/dofcore/doferr"
	"github.com/dof-engine/dofcore/row"
	"github.com/dof-engine/dofcore/stableid"
)

// Builder assembles the row set of a table before it is added to a
// Database. Row types are registered in the order WithRow/WithStableIDRow
// is called; that order becomes the table's iteration order for
// add/swap-remove/migrate, mirroring the order-preserving registry shape in
// the teacher's indices package.
type Builder struct {
	order        []row.RowType
	rows         map[row.RowType]row.Row
	stableIDType row.RowType
	hasStableID  bool
}

// NewBuilder returns an empty table Builder.
func NewBuilder() *Builder {
	return &Builder{rows: make(map[row.RowType]row.Row)}
}

// WithRow registers r under rt. Panics if rt is already registered.
func (b *Builder) WithRow(rt row.RowType, r row.Row) *Builder {
	if _, exists := b.rows[rt]; exists {
		panic(fmt.Sprintf("table: row type %d already registered", rt))
	}
	b.rows[rt] = r
	b.order = append(b.order, rt)
	return b
}

// WithStableIDRow registers a *row.Plain[stableid.Key] under rt and marks
// it as the table's stable-id row. A table may have at most one.
func (b *Builder) WithStableIDRow(rt row.RowType) *Builder {
	if b.hasStableID {
		panic("table: a table may have at most one stable-id row")
	}
	b.WithRow(rt, row.NewPlain[stableid.Key]())
	b.stableIDType = rt
	b.hasStableID = true
	return b
}

// Table is a named set of equal-length rows (shared rows excepted), with an
// optional stable-id row whose pool mappings are kept in sync by every
// mutation the owning Database performs.
type Table struct {
	order        []row.RowType
	rows         map[row.RowType]row.Row
	length       int
	stableIDType row.RowType
	hasStableID  bool
	tableIndex   uint32
	pool         *stableid.Pool
}

func newTable(b *Builder, tableIndex uint32, pool *stableid.Pool) *Table {
	return &Table{
		order:        b.order,
		rows:         b.rows,
		stableIDType: b.stableIDType,
		hasStableID:  b.hasStableID,
		tableIndex:   tableIndex,
		pool:         pool,
	}
}

// Len returns the table's current element count.
func (t *Table) Len() int { return t.length }

// RowTypes returns the table's row-type ids in registration order, used by
// introspection tooling to describe a table's shape without reflection.
func (t *Table) RowTypes() []row.RowType {
	out := make([]row.RowType, len(t.order))
	copy(out, t.order)
	return out
}

// HasStableIDRow reports whether the table carries a stable-id row.
func (t *Table) HasStableIDRow() bool { return t.hasStableID }

// Row returns the row registered under rt, or ErrRowTypeMismatch if absent.
func (t *Table) Row(rt row.RowType) (row.Row, error) {
	r, ok := t.rows[rt]
	if !ok {
		return nil, doferr.ErrRowTypeMismatch
	}
	return r, nil
}

func (t *Table) stableIDRow() *row.Plain[stableid.Key] {
	r := t.rows[t.stableIDType]
	return r.(*row.Plain[stableid.Key])
}

// GetRow type-asserts the row registered under rt to R, the compile-time
// downcast the design favors over reflection.
func GetRow[R row.Row](t *Table, rt row.RowType) (R, error) {
	var zero R
	r, ok := t.rows[rt]
	if !ok {
		return zero, doferr.ErrRowTypeMismatch
	}
	typed, ok := r.(R)
	if !ok {
		return zero, doferr.ErrRowTypeMismatch
	}
	return typed, nil
}
