package table

import (
	"github.com/dof-engine/dofcore/doferr"
	"github.com/dof-engine/dofcore/stableid"
)

// TableID identifies a table within a Database.
type TableID uint32

// Database is a vector of tables plus the shared stable mapping pool their
// stable-id rows publish into.
type Database struct {
	pool   *stableid.Pool
	tables []*Table
}

// NewDatabase returns a Database whose stable id pool reserves capacity
// for poolReservation keys.
func NewDatabase(poolReservation int) *Database {
	return &Database{pool: stableid.New(poolReservation)}
}

// Pool returns the database's shared stable mapping pool.
func (d *Database) Pool() *stableid.Pool { return d.pool }

// CreateTable adds a new table built from b and returns its id.
func (d *Database) CreateTable(b *Builder) TableID {
	id := TableID(len(d.tables))
	d.tables = append(d.tables, newTable(b, uint32(id), d.pool))
	return id
}

func (d *Database) table(id TableID) (*Table, error) {
	if int(id) < 0 || int(id) >= len(d.tables) {
		return nil, doferr.ErrUnknownTable
	}
	return d.tables[id], nil
}

// Table returns the table for id, or ErrUnknownTable.
func (d *Database) Table(id TableID) (*Table, error) {
	return d.table(id)
}

// AddElements grows table id by n elements, returning the index of the
// first new one. If reservedKeys is non-nil its entries are claimed as the
// new elements' stable keys instead of minting fresh ones; it must have
// length <= n.
func (d *Database) AddElements(id TableID, n int, reservedKeys []stableid.Key) (int, error) {
	t, err := d.table(id)
	if err != nil {
		return 0, err
	}
	return t.addElements(n, reservedKeys), nil
}

// SwapRemove removes element i of table id.
func (d *Database) SwapRemove(id TableID, i int) error {
	t, err := d.table(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= t.length {
		return doferr.ErrUnknownTable
	}
	t.swapRemove(i)
	return nil
}

// Resize applies Table.resize (see its doc: a raw, identity-agnostic
// mechanical resize) to table id.
func (d *Database) Resize(id TableID, n int) error {
	t, err := d.table(id)
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	t.resize(n)
	return nil
}

// Migrate moves count elements starting at i in `from` into `to`, appending
// them, and returns the index of the first migrated element in `to`.
//
// Every row present in `to` is grown by count and receives the migrated
// values from the matching row in `from` (default-initialized if `from`
// lacks that row type). `from` then swap-removes the migrated range. Stable
// keys survive the move: the migrated elements' pool mappings are
// repointed at `to`, and every surviving `from` index from i onward is
// re-keyed against the row's post-removal contents, since the
// swap-remove may have relocated any of them (including when the removed
// range overlaps the table's tail).
func (d *Database) Migrate(from, to TableID, i, count int) (int, error) {
	fromT, err := d.table(from)
	if err != nil {
		return 0, err
	}
	toT, err := d.table(to)
	if err != nil {
		return 0, err
	}
	if count <= 0 {
		return toT.length, nil
	}
	if i < 0 || i+count > fromT.length {
		return 0, doferr.ErrUnknownTable
	}

	var migratingKeys []stableid.Key
	if fromT.hasStableID {
		src := fromT.stableIDRow()
		migratingKeys = make([]stableid.Key, count)
		for k := 0; k < count; k++ {
			migratingKeys[k] = src.At(i + k)
		}
	}

	newBegin := toT.length
	for _, rt := range toT.order {
		dstRow := toT.rows[rt]
		dstRow.Resize(toT.length + count)
		if sr, ok := fromT.rows[rt]; ok {
			dstRow.Migrate(sr, i, count, newBegin)
		} else {
			dstRow.Migrate(nil, i, count, newBegin)
		}
	}
	toT.length += count

	total := fromT.length
	for _, rt := range fromT.order {
		fromT.rows[rt].SwapRemove(i, i+count, total)
	}
	fromT.length = total - count

	if toT.hasStableID {
		for k, key := range migratingKeys {
			d.pool.UpdateKey(key, stableid.Mapping{TableID: toT.tableIndex, Index: uint32(newBegin + k)})
		}
	}
	// Every surviving index from i onward may have received a different
	// element from the swap-remove above (including the overlapping case
	// where the removed range reaches into the tail); re-key each of them
	// from the row's own post-removal contents rather than recomputing
	// which original index landed where.
	if fromT.hasStableID {
		src := fromT.stableIDRow()
		for idx := i; idx < fromT.length; idx++ {
			d.pool.UpdateKey(src.At(idx), stableid.Mapping{TableID: fromT.tableIndex, Index: uint32(idx)})
		}
	}

	return newBegin, nil
}

// Resolve returns the current (table, index) a stable ref points at, or
// false if the ref is stale.
func (d *Database) Resolve(ref stableid.Ref) (TableID, int, bool) {
	m, ok := ref.Deref()
	if !ok {
		return 0, 0, false
	}
	return TableID(m.TableID), int(m.Index), true
}
