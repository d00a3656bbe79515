package table

import "github.com/dof-engine/dofcore/stableid"

// addElements grows every row by n, assigning stable keys (from
// reservedKeys if supplied, minted otherwise) for the stable-id row and
// registering their pool mappings. Returns the index of the first new
// element.
func (t *Table) addElements(n int, reservedKeys []stableid.Key) int {
	begin := t.length
	newLen := t.length + n
	for _, rt := range t.order {
		t.rows[rt].Resize(newLen)
	}
	t.length = newLen

	if t.hasStableID {
		stableRow := t.stableIDRow()
		for k := 0; k < n; k++ {
			pos := begin + k
			var key stableid.Key
			if k < len(reservedKeys) {
				key = reservedKeys[k]
				t.pool.TryClaimKnown(key)
			} else {
				key = t.pool.CreateKey()
			}
			stableRow.Set(pos, key)
			t.pool.InsertKey(key, stableid.Mapping{TableID: t.tableIndex, Index: uint32(pos)})
		}
	}
	return begin
}

// swapRemove removes element i, moving the last element into its place and
// fixing up both the removed and swapped-in keys' pool mappings.
func (t *Table) swapRemove(i int) {
	total := t.length
	var removedKey, swappedKey stableid.Key
	wasLast := i == total-1
	if t.hasStableID {
		stableRow := t.stableIDRow()
		removedKey = stableRow.At(i)
		if !wasLast {
			swappedKey = stableRow.At(total - 1)
		}
	}

	for _, rt := range t.order {
		t.rows[rt].SwapRemove(i, i+1, total)
	}
	t.length = total - 1

	if t.hasStableID {
		t.pool.EraseKey(removedKey)
		if !wasLast {
			t.pool.UpdateKey(swappedKey, stableid.Mapping{TableID: t.tableIndex, Index: uint32(i)})
		}
	}
}

// resize is the raw mechanical row resize: it does not mint, erase, or
// otherwise touch pool mappings. Growth leaves the stable-id row's new
// slots holding the zero Key (not a registered identity); shrinkage
// abandons any keys in the truncated range without erasing them from the
// pool. Identity-preserving growth/shrinkage goes through addElements and
// swapRemove instead — resize exists for bulk/raw row management where the
// caller manages identity itself.
func (t *Table) resize(n int) {
	for _, rt := range t.order {
		t.rows[rt].Resize(n)
	}
	t.length = n
}
