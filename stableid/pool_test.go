package stableid

import "testing"

func TestRefRoundTrip(t *testing.T) {
	p := New(16)
	k := p.CreateKey()
	m := Mapping{TableID: 2, Index: 5}
	p.InsertKey(k, m)

	r := NewRef(p, k)
	got, ok := r.Deref()
	if !ok || got != m {
		t.Fatalf("got (%v,%v), want (%v,true)", got, ok, m)
	}

	p.UpdateKey(k, Mapping{TableID: 2, Index: 9})
	got, ok = r.Deref()
	if !ok || got.Index != 9 {
		t.Fatalf("expected ref to observe updated mapping, got %v", got)
	}
}

func TestEraseReuseBumpsVersion(t *testing.T) {
	p := New(4)
	k := p.CreateKey()
	p.InsertKey(k, Mapping{TableID: 1, Index: 1})
	oldRef := NewRef(p, k)

	p.EraseKey(k)
	k2 := p.CreateKey()
	if k2 != k {
		t.Fatalf("expected slot reuse, got new key %d vs old %d", k2, k)
	}
	p.InsertKey(k2, Mapping{TableID: 1, Index: 1})
	newRef := NewRef(p, k2)

	if _, ok := oldRef.Deref(); ok {
		t.Fatalf("old ref should be stale after erase+reuse")
	}
	if _, ok := newRef.Deref(); !ok {
		t.Fatalf("new ref should resolve")
	}
}

func TestTryGetOnUnknownOrErasedKey(t *testing.T) {
	p := New(4)
	if _, ok := p.TryGet(Key(0)); ok {
		t.Fatalf("expected absent for never-created key")
	}
	k := p.CreateKey()
	p.InsertKey(k, Mapping{TableID: 1, Index: 1})
	p.EraseKey(k)
	if _, ok := p.TryGet(k); ok {
		t.Fatalf("expected absent for erased key")
	}
}

func TestCapacityExhaustedPanics(t *testing.T) {
	p := New(1)
	p.CreateKey()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on capacity exhaustion")
		}
	}()
	p.CreateKey()
}

func TestTryClaimKnownExtendsAndFreesSkippedSlots(t *testing.T) {
	p := New(8)
	if !p.TryClaimKnown(Key(3)) {
		t.Fatalf("expected claim of key 3 to succeed")
	}
	// keys 0,1,2 should now be free and allocatable via CreateKey.
	k0 := p.CreateKey()
	if k0 < 0 || k0 >= 3 {
		t.Fatalf("expected CreateKey to reuse a skipped slot, got %d", k0)
	}
	if p.TryClaimKnown(Key(3)) {
		t.Fatalf("expected re-claiming an in-use key to fail")
	}
}

func TestTryClaimKnownOutsideReservationFails(t *testing.T) {
	p := New(4)
	if p.TryClaimKnown(Key(10)) {
		t.Fatalf("expected claim beyond reservation to fail")
	}
}
