package row

import "testing"

func TestPlainResizeGrowDefaultsTail(t *testing.T) {
	r := NewPlain[int]()
	r.Resize(3)
	r.Set(0, 1)
	r.Set(1, 2)
	r.Set(2, 3)
	r.Resize(5)
	if r.Len() != 5 {
		t.Fatalf("expected len 5, got %d", r.Len())
	}
	if r.At(3) != 0 || r.At(4) != 0 {
		t.Fatalf("expected default-valued tail, got %d %d", r.At(3), r.At(4))
	}
	if r.At(0) != 1 || r.At(2) != 3 {
		t.Fatalf("expected original values preserved")
	}
}

func TestPlainResizeShrinkThenGrowWithinCapacity(t *testing.T) {
	r := NewPlain[int]()
	r.Resize(4)
	for i := 0; i < 4; i++ {
		r.Set(i, i+1)
	}
	r.Resize(2)
	r.Resize(4)
	if r.At(2) != 0 || r.At(3) != 0 {
		t.Fatalf("expected shrink to have default-valued [2,4), got %d %d", r.At(2), r.At(3))
	}
}

func TestPlainSwapRemove(t *testing.T) {
	r := NewPlain[string]()
	r.Resize(4)
	r.Set(0, "a")
	r.Set(1, "b")
	r.Set(2, "c")
	r.Set(3, "d")
	r.SwapRemove(1, 2, 4) // remove "b", tail "d" moves into slot 1
	if r.Len() != 3 {
		t.Fatalf("expected len 3, got %d", r.Len())
	}
	if r.At(0) != "a" || r.At(1) != "d" || r.At(2) != "c" {
		t.Fatalf("unexpected contents: %v %v %v", r.At(0), r.At(1), r.At(2))
	}
}

func TestPlainSwapRemoveOverlappingTail(t *testing.T) {
	r := NewPlain[string]()
	r.Resize(4)
	r.Set(0, "o0")
	r.Set(1, "o1")
	r.Set(2, "o2")
	r.Set(3, "o3")
	r.SwapRemove(1, 3, 4) // removed range overlaps the 1-element tail
	if r.Len() != 2 {
		t.Fatalf("expected len 2, got %d", r.Len())
	}
	if r.At(0) != "o0" || r.At(1) != "o3" {
		t.Fatalf("unexpected contents: %v %v", r.At(0), r.At(1))
	}
}

func TestPlainMigrate(t *testing.T) {
	from := NewPlain[int]()
	from.Resize(3)
	from.Set(0, 10)
	from.Set(1, 20)
	from.Set(2, 30)

	to := NewPlain[int]()
	to.Resize(2)
	to.Migrate(from, 1, 2, 0)
	if to.At(0) != 20 || to.At(1) != 30 {
		t.Fatalf("unexpected migrated contents: %v %v", to.At(0), to.At(1))
	}
}

func TestPlainMigrateDefaultsWhenSourceAbsent(t *testing.T) {
	to := NewPlain[int]()
	to.Resize(2)
	to.Set(0, 99)
	to.Migrate(nil, 0, 2, 0)
	if to.At(0) != 0 || to.At(1) != 0 {
		t.Fatalf("expected default-initialized, got %v %v", to.At(0), to.At(1))
	}
}
