package index

import (
	"testing"

	"relstore/types"
)

func handlesEqual(a, b []types.Handle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBTreeInsertFindDelete(t *testing.T) {
	idx := NewBTree(false)
	h1 := types.Handle{Block: 1, Record: 1}
	h2 := types.Handle{Block: 1, Record: 2}
	key := types.NewInt(7)

	if err := idx.Insert(key, h1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := idx.Insert(key, h2); err != nil {
		t.Fatalf("Insert dup key on non-unique index: %v", err)
	}

	got := idx.Find(key)
	if !handlesEqual(got, []types.Handle{h1, h2}) {
		t.Fatalf("Find(%v) = %v, want [%v %v]", key, got, h1, h2)
	}

	idx.Delete(key, h1)
	got = idx.Find(key)
	if !handlesEqual(got, []types.Handle{h2}) {
		t.Fatalf("Find after Delete = %v, want [%v]", got, h2)
	}
}

func TestBTreeUniqueRejectsDuplicate(t *testing.T) {
	idx := NewBTree(true)
	key := types.NewText([]byte("a"))
	if err := idx.Insert(key, types.Handle{Block: 1, Record: 1}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := idx.Insert(key, types.Handle{Block: 1, Record: 2}); err == nil {
		t.Fatal("expected a unique-index violation on duplicate key")
	}
}

func TestBTreeMaintainsSortedOrder(t *testing.T) {
	idx := NewBTree(false)
	for _, n := range []int32{5, 1, 3, 4, 2} {
		if err := idx.Insert(types.NewInt(n), types.Handle{Block: types.BlockID(n)}); err != nil {
			t.Fatalf("Insert(%d): %v", n, err)
		}
	}
	var order []int32
	for _, e := range idx.entries {
		order = append(order, e.key.Int)
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] > order[i] {
			t.Fatalf("entries not sorted: %v", order)
		}
	}
}

func TestHashInsertFindDelete(t *testing.T) {
	idx := NewHash(true)
	key := types.NewBool(true)
	h := types.Handle{Block: 2, Record: 3}
	if err := idx.Insert(key, h); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got := idx.Find(key)
	if !handlesEqual(got, []types.Handle{h}) {
		t.Fatalf("Find(%v) = %v, want [%v]", key, got, h)
	}
	idx.Delete(key, h)
	if got := idx.Find(key); len(got) != 0 {
		t.Fatalf("Find after Delete = %v, want empty", got)
	}
}

func TestNewFactory(t *testing.T) {
	if _, err := New(BTreeKind, false); err != nil {
		t.Fatalf("New(BTreeKind): %v", err)
	}
	if _, err := New(HashKind, false); err != nil {
		t.Fatalf("New(HashKind): %v", err)
	}
	if _, err := New("BOGUS", false); err == nil {
		t.Fatal("expected an error for an unrecognized index kind")
	}
}
