package index

import (
	"relstore/dberrors"
	"relstore/types"
)

// BTree is a sorted secondary index: one entry per distinct key, keys in
// ascending order, each mapping to the ordered list of handles carrying
// it. Lookup follows bplustree/binary_search.go's lowerBound idiom
// instead of sort.Search, kept as a method so both the unique and
// non-unique code paths share it.
type BTree struct {
	unique  bool
	entries []btreeEntry
}

type btreeEntry struct {
	key     types.Value
	handles []types.Handle
}

// NewBTree returns an empty BTree index. unique enforces at most one
// handle per key on Insert.
func NewBTree(unique bool) *BTree {
	return &BTree{unique: unique}
}

func (t *BTree) Unique() bool { return t.unique }

func (t *BTree) lowerBound(key types.Value) int {
	lo, hi := 0, len(t.entries)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if cmpValue(t.entries[mid].key, key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (t *BTree) Insert(key types.Value, handle types.Handle) error {
	i := t.lowerBound(key)
	if i < len(t.entries) && t.entries[i].key.Equal(key) {
		if t.unique {
			return dberrors.Relationf("duplicate key %s violates unique index", key)
		}
		t.entries[i].handles = append(t.entries[i].handles, handle)
		return nil
	}
	entry := btreeEntry{key: key, handles: []types.Handle{handle}}
	t.entries = append(t.entries, btreeEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = entry
	return nil
}

func (t *BTree) Delete(key types.Value, handle types.Handle) {
	i := t.lowerBound(key)
	if i >= len(t.entries) || !t.entries[i].key.Equal(key) {
		return
	}
	handles := t.entries[i].handles
	for j, h := range handles {
		if h == handle {
			t.entries[i].handles = append(handles[:j], handles[j+1:]...)
			break
		}
	}
	if len(t.entries[i].handles) == 0 {
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
	}
}

func (t *BTree) Find(key types.Value) []types.Handle {
	i := t.lowerBound(key)
	if i >= len(t.entries) || !t.entries[i].key.Equal(key) {
		return nil
	}
	out := make([]types.Handle, len(t.entries[i].handles))
	copy(out, t.entries[i].handles)
	return out
}
