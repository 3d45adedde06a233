package index

import (
	"fmt"

	"relstore/dberrors"
	"relstore/types"
)

// Hash is an unordered secondary index keyed by a value's string form.
// It supports the same Insert/Delete/Find contract as BTree without the
// ordering guarantee, for statements that only ever do point lookups.
type Hash struct {
	unique bool
	byKey  map[string]*hashBucket
}

type hashBucket struct {
	key     types.Value
	handles []types.Handle
}

// NewHash returns an empty Hash index.
func NewHash(unique bool) *Hash {
	return &Hash{unique: unique, byKey: make(map[string]*hashBucket)}
}

func (h *Hash) Unique() bool { return h.unique }

func hashKey(v types.Value) string {
	return fmt.Sprintf("%d:%s", v.Type, v.String())
}

func (h *Hash) Insert(key types.Value, handle types.Handle) error {
	k := hashKey(key)
	bucket, ok := h.byKey[k]
	if !ok {
		h.byKey[k] = &hashBucket{key: key, handles: []types.Handle{handle}}
		return nil
	}
	if h.unique {
		return dberrors.Relationf("duplicate key %s violates unique index", key)
	}
	bucket.handles = append(bucket.handles, handle)
	return nil
}

func (h *Hash) Delete(key types.Value, handle types.Handle) {
	k := hashKey(key)
	bucket, ok := h.byKey[k]
	if !ok {
		return
	}
	for i, hd := range bucket.handles {
		if hd == handle {
			bucket.handles = append(bucket.handles[:i], bucket.handles[i+1:]...)
			break
		}
	}
	if len(bucket.handles) == 0 {
		delete(h.byKey, k)
	}
}

func (h *Hash) Find(key types.Value) []types.Handle {
	bucket, ok := h.byKey[hashKey(key)]
	if !ok {
		return nil
	}
	out := make([]types.Handle, len(bucket.handles))
	copy(out, bucket.handles)
	return out
}
