// Package heapfile implements HeapFile: an append-only sequence of
// fixed-size blocks over a blockstore.Store, addressed by dense 1-based
// BlockIDs.
//
// Grounded in heapfile_manager/heapfile.go and heapfile_pager.go: a thin
// type wrapping one open file handle, with create/open/close lifecycle
// methods and get/put/get_new operations that each touch exactly one
// block. heapfile_manager scans every page linearly to find room for a
// new row (findSuitablePage); this type has no such scan — block
// selection is left to HeapTable, and get_new always appends, matching
// the append-only invariant.
package heapfile

import (
	"relstore/dberrors"
	"relstore/storage/blockstore"
	"relstore/storage/page"
	"relstore/types"
)

// HeapFile is an append-only sequence of blockstore-backed blocks. Block
// IDs are dense and 1-based: the first block ever appended is 1, the
// second 2, and so on, with no gaps even across delete/recreate cycles
// (a dropped and recreated HeapFile starts back at block 1).
type HeapFile struct {
	store blockstore.Store
	path  string
	open  bool
}

// New wraps an unopened blockstore.Store as a HeapFile. Callers still
// need to call Create or Open before using it.
func New(store blockstore.Store, path string) *HeapFile {
	return &HeapFile{store: store, path: path}
}

// Create initializes a brand new HeapFile at path. It fails if a file
// already exists there. Block 1 exists and is zero-filled as soon as
// Create returns.
func (hf *HeapFile) Create() error {
	if err := hf.store.Open(hf.path, blockstore.Exclusive, page.BlockSize); err != nil {
		return err
	}
	hf.open = true
	if _, err := hf.GetNew(); err != nil {
		return err
	}
	return nil
}

// Open opens an existing HeapFile at path, creating an empty one if
// absent. Either way, block 1 exists and is zero-filled by the time Open
// returns: a freshly created backing file starts with zero blocks, so
// Open appends one exactly as Create does.
func (hf *HeapFile) Open() error {
	if err := hf.store.Open(hf.path, blockstore.Shared, page.BlockSize); err != nil {
		return err
	}
	hf.open = true
	stat, err := hf.store.Stat()
	if err != nil {
		return err
	}
	if stat.Count == 0 {
		if _, err := hf.GetNew(); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the HeapFile.
func (hf *HeapFile) Close() error {
	if !hf.open {
		return nil
	}
	hf.open = false
	return hf.store.Close()
}

// Drop closes (if needed) and deletes the HeapFile's backing storage.
func (hf *HeapFile) Drop() error {
	if hf.open {
		if err := hf.Close(); err != nil {
			return err
		}
	}
	return hf.store.Remove(hf.path)
}

// GetNew appends a brand new, empty block and returns its BlockID.
func (hf *HeapFile) GetNew() (types.BlockID, error) {
	stat, err := hf.store.Stat()
	if err != nil {
		return 0, err
	}
	id := types.BlockID(stat.Count + 1)
	p := page.New(make([]byte, page.BlockSize))
	if err := hf.store.Put(id, p.Bytes()); err != nil {
		return 0, err
	}
	return id, nil
}

// Get fetches the block named by id. The returned Page aliases a
// freshly-read buffer and is not shared with any other call — callers
// own it until the next Get/Put/GetNew on this HeapFile.
func (hf *HeapFile) Get(id types.BlockID) (*page.Page, error) {
	buf, err := hf.store.Get(id)
	if err != nil {
		return nil, err
	}
	return page.FromBytes(buf), nil
}

// Put writes p back to block id.
func (hf *HeapFile) Put(id types.BlockID, p *page.Page) error {
	return hf.store.Put(id, p.Bytes())
}

// BlockIDs returns every block currently in the file, in ascending
// order.
func (hf *HeapFile) BlockIDs() ([]types.BlockID, error) {
	stat, err := hf.store.Stat()
	if err != nil {
		return nil, err
	}
	ids := make([]types.BlockID, 0, stat.Count)
	for i := uint32(1); i <= stat.Count; i++ {
		ids = append(ids, types.BlockID(i))
	}
	return ids, nil
}

// GetLastBlockID returns the most recently appended block's id, or an
// error if the file is empty.
func (hf *HeapFile) GetLastBlockID() (types.BlockID, error) {
	stat, err := hf.store.Stat()
	if err != nil {
		return 0, err
	}
	if stat.Count == 0 {
		return 0, dberrors.Storef(nil, "heap file %s is empty", hf.path)
	}
	return types.BlockID(stat.Count), nil
}
