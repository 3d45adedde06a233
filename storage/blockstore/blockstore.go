// Package blockstore defines the record-number-keyed key/value contract
// HeapFile is built on and ships one concrete, file-backed implementation
// of it.
//
// The block store proper — a general-purpose record-number-addressable
// storage engine — is treated as an external collaborator: this package
// only fixes the interface shape and supplies the simplest implementation
// that satisfies it, grounded in the way the
// teacher repository talks to disk (heapfile_manager/heapfile_pager.go,
// storage_engine/disk_manager): a single *os.File, fixed-length records,
// ReadAt/WriteAt at (key-1)*recordLen.
package blockstore

import "relstore/types"

// OpenMode selects whether Open should fail if the backing store already
// exists (Exclusive, used by HeapFile.create) or open whatever is there
// (Shared, used by HeapFile.open).
type OpenMode int

const (
	// Exclusive requires the store not already exist on disk.
	Exclusive OpenMode = iota
	// Shared opens an existing store, or creates an empty one if absent.
	Shared
)

// Stat reports summary statistics about an open store.
type Stat struct {
	// Count is the number of fixed-length records currently persisted.
	Count uint32
}

// Store is the record-number key/value contract HeapFile depends on.
// Keys are 1-based 32-bit record numbers; values are fixed-length byte
// slices of exactly the record length the store was opened with.
type Store interface {
	// Open opens or creates the named store. recordLen fixes the size of
	// every value ever Put to this store.
	Open(path string, mode OpenMode, recordLen int) error
	// Close flushes and closes the store. Closing an already-closed
	// store is a no-op.
	Close() error
	// Put writes value under key, extending the store if key is beyond
	// its current end. len(value) must equal the store's record length.
	Put(key types.BlockID, value []byte) error
	// Get reads the value stored under key.
	Get(key types.BlockID) ([]byte, error)
	// Remove deletes the named store from disk. The store must be closed
	// first.
	Remove(path string) error
	// Stat reports the current record count.
	Stat() (Stat, error)
}
