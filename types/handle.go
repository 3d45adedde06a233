package types

import "fmt"

// BlockID identifies a block within a heap file. Blocks are 1-based and
// dense: block 1 exists as soon as the file is created, and block numbers
// are never reused.
type BlockID uint32

// RecordID identifies a slot within a block, 1-based. Record IDs are
// never reused within a block and are stable across that block's
// compactions.
type RecordID uint16

// Handle is an opaque, stable address for one row: the block it lives in
// and the slot within that block. It remains valid for the lifetime of
// the row — insertions, deletions and updates elsewhere in the same block
// never invalidate an existing Handle.
type Handle struct {
	Block  BlockID
	Record RecordID
}

func (h Handle) String() string {
	return fmt.Sprintf("(%d,%d)", h.Block, h.Record)
}
