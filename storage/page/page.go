// Package page implements the slotted record layout used inside one
// fixed-size block.
//
// Grounded in heapfile_manager/slots.go and page_header.go: small
// package-private accessor functions over a raw []byte using
// encoding/binary, called from a handful of exported operations on the
// owning type. The byte layout differs from heapfile_manager's own
// (its header is 32 bytes and its slot directory grows backward from
// the end of the page; this one uses a 4-byte header and a slot
// directory that grows forward from offset 4).
package page

import (
	"encoding/binary"

	"relstore/dberrors"
	"relstore/types"
)

// BlockSize is the fixed size of every block/page.
const BlockSize = 4096

const (
	headerSize = 4 // offsets 0..1 num_records, 2..3 end_free
	slotSize   = 4 // offsets 0..1 size, 2..3 loc, relative to the slot
)

// MaxRecordSize is the largest payload Add could ever accept, on a page
// that is otherwise completely empty: the whole block, minus the header,
// minus the one slot entry the record itself needs, minus one more byte
// because HasRoom measures from end_free (BlockSize-1 on an empty page).
// A payload larger
// than this can never fit in any block regardless of how much of it is
// free.
const MaxRecordSize = BlockSize - 1 - headerSize - slotSize

// Page wraps one BlockSize-byte buffer with the slotted record layout.
// A Page does not own its buffer: the bytes are borrowed from a block
// store and a Page is only valid
// until the next fetch. Get returns slices into that same buffer, so
// callers must not retain them across the next mutating call to the page
// or the next block-store fetch.
type Page struct {
	buf []byte
}

// New wraps an existing BlockSize-byte buffer as a freshly initialized,
// empty page (zero records, all space free). Used by HeapFile.get_new.
func New(buf []byte) *Page {
	if len(buf) != BlockSize {
		panic("page: buffer is not BlockSize bytes")
	}
	p := &Page{buf: buf}
	p.writeHeader(header{numRecords: 0, endFree: BlockSize - 1})
	return p
}

// FromBytes wraps an existing BlockSize-byte buffer as an already
// populated page, parsing its header from the buffer's current contents.
// Used by HeapFile.get.
func FromBytes(buf []byte) *Page {
	if len(buf) != BlockSize {
		panic("page: buffer is not BlockSize bytes")
	}
	return &Page{buf: buf}
}

// Bytes returns the page's underlying buffer. The returned slice aliases
// the page's storage; it is what a HeapFile writes back to the block
// store.
func (p *Page) Bytes() []byte { return p.buf }

type header struct {
	numRecords uint16
	endFree    uint16
}

func (p *Page) readHeader() header {
	return header{
		numRecords: binary.LittleEndian.Uint16(p.buf[0:2]),
		endFree:    binary.LittleEndian.Uint16(p.buf[2:4]),
	}
}

func (p *Page) writeHeader(h header) {
	binary.LittleEndian.PutUint16(p.buf[0:2], h.numRecords)
	binary.LittleEndian.PutUint16(p.buf[2:4], h.endFree)
}

// NumRecords returns the number of slots ever allocated on this page
// (including tombstoned ones). It only ever grows.
func (p *Page) NumRecords() int {
	return int(p.readHeader().numRecords)
}

type slot struct {
	size uint16
	loc  uint16
}

func slotOffset(id types.RecordID) int {
	return headerSize + int(id-1)*slotSize
}

func (p *Page) readSlot(id types.RecordID) slot {
	off := slotOffset(id)
	return slot{
		size: binary.LittleEndian.Uint16(p.buf[off : off+2]),
		loc:  binary.LittleEndian.Uint16(p.buf[off+2 : off+4]),
	}
}

func (p *Page) writeSlot(id types.RecordID, s slot) {
	off := slotOffset(id)
	binary.LittleEndian.PutUint16(p.buf[off:off+2], s.size)
	binary.LittleEndian.PutUint16(p.buf[off+2:off+4], s.loc)
}

// HasRoom reports whether a new record of the given payload size fits:
// size + 4 <= end_free - 4*(num_records+1), reserving 4 bytes for the
// new record's own slot entry.
func (p *Page) HasRoom(size int) bool {
	h := p.readHeader()
	available := int(h.endFree) - 4*(int(h.numRecords)+1)
	return size+4 <= available
}

// hasRoomForGrow reports whether an existing record can grow by delta
// bytes without a new slot being allocated. Uses the same accounting as
// HasRoom minus the 4 bytes a brand new slot entry would need, since
// put() reuses the existing slot rather than allocating one.
func (p *Page) hasRoomForGrow(delta int) bool {
	h := p.readHeader()
	available := int(h.endFree) - 4*int(h.numRecords)
	return delta+4 <= available
}

// Add stores data as a new record and returns its RecordID. Fails with
// *dberrors.NoRoom if the page cannot accommodate it.
func (p *Page) Add(data []byte) (types.RecordID, error) {
	if !p.HasRoom(len(data)) {
		h := p.readHeader()
		available := int(h.endFree) - 4*(int(h.numRecords)+1)
		return 0, dberrors.NewNoRoom(len(data)+4, available)
	}

	h := p.readHeader()
	id := types.RecordID(h.numRecords + 1)
	newEndFree := h.endFree - uint16(len(data))
	loc := newEndFree + 1

	copy(p.buf[loc:int(loc)+len(data)], data)

	p.writeSlot(id, slot{size: uint16(len(data)), loc: loc})
	h.numRecords = uint16(id)
	h.endFree = newEndFree
	p.writeHeader(h)

	return id, nil
}

// Get returns the bytes stored under id, or ok=false if id names a
// tombstoned or never-allocated slot. The returned slice aliases the
// page's buffer and must not outlive the next mutating call on the page.
func (p *Page) Get(id types.RecordID) (data []byte, ok bool) {
	h := p.readHeader()
	if id < 1 || uint16(id) > h.numRecords {
		return nil, false
	}
	s := p.readSlot(id)
	if s.loc == 0 {
		return nil, false
	}
	return p.buf[s.loc : int(s.loc)+int(s.size)], true
}

// Put replaces the record stored under id with data, compacting the page
// in place. Fails with *dberrors.NoRoom if an enlarging update does not
// fit; the page is left unchanged in that case.
func (p *Page) Put(id types.RecordID, data []byte) error {
	h := p.readHeader()
	if id < 1 || uint16(id) > h.numRecords {
		return dberrors.Relationf("put: no such record %d", id)
	}
	old := p.readSlot(id)
	if old.loc == 0 {
		return dberrors.Relationf("put: record %d is deleted", id)
	}

	newSize := len(data)
	oldSize := int(old.size)

	if newSize <= oldSize {
		copy(p.buf[old.loc:int(old.loc)+newSize], data)
		p.slide(old.loc+uint16(newSize), old.loc+uint16(oldSize))
		updated := p.readSlot(id)
		updated.size = uint16(newSize)
		p.writeSlot(id, updated)
		return nil
	}

	delta := newSize - oldSize
	if !p.hasRoomForGrow(delta) {
		return dberrors.NewNoRoom(delta+4, p.freeForGrow())
	}
	p.slide(old.loc, old.loc-uint16(delta))
	updated := p.readSlot(id)
	copy(p.buf[updated.loc:int(updated.loc)+newSize], data)
	updated.size = uint16(newSize)
	p.writeSlot(id, updated)
	return nil
}

func (p *Page) freeForGrow() int {
	h := p.readHeader()
	return int(h.endFree) - 4*int(h.numRecords)
}

// Del tombstones the record stored under id, reclaiming its space.
// Deleting an already-deleted or unknown id is a no-op.
func (p *Page) Del(id types.RecordID) {
	h := p.readHeader()
	if id < 1 || uint16(id) > h.numRecords {
		return
	}
	s := p.readSlot(id)
	if s.loc == 0 {
		return
	}
	loc, size := s.loc, s.size
	p.writeSlot(id, slot{size: 0, loc: 0})
	p.slide(loc, loc+size)
}

// Ids returns every non-tombstoned RecordID on the page, in ascending
// order.
func (p *Page) Ids() []types.RecordID {
	h := p.readHeader()
	var ids []types.RecordID
	for i := types.RecordID(1); uint16(i) <= h.numRecords; i++ {
		if p.readSlot(i).loc != 0 {
			ids = append(ids, i)
		}
	}
	return ids
}

// slide is the page-compaction primitive shared by put and del: it
// moves the live-record byte range below `start` by shift = end - start
// bytes, fixes up every non-tombstone slot whose loc is <= start, and
// adjusts end_free accordingly. Both put (compacting a resize) and del
// (reclaiming a hole) are expressed as a single call to slide.
func (p *Page) slide(start, end uint16) {
	shift := int(end) - int(start)
	if shift == 0 {
		return
	}

	h := p.readHeader()
	lo := int(h.endFree) + 1
	hi := int(start)
	if hi > lo {
		src := p.buf[lo:hi]
		dst := p.buf[lo+shift : hi+shift]
		copy(dst, src)
	}

	for i := types.RecordID(1); uint16(i) <= h.numRecords; i++ {
		s := p.readSlot(i)
		if s.loc != 0 && int(s.loc) <= int(start) {
			s.loc = uint16(int(s.loc) + shift)
			p.writeSlot(i, s)
		}
	}

	h.endFree = uint16(int(h.endFree) + shift)
	p.writeHeader(h)
}
