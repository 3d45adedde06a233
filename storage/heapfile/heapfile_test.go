package heapfile

import (
	"path/filepath"
	"testing"

	"relstore/storage/blockstore"
)

func newTestHeapFile(t *testing.T) *HeapFile {
	t.Helper()
	dir := t.TempDir()
	hf := New(blockstore.NewFileStore(), filepath.Join(dir, "test.heap"))
	if err := hf.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { hf.Close() })
	return hf
}

func TestGetNewAppendsDenseBlockIDs(t *testing.T) {
	hf := newTestHeapFile(t)
	// Create already appended block 1.

	for want := uint32(2); want <= 4; want++ {
		id, err := hf.GetNew()
		if err != nil {
			t.Fatalf("GetNew: %v", err)
		}
		if uint32(id) != want {
			t.Fatalf("GetNew() = %d, want %d", id, want)
		}
	}

	ids, err := hf.BlockIDs()
	if err != nil {
		t.Fatalf("BlockIDs: %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("BlockIDs() has %d entries, want 4", len(ids))
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	hf := newTestHeapFile(t)

	id, err := hf.GetNew()
	if err != nil {
		t.Fatalf("GetNew: %v", err)
	}

	p, err := hf.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	recID, err := p.Add([]byte("payload"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := hf.Put(id, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	reread, err := hf.Get(id)
	if err != nil {
		t.Fatalf("Get after Put: %v", err)
	}
	got, ok := reread.Get(recID)
	if !ok {
		t.Fatalf("record %d missing after reread", recID)
	}
	if string(got) != "payload" {
		t.Fatalf("got %q, want %q", got, "payload")
	}
}

func TestBlockOneExistsAfterCreate(t *testing.T) {
	hf := newTestHeapFile(t)
	got, err := hf.GetLastBlockID()
	if err != nil {
		t.Fatalf("GetLastBlockID on a freshly created file: %v", err)
	}
	if uint32(got) != 1 {
		t.Fatalf("GetLastBlockID() = %d, want 1", got)
	}
	ids, err := hf.BlockIDs()
	if err != nil {
		t.Fatalf("BlockIDs: %v", err)
	}
	if len(ids) != 1 || uint32(ids[0]) != 1 {
		t.Fatalf("BlockIDs() = %v, want [1]", ids)
	}
}

func TestGetLastBlockID(t *testing.T) {
	hf := newTestHeapFile(t)
	last := uint32(1) // block 1 already exists after Create
	for i := 0; i < 3; i++ {
		id, err := hf.GetNew()
		if err != nil {
			t.Fatalf("GetNew: %v", err)
		}
		last = uint32(id)
	}
	got, err := hf.GetLastBlockID()
	if err != nil {
		t.Fatalf("GetLastBlockID: %v", err)
	}
	if uint32(got) != last {
		t.Fatalf("GetLastBlockID() = %d, want %d", got, last)
	}
}

func TestDropRemovesBackingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dropme.heap")
	hf := New(blockstore.NewFileStore(), path)
	if err := hf.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := hf.GetNew(); err != nil {
		t.Fatalf("GetNew: %v", err)
	}
	if err := hf.Drop(); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	recreated := New(blockstore.NewFileStore(), path)
	if err := recreated.Create(); err != nil {
		t.Fatalf("recreate after Drop: %v", err)
	}
	defer recreated.Close()
	id, err := recreated.GetLastBlockID()
	if err != nil {
		t.Fatalf("GetLastBlockID after recreate: %v", err)
	}
	if uint32(id) != 1 {
		t.Fatalf("recreated heap file did not restart block ids from 1, got %d", id)
	}
}
