package page

import (
	"bytes"
	"errors"
	"testing"

	"relstore/dberrors"
	"relstore/types"
)

func newTestPage() *Page {
	return New(make([]byte, BlockSize))
}

func TestAddGetRoundTrip(t *testing.T) {
	p := newTestPage()
	id, err := p.Add([]byte("hello"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id to be 1, got %d", id)
	}
	got, ok := p.Get(id)
	if !ok {
		t.Fatalf("Get(%d) not found", id)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Fatalf("Get(%d) = %q, want %q", id, got, "hello")
	}
}

func TestIdsAscendingAfterDelete(t *testing.T) {
	p := newTestPage()
	var ids []types.RecordID
	for _, s := range []string{"aa", "bbbb", "c"} {
		id, err := p.Add([]byte(s))
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		ids = append(ids, id)
	}
	p.Del(ids[1])

	got := p.Ids()
	want := []types.RecordID{ids[0], ids[2]}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Ids() = %v, want %v", got, want)
	}
	if _, ok := p.Get(ids[1]); ok {
		t.Fatalf("Get(%d) found a deleted record", ids[1])
	}
}

func TestPutShrinkAndGrowRoundTrip(t *testing.T) {
	p := newTestPage()
	idA, err := p.Add([]byte("aaaaaaaaaa"))
	if err != nil {
		t.Fatalf("Add A: %v", err)
	}
	idB, err := p.Add([]byte("bbbbb"))
	if err != nil {
		t.Fatalf("Add B: %v", err)
	}

	if err := p.Put(idA, []byte("aa")); err != nil {
		t.Fatalf("shrink Put: %v", err)
	}
	gotA, ok := p.Get(idA)
	if !ok || !bytes.Equal(gotA, []byte("aa")) {
		t.Fatalf("Get(A) after shrink = %q, %v", gotA, ok)
	}
	gotB, ok := p.Get(idB)
	if !ok || !bytes.Equal(gotB, []byte("bbbbb")) {
		t.Fatalf("Get(B) after A shrank = %q, %v, want bbbbb intact", gotB, ok)
	}

	if err := p.Put(idA, []byte("aaaaaaaaaaaaaaaa")); err != nil {
		t.Fatalf("grow Put: %v", err)
	}
	gotA, ok = p.Get(idA)
	if !ok || !bytes.Equal(gotA, []byte("aaaaaaaaaaaaaaaa")) {
		t.Fatalf("Get(A) after grow = %q, %v", gotA, ok)
	}
	gotB, ok = p.Get(idB)
	if !ok || !bytes.Equal(gotB, []byte("bbbbb")) {
		t.Fatalf("Get(B) after A grew = %q, %v, want bbbbb intact", gotB, ok)
	}
}

func TestAddFailsWhenFull(t *testing.T) {
	p := newTestPage()
	big := bytes.Repeat([]byte("x"), BlockSize)
	_, err := p.Add(big)
	if err == nil {
		t.Fatal("expected NoRoom, got nil")
	}
	var noRoom *dberrors.NoRoom
	if !errors.As(err, &noRoom) {
		t.Fatalf("expected *dberrors.NoRoom, got %T: %v", err, err)
	}
}

func TestAddExactFitSucceeds(t *testing.T) {
	p := newTestPage()
	_, err := p.Add(make([]byte, MaxRecordSize))
	if err != nil {
		t.Fatalf("expected exact-fit Add to succeed, got %v", err)
	}
}

func TestAddOneByteOverFails(t *testing.T) {
	p := newTestPage()
	_, err := p.Add(make([]byte, MaxRecordSize+1))
	if err == nil {
		t.Fatal("expected NoRoom for one byte over capacity")
	}
}

func TestZeroSizeRecordRoundTrips(t *testing.T) {
	p := newTestPage()
	id, err := p.Add(nil)
	if err != nil {
		t.Fatalf("Add empty: %v", err)
	}
	got, ok := p.Get(id)
	if !ok {
		t.Fatalf("Get(%d) not found", id)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty record, got %d bytes", len(got))
	}
}
