package heaptable

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"relstore/dberrors"
	"relstore/storage/blockstore"
	"relstore/types"
)

func newTestTable(t *testing.T) *HeapTable {
	t.Helper()
	schema := &types.Schema{
		TableName: "widgets",
		Columns: []types.ColumnDef{
			{Name: "id", Type: types.INT},
			{Name: "label", Type: types.TEXT},
			{Name: "flag", Type: types.BOOLEAN},
		},
	}
	dir := t.TempDir()
	table := New(schema, blockstore.NewFileStore(), filepath.Join(dir, "widgets.tbl"))
	if err := table.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { table.Close() })
	return table
}

func TestInsertGetRoundTrip(t *testing.T) {
	table := newTestTable(t)
	row := types.Row{
		"id":    types.NewInt(42),
		"label": types.NewText([]byte("gizmo")),
		"flag":  types.NewBool(true),
	}
	h, err := table.Insert(row)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, err := table.Get(h)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got["id"].Equal(row["id"]) || !got["label"].Equal(row["label"]) || !got["flag"].Equal(row["flag"]) {
		t.Fatalf("Get(%s) = %v, want %v", h, got, row)
	}
}

func TestSelectAndProject(t *testing.T) {
	table := newTestTable(t)
	for i := int32(0); i < 5; i++ {
		_, err := table.Insert(types.Row{
			"id":    types.NewInt(i),
			"label": types.NewText([]byte("item")),
			"flag":  types.NewBool(i%2 == 0),
		})
		if err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	all, err := table.Select(nil)
	if err != nil {
		t.Fatalf("Select(nil): %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("Select(nil) returned %d handles, want 5", len(all))
	}

	evens, err := table.Select(func(r types.Row) bool { return r["flag"].Bool })
	if err != nil {
		t.Fatalf("Select(flag): %v", err)
	}
	if len(evens) != 3 {
		t.Fatalf("Select(flag=true) returned %d handles, want 3", len(evens))
	}

	proj, err := table.Project(all[0], []string{"id"})
	if err != nil {
		t.Fatalf("Project: %v", err)
	}
	if _, ok := proj["label"]; ok {
		t.Fatalf("Project([id]) leaked column %q", "label")
	}
	if _, ok := proj["id"]; !ok {
		t.Fatalf("Project([id]) missing column %q", "id")
	}
}

func TestDeleteRemovesFromSelect(t *testing.T) {
	table := newTestTable(t)
	h, err := table.Insert(types.Row{
		"id":    types.NewInt(1),
		"label": types.NewText([]byte("x")),
		"flag":  types.NewBool(false),
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := table.Delete(h); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := table.Get(h); err == nil {
		t.Fatal("Get after Delete should fail")
	}
	remaining, err := table.Select(nil)
	if err != nil {
		t.Fatalf("Select after Delete: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("Select after Delete returned %d handles, want 0", len(remaining))
	}
}

func TestInsertRejectsSchemaMismatch(t *testing.T) {
	table := newTestTable(t)
	_, err := table.Insert(types.Row{
		"id":    types.NewInt(1),
		"label": types.NewText([]byte("x")),
		// flag missing
	})
	if err == nil {
		t.Fatal("expected an error for a row missing a column")
	}
}

func TestInsertRejectsRowTooBigToMarshal(t *testing.T) {
	table := newTestTable(t)
	_, err := table.Insert(types.Row{
		"id":    types.NewInt(1),
		"label": types.NewText([]byte(strings.Repeat("x", 65000))),
		"flag":  types.NewBool(true),
	})
	if err == nil {
		t.Fatal("expected an error for an oversized row")
	}
	var relErr *dberrors.RelationError
	if !errors.As(err, &relErr) {
		t.Fatalf("expected a *dberrors.RelationError, got %T: %v", err, err)
	}
	if relErr.Error() != "row too big to marshal" {
		t.Fatalf("Error() = %q, want %q", relErr.Error(), "row too big to marshal")
	}
}

func TestInsertAllocatesNewBlockOnlyWhenLastIsFull(t *testing.T) {
	table := newTestTable(t)
	var last types.Handle
	for i := int32(0); i < 200; i++ {
		h, err := table.Insert(types.Row{
			"id":    types.NewInt(i),
			"label": types.NewText([]byte("item")),
			"flag":  types.NewBool(false),
		})
		if err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		last = h
	}
	// Each row marshals to 11 bytes (+4 for its slot); 200 of them fit in
	// block 1, so no new block may have been allocated.
	if last.Block != 1 {
		t.Fatalf("expected every row to stay on block 1, last row landed at %s", last)
	}
	all, err := table.Select(nil)
	if err != nil {
		t.Fatalf("Select(nil): %v", err)
	}
	if len(all) != 200 {
		t.Fatalf("Select(nil) returned %d handles, want 200", len(all))
	}
}

func TestSmokeTest(t *testing.T) {
	dir := t.TempDir()
	log, err := RunSmokeTest(filepath.Join(dir, "smoke.tbl"))
	if err != nil {
		t.Fatalf("RunSmokeTest: %v\n%v", err, log)
	}
	if len(log) == 0 {
		t.Fatal("expected a non-empty smoke test log")
	}
}
