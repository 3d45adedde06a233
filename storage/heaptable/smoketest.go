package heaptable

import (
	"fmt"

	"relstore/storage/blockstore"
	"relstore/types"
)

// RunSmokeTest exercises the full round trip a fresh HeapTable is
// expected to support: create, insert, select, project, delete, and a
// second select confirming the delete stuck. It returns a short summary
// line for each step, useful as a manual sanity check independent of
// the package's unit tests.
func RunSmokeTest(path string) ([]string, error) {
	schema := &types.Schema{
		TableName: "smoke_test",
		Columns: []types.ColumnDef{
			{Name: "id", Type: types.INT},
			{Name: "name", Type: types.TEXT},
			{Name: "active", Type: types.BOOLEAN},
		},
	}

	table := New(schema, blockstore.NewFileStore(), path)
	if err := table.Create(); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	defer table.Drop()

	var log []string

	h1, err := table.Insert(types.Row{
		"id":     types.NewInt(1),
		"name":   types.NewText([]byte("alice")),
		"active": types.NewBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("insert 1: %w", err)
	}
	log = append(log, fmt.Sprintf("inserted row 1 at %s", h1))

	h2, err := table.Insert(types.Row{
		"id":     types.NewInt(2),
		"name":   types.NewText([]byte("bob")),
		"active": types.NewBool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("insert 2: %w", err)
	}
	log = append(log, fmt.Sprintf("inserted row 2 at %s", h2))

	handles, err := table.Select(nil)
	if err != nil {
		return nil, fmt.Errorf("select all: %w", err)
	}
	log = append(log, fmt.Sprintf("select scanned %d rows", len(handles)))

	activeOnly, err := table.Select(func(r types.Row) bool {
		return r["active"].Bool
	})
	if err != nil {
		return nil, fmt.Errorf("select active: %w", err)
	}
	log = append(log, fmt.Sprintf("select active=true matched %d rows", len(activeOnly)))

	projected, err := table.Project(h1, []string{"name"})
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	log = append(log, fmt.Sprintf("project(name) on row 1 = %s", projected["name"]))

	if err := table.Delete(h2); err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	log = append(log, "deleted row 2")

	remaining, err := table.Select(nil)
	if err != nil {
		return nil, fmt.Errorf("select after delete: %w", err)
	}
	log = append(log, fmt.Sprintf("select after delete scanned %d rows", len(remaining)))

	if len(remaining) != 1 {
		return log, fmt.Errorf("expected 1 row after delete, got %d", len(remaining))
	}

	return log, nil
}
