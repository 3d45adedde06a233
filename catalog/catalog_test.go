package catalog

import (
	"testing"

	"relstore/index"
	"relstore/types"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func widgetsSchema() *types.Schema {
	return &types.Schema{
		TableName: "widgets",
		Columns: []types.ColumnDef{
			{Name: "id", Type: types.INT},
			{Name: "label", Type: types.TEXT},
		},
	}
}

func TestBootstrapRegistersSystemTables(t *testing.T) {
	c := newTestCatalog(t)
	for _, name := range []string{TablesTable, ColumnsTable, IndicesTable} {
		if !c.TableExists(name) {
			t.Fatalf("system table %q not registered after bootstrap", name)
		}
	}
	names, err := c.ListTables()
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("ListTables() on a fresh catalog = %v, want empty", names)
	}
}

func TestCreateTableThenGetSchema(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	names, err := c.ListTables()
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(names) != 1 || names[0] != "widgets" {
		t.Fatalf("ListTables() = %v, want [widgets]", names)
	}

	schema, err := c.GetSchema("widgets")
	if err != nil {
		t.Fatalf("GetSchema: %v", err)
	}
	if len(schema.Columns) != 2 || schema.Columns[0].Name != "id" || schema.Columns[1].Name != "label" {
		t.Fatalf("GetSchema returned %+v", schema)
	}
}

func TestCreateTableRejectsDuplicate(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.CreateTable(widgetsSchema()); err == nil {
		t.Fatal("expected an error creating a duplicate table")
	}
}

func TestGetTableCachesHandle(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	t1, err := c.GetTable("widgets")
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	t2, err := c.GetTable("widgets")
	if err != nil {
		t.Fatalf("GetTable second call: %v", err)
	}
	if t1 != t2 {
		t.Fatal("GetTable returned distinct handles for the same table")
	}
}

func TestDropTableRemovesMetadata(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := c.DropTable("widgets"); err != nil {
		t.Fatalf("DropTable: %v", err)
	}
	if c.TableExists("widgets") {
		t.Fatal("table still registered after DropTable")
	}
	if _, err := c.GetSchema("widgets"); err == nil {
		t.Fatal("expected GetSchema to fail after DropTable")
	}
}

func TestDropTableRejectsSystemTable(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.DropTable(TablesTable); err == nil {
		t.Fatal("expected an error dropping a system table")
	}
}

func TestCreateIndexAndLookup(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	table, err := c.GetTable("widgets")
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	h, err := table.Insert(types.Row{"id": types.NewInt(7), "label": types.NewText([]byte("x"))})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err = c.CreateIndex(&IndexInfo{
		TableName: "widgets",
		IndexName: "widgets_id_idx",
		Columns:   []string{"id"},
		Unique:    true,
		Kind:      index.BTreeKind,
	})
	if err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}

	names, err := c.GetIndexNames("widgets")
	if err != nil {
		t.Fatalf("GetIndexNames: %v", err)
	}
	if len(names) != 1 || names[0] != "widgets_id_idx" {
		t.Fatalf("GetIndexNames() = %v", names)
	}

	idx, err := c.GetIndex("widgets", "widgets_id_idx")
	if err != nil {
		t.Fatalf("GetIndex: %v", err)
	}
	got := idx.Find(types.NewInt(7))
	if len(got) != 1 || got[0] != h {
		t.Fatalf("Find(7) = %v, want [%v]", got, h)
	}

	if err := c.DropIndex("widgets", "widgets_id_idx"); err != nil {
		t.Fatalf("DropIndex: %v", err)
	}
	if names, _ := c.GetIndexNames("widgets"); len(names) != 0 {
		t.Fatalf("GetIndexNames after drop = %v, want empty", names)
	}
}

func TestCreateIndexRejectsDuplicateUniqueKey(t *testing.T) {
	c := newTestCatalog(t)
	if err := c.CreateTable(widgetsSchema()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	table, err := c.GetTable("widgets")
	if err != nil {
		t.Fatalf("GetTable: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := table.Insert(types.Row{"id": types.NewInt(1), "label": types.NewText([]byte("dup"))}); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
	}

	err = c.CreateIndex(&IndexInfo{
		TableName: "widgets",
		IndexName: "widgets_id_idx",
		Columns:   []string{"id"},
		Unique:    true,
		Kind:      index.BTreeKind,
	})
	if err == nil {
		t.Fatal("expected CreateIndex to fail building a unique index over duplicate keys")
	}
	if names, _ := c.GetIndexNames("widgets"); len(names) != 0 {
		t.Fatalf("CreateIndex left metadata rows behind after failing: %v", names)
	}
}
