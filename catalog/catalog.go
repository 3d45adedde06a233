// Package catalog implements the bootstrapped, self-describing system
// catalog: _tables, _columns and _indices are
// themselves ordinary HeapTables, created the first time a database is
// opened and populated with rows describing their own schemas.
//
// Grounded in storage_engine/catalog.CatalogManager: a cache-or-load
// GetTableSchema fast path backed by persistent metadata, register/
// unregister operations that keep the persisted metadata and the
// in-memory cache in lockstep. CatalogManager persists metadata as JSON
// files and backs its fast path with a bare map; this catalog persists
// metadata as rows in its own _tables / _columns / _indices relations
// and backs its fast path with a github.com/dgraph-io/ristretto/v2
// cache, a dependency the storage_engine go.mod declares but never
// imports.
package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/dgraph-io/ristretto/v2"

	"relstore/dberrors"
	"relstore/index"
	"relstore/storage/blockstore"
	"relstore/storage/heaptable"
	"relstore/types"
)

// Catalog owns a database directory: one file per relation, plus the
// three system relations describing every other one.
type Catalog struct {
	dir     string
	tables  *heaptable.HeapTable
	columns *heaptable.HeapTable
	indices *heaptable.HeapTable

	relationCache *ristretto.Cache[string, *heaptable.HeapTable]
	indexCache    map[string]index.Index
}

// Open opens the catalog rooted at dir, creating the directory and the
// three system relations if this is a brand new database.
func Open(dir string) (*Catalog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dberrors.Storef(err, "failed to create database directory %s", dir)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *heaptable.HeapTable]{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, dberrors.Storef(err, "failed to build relation cache")
	}

	c := &Catalog{
		dir:           dir,
		relationCache: cache,
		indexCache:    make(map[string]index.Index),
	}

	bootstrapping := !c.relationFileExists(TablesTable)

	c.tables = heaptable.New(tablesSchema(), blockstore.NewFileStore(), c.relationPath(TablesTable))
	c.columns = heaptable.New(columnsSchema(), blockstore.NewFileStore(), c.relationPath(ColumnsTable))
	c.indices = heaptable.New(indicesSchema(), blockstore.NewFileStore(), c.relationPath(IndicesTable))

	for _, t := range []*heaptable.HeapTable{c.tables, c.columns, c.indices} {
		if err := t.CreateIfNotExists(); err != nil {
			return nil, err
		}
	}

	if bootstrapping {
		if err := c.bootstrap(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Catalog) relationPath(name string) string {
	return filepath.Join(c.dir, name+".tbl")
}

func (c *Catalog) relationFileExists(name string) bool {
	_, err := os.Stat(c.relationPath(name))
	return err == nil
}

// bootstrap inserts the self-describing rows for the three system
// relations into themselves.
func (c *Catalog) bootstrap() error {
	for _, name := range []string{TablesTable, ColumnsTable, IndicesTable} {
		if _, err := c.tables.Insert(types.Row{"table_name": types.NewText([]byte(name))}); err != nil {
			return err
		}
	}
	schemas := []*types.Schema{tablesSchema(), columnsSchema(), indicesSchema()}
	for _, s := range schemas {
		for seq, col := range s.Columns {
			row := types.Row{
				"table_name":  types.NewText([]byte(s.TableName)),
				"column_name": types.NewText([]byte(col.Name)),
				"data_type":   types.NewText([]byte(col.Type.String())),
				"seq":         types.NewInt(int32(seq)),
			}
			if _, err := c.columns.Insert(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every open relation, including any cached table handles.
func (c *Catalog) Close() error {
	var firstErr error
	names, err := c.ListTables()
	if err != nil {
		firstErr = err
	}
	for _, name := range names {
		if t, ok := c.relationCache.Get(name); ok {
			if err := t.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	c.relationCache.Close()
	for _, t := range []*heaptable.HeapTable{c.tables, c.columns, c.indices} {
		if err := t.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// TableExists reports whether name has a row in _tables: a table
// registered with CreateTable, or one of the bootstrapped system relations.
func (c *Catalog) TableExists(name string) bool {
	rows, err := c.tables.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == name
	})
	return err == nil && len(rows) > 0
}

// ListTables returns every user-visible table name, excluding the
// system relations, sorted for deterministic SHOW TABLES output.
func (c *Catalog) ListTables() ([]string, error) {
	handles, err := c.tables.Select(nil)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, h := range handles {
		row, err := c.tables.Get(h)
		if err != nil {
			return nil, err
		}
		name := string(row["table_name"].Text)
		if !isSystemTable(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetSchema returns the declared column list for name, in declaration
// order.
func (c *Catalog) GetSchema(name string) (*types.Schema, error) {
	handles, err := c.columns.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == name
	})
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, dberrors.Relationf("table %q not found", name)
	}
	rows := make([]types.Row, 0, len(handles))
	for _, h := range handles {
		row, err := c.columns.Get(h)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i]["seq"].Int < rows[j]["seq"].Int })

	schema := &types.Schema{TableName: name}
	for _, row := range rows {
		dt, err := types.ParseDataType(string(row["data_type"].Text))
		if err != nil {
			return nil, dberrors.Relationf("table %q: %v", name, err)
		}
		schema.Columns = append(schema.Columns, types.ColumnDef{
			Name: string(row["column_name"].Text),
			Type: dt,
		})
	}
	return schema, nil
}

// CreateTable registers schema and creates its backing storage. It fails
// if the name is already registered.
func (c *Catalog) CreateTable(schema *types.Schema) error {
	if c.TableExists(schema.TableName) {
		return dberrors.Relationf("table %q already exists", schema.TableName)
	}

	tableRow, err := c.tables.Insert(types.Row{"table_name": types.NewText([]byte(schema.TableName))})
	if err != nil {
		return err
	}

	var columnRows []types.Handle
	for seq, col := range schema.Columns {
		h, err := c.columns.Insert(types.Row{
			"table_name":  types.NewText([]byte(schema.TableName)),
			"column_name": types.NewText([]byte(col.Name)),
			"data_type":   types.NewText([]byte(col.Type.String())),
			"seq":         types.NewInt(int32(seq)),
		})
		if err != nil {
			// Roll back everything inserted so far for this statement.
			c.tables.Delete(tableRow)
			for _, ch := range columnRows {
				c.columns.Delete(ch)
			}
			return err
		}
		columnRows = append(columnRows, h)
	}

	table := heaptable.New(schema, blockstore.NewFileStore(), c.relationPath(schema.TableName))
	if err := table.Create(); err != nil {
		c.tables.Delete(tableRow)
		for _, ch := range columnRows {
			c.columns.Delete(ch)
		}
		return err
	}
	c.relationCache.SetWithTTL(schema.TableName, table, 1, 0)
	c.relationCache.Wait()
	return nil
}

// DropTable removes name's rows from the system relations, drops its
// indices, and deletes its backing storage. Dropping a system table or
// an unknown table is an error.
func (c *Catalog) DropTable(name string) error {
	if isSystemTable(name) {
		return dberrors.Relationf("cannot drop system table %q", name)
	}
	if !c.TableExists(name) {
		return dberrors.Relationf("table %q not found", name)
	}

	indexNames, err := c.GetIndexNames(name)
	if err != nil {
		return err
	}
	for _, idxName := range indexNames {
		if err := c.DropIndex(name, idxName); err != nil {
			return err
		}
	}

	table, err := c.GetTable(name)
	if err != nil {
		return err
	}
	if err := table.Drop(); err != nil {
		return err
	}
	c.relationCache.Del(name)

	columnHandles, err := c.columns.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == name
	})
	if err != nil {
		return err
	}
	for _, h := range columnHandles {
		if err := c.columns.Delete(h); err != nil {
			return err
		}
	}

	tableHandles, err := c.tables.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == name
	})
	if err != nil {
		return err
	}
	for _, h := range tableHandles {
		if err := c.tables.Delete(h); err != nil {
			return err
		}
	}
	return nil
}

// GetTable returns an open HeapTable for name, opening and caching it on
// first use.
func (c *Catalog) GetTable(name string) (*heaptable.HeapTable, error) {
	if t, ok := c.relationCache.Get(name); ok {
		return t, nil
	}
	if !c.TableExists(name) {
		return nil, dberrors.Relationf("table %q not found", name)
	}
	schema, err := c.GetSchema(name)
	if err != nil {
		return nil, err
	}
	table := heaptable.New(schema, blockstore.NewFileStore(), c.relationPath(name))
	if err := table.Open(); err != nil {
		return nil, err
	}
	c.relationCache.SetWithTTL(name, table, 1, 0)
	c.relationCache.Wait()
	return table, nil
}
