package catalog

import "relstore/types"

// The three system relations, self-describing: the
// catalog is bootstrapped by inserting rows into itself that describe
// its own tables, the way CatalogManager persists its own
// table_file_mapping.json alongside the tables it tracks, except here
// the persistence file is an ordinary HeapTable rather than JSON.
const (
	TablesTable  = "_tables"
	ColumnsTable = "_columns"
	IndicesTable = "_indices"
)

func tablesSchema() *types.Schema {
	return &types.Schema{
		TableName: TablesTable,
		Columns: []types.ColumnDef{
			{Name: "table_name", Type: types.TEXT},
		},
	}
}

func columnsSchema() *types.Schema {
	return &types.Schema{
		TableName: ColumnsTable,
		Columns: []types.ColumnDef{
			{Name: "table_name", Type: types.TEXT},
			{Name: "column_name", Type: types.TEXT},
			{Name: "data_type", Type: types.TEXT},
			{Name: "seq", Type: types.INT},
		},
	}
}

func indicesSchema() *types.Schema {
	return &types.Schema{
		TableName: IndicesTable,
		Columns: []types.ColumnDef{
			{Name: "table_name", Type: types.TEXT},
			{Name: "index_name", Type: types.TEXT},
			{Name: "column_name", Type: types.TEXT},
			{Name: "seq_in_index", Type: types.INT},
			{Name: "is_unique", Type: types.BOOLEAN},
			{Name: "index_type", Type: types.TEXT},
		},
	}
}

// isSystemTable reports whether name is one of the catalog's own
// self-describing relations. SHOW TABLES filters these out.
func isSystemTable(name string) bool {
	return name == TablesTable || name == ColumnsTable || name == IndicesTable
}
