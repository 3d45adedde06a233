package catalog

import (
	"sort"

	"relstore/dberrors"
	"relstore/index"
	"relstore/types"
)

// IndexInfo describes one declared index: its columns in declaration
// order, whether it is unique, and its underlying structure.
type IndexInfo struct {
	TableName string
	IndexName string
	Columns   []string
	Unique    bool
	Kind      index.Kind
}

func indexCacheKey(tableName, indexName string) string {
	return tableName + "." + indexName
}

// GetIndexNames returns every index declared on table, sorted for
// deterministic SHOW INDEX output. Takes (table_name) only, matching
// GetIndex's (table_name, index_name) order below.
func (c *Catalog) GetIndexNames(tableName string) ([]string, error) {
	handles, err := c.indices.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == tableName
	})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, h := range handles {
		row, err := c.indices.Get(h)
		if err != nil {
			return nil, err
		}
		name := string(row["index_name"].Text)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetIndexInfo returns the declared metadata for (tableName, indexName).
func (c *Catalog) GetIndexInfo(tableName, indexName string) (*IndexInfo, error) {
	handles, err := c.indices.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == tableName && string(r["index_name"].Text) == indexName
	})
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, dberrors.Relationf("index %q on table %q not found", indexName, tableName)
	}
	rows := make([]types.Row, 0, len(handles))
	for _, h := range handles {
		row, err := c.indices.Get(h)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i]["seq_in_index"].Int < rows[j]["seq_in_index"].Int })

	info := &IndexInfo{
		TableName: tableName,
		IndexName: indexName,
		Unique:    rows[0]["is_unique"].Bool,
		Kind:      index.Kind(rows[0]["index_type"].Text),
	}
	for _, row := range rows {
		info.Columns = append(info.Columns, string(row["column_name"].Text))
	}
	return info, nil
}

// GetIndex returns the live Index structure for (tableName, indexName),
// building it from a full table scan and caching it on first use.
func (c *Catalog) GetIndex(tableName, indexName string) (index.Index, error) {
	key := indexCacheKey(tableName, indexName)
	if idx, ok := c.indexCache[key]; ok {
		return idx, nil
	}

	info, err := c.GetIndexInfo(tableName, indexName)
	if err != nil {
		return nil, err
	}

	idx, err := index.New(info.Kind, info.Unique)
	if err != nil {
		return nil, err
	}

	table, err := c.GetTable(tableName)
	if err != nil {
		return nil, err
	}
	handles, err := table.Select(nil)
	if err != nil {
		return nil, err
	}
	for _, h := range handles {
		row, err := table.Get(h)
		if err != nil {
			return nil, err
		}
		k, err := IndexKey(row, info)
		if err != nil {
			return nil, err
		}
		if err := idx.Insert(k, h); err != nil {
			return nil, err
		}
	}

	c.indexCache[key] = idx
	return idx, nil
}

// IndexKey extracts info's columns from row, in declaration order, and
// folds them into the single value the underlying Index looks up by. It
// is exported so INSERT/DELETE index maintenance builds exactly the same
// key GetIndex used when populating the structure from a scan.
func IndexKey(row types.Row, info *IndexInfo) (types.Value, error) {
	values := make([]types.Value, len(info.Columns))
	for i, col := range info.Columns {
		v, ok := row[col]
		if !ok {
			return types.Value{}, dberrors.Relationf("index %q: column %q not found on table %q", info.IndexName, col, info.TableName)
		}
		values[i] = v
	}
	return index.CompositeKey(values), nil
}

// CreateIndex registers a new index and builds its live structure
// eagerly, so a failure (e.g. a duplicate key under a unique index)
// surfaces at CREATE INDEX time rather than on first use.
func (c *Catalog) CreateIndex(info *IndexInfo) error {
	if !c.TableExists(info.TableName) {
		return dberrors.Relationf("table %q not found", info.TableName)
	}
	if names, err := c.GetIndexNames(info.TableName); err != nil {
		return err
	} else {
		for _, n := range names {
			if n == info.IndexName {
				return dberrors.Relationf("index %q already exists on table %q", info.IndexName, info.TableName)
			}
		}
	}

	var inserted []types.Handle
	for seq, col := range info.Columns {
		h, err := c.indices.Insert(types.Row{
			"table_name":   types.NewText([]byte(info.TableName)),
			"index_name":   types.NewText([]byte(info.IndexName)),
			"column_name":  types.NewText([]byte(col)),
			"seq_in_index": types.NewInt(int32(seq + 1)),
			"is_unique":    types.NewBool(info.Unique),
			"index_type":   types.NewText([]byte(info.Kind)),
		})
		if err != nil {
			for _, ih := range inserted {
				c.indices.Delete(ih)
			}
			return err
		}
		inserted = append(inserted, h)
	}

	if _, err := c.GetIndex(info.TableName, info.IndexName); err != nil {
		for _, ih := range inserted {
			c.indices.Delete(ih)
		}
		return err
	}
	return nil
}

// DropIndex removes an index's metadata rows and evicts its cached live
// structure.
func (c *Catalog) DropIndex(tableName, indexName string) error {
	handles, err := c.indices.Select(func(r types.Row) bool {
		return string(r["table_name"].Text) == tableName && string(r["index_name"].Text) == indexName
	})
	if err != nil {
		return err
	}
	if len(handles) == 0 {
		return dberrors.Relationf("index %q on table %q not found", indexName, tableName)
	}
	for _, h := range handles {
		if err := c.indices.Delete(h); err != nil {
			return err
		}
	}
	delete(c.indexCache, indexCacheKey(tableName, indexName))
	return nil
}
