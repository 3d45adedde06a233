package executor

import (
	"relstore/sqlast"
	"relstore/types"
)

func (e *Executor) execShowTables(_ *sqlast.ShowTables) (*Result, error) {
	names, err := e.cat.ListTables()
	if err != nil {
		return nil, execErr(err)
	}
	rows := make([]types.Row, len(names))
	for i, name := range names {
		rows[i] = types.Row{"table_name": types.NewText([]byte(name))}
	}
	return &Result{Columns: []string{"table_name"}, Rows: rows}, nil
}

func (e *Executor) execShowColumns(s *sqlast.ShowColumns) (*Result, error) {
	schema, err := e.cat.GetSchema(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	rows := make([]types.Row, len(schema.Columns))
	for i, col := range schema.Columns {
		rows[i] = types.Row{
			"column_name": types.NewText([]byte(col.Name)),
			"data_type":   types.NewText([]byte(col.Type.String())),
		}
	}
	return &Result{Columns: []string{"column_name", "data_type"}, Rows: rows}, nil
}

func (e *Executor) execShowIndex(s *sqlast.ShowIndex) (*Result, error) {
	names, err := e.cat.GetIndexNames(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	var rows []types.Row
	for _, name := range names {
		info, err := e.cat.GetIndexInfo(s.Table, name)
		if err != nil {
			return nil, execErr(err)
		}
		for seq, col := range info.Columns {
			rows = append(rows, types.Row{
				"table_name":   types.NewText([]byte(info.TableName)),
				"index_name":   types.NewText([]byte(info.IndexName)),
				"column_name":  types.NewText([]byte(col)),
				"seq_in_index": types.NewInt(int32(seq + 1)),
				"index_type":   types.NewText([]byte(info.Kind)),
				"is_unique":    types.NewBool(info.Unique),
			})
		}
	}
	columns := []string{"table_name", "index_name", "column_name", "seq_in_index", "index_type", "is_unique"}
	return &Result{Columns: columns, Rows: rows}, nil
}
