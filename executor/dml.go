package executor

import (
	"relstore/catalog"
	"relstore/dberrors"
	"relstore/plan"
	"relstore/sqlast"
	"relstore/storage/heaptable"
	"relstore/types"
)

func (e *Executor) execInsert(s *sqlast.Insert) (*Result, error) {
	schema, err := e.cat.GetSchema(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	if len(s.Values) != len(schema.Columns) {
		return nil, dberrors.Execf("table %s has %d columns, %d values given", s.Table, len(schema.Columns), len(s.Values))
	}

	row := make(types.Row, len(schema.Columns))
	for i, col := range schema.Columns {
		v, err := literalToValue(s.Values[i], col.Type)
		if err != nil {
			return nil, execErr(err)
		}
		row[col.Name] = v
	}

	table, err := e.cat.GetTable(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	handle, err := table.Insert(row)
	if err != nil {
		return nil, execErr(err)
	}

	indexNames, err := e.cat.GetIndexNames(s.Table)
	if err != nil {
		return nil, execErr(err)
	}

	var maintained []string
	for _, name := range indexNames {
		info, err := e.cat.GetIndexInfo(s.Table, name)
		if err != nil {
			return nil, e.rollbackInsert(table, handle, s.Table, row, maintained, execErr(err))
		}
		idx, err := e.cat.GetIndex(s.Table, name)
		if err != nil {
			return nil, e.rollbackInsert(table, handle, s.Table, row, maintained, execErr(err))
		}
		key, err := catalog.IndexKey(row, info)
		if err != nil {
			return nil, e.rollbackInsert(table, handle, s.Table, row, maintained, execErr(err))
		}
		if err := idx.Insert(key, handle); err != nil {
			return nil, e.rollbackInsert(table, handle, s.Table, row, maintained, execErr(err))
		}
		maintained = append(maintained, name)
	}

	return fmtResult("1 row inserted into %s", s.Table), nil
}

// rollbackInsert undoes the row insert and every index insert already
// applied when a later index insert fails, per the INSERT
// "delete from table and re-raise" compensation rule.
func (e *Executor) rollbackInsert(table *heaptable.HeapTable, handle types.Handle, tableName string, row types.Row, maintained []string, cause error) error {
	for _, name := range maintained {
		if info, err := e.cat.GetIndexInfo(tableName, name); err == nil {
			if idx, err := e.cat.GetIndex(tableName, name); err == nil {
				if key, err := catalog.IndexKey(row, info); err == nil {
					idx.Delete(key, handle)
				}
			}
		}
	}
	table.Delete(handle)
	return cause
}

func (e *Executor) execDelete(s *sqlast.Delete) (*Result, error) {
	schema, err := e.cat.GetSchema(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	table, err := e.cat.GetTable(s.Table)
	if err != nil {
		return nil, execErr(err)
	}

	pred, err := buildPredicate(schema, s.Where)
	if err != nil {
		return nil, err
	}
	var root plan.Node = &plan.TableScan{Table: table}
	if pred != nil {
		root = &plan.Select{Predicate: pred, Child: root}
	}
	_, handles, err := plan.Pipeline(plan.Optimize(root))
	if err != nil {
		return nil, execErr(err)
	}

	indexNames, err := e.cat.GetIndexNames(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	saved := make([]*catalog.IndexInfo, 0, len(indexNames))
	for _, name := range indexNames {
		info, err := e.cat.GetIndexInfo(s.Table, name)
		if err != nil {
			return nil, execErr(err)
		}
		saved = append(saved, info)
		if err := e.cat.DropIndex(s.Table, name); err != nil {
			return nil, execErr(err)
		}
	}

	for _, h := range handles {
		if err := table.Delete(h); err != nil {
			return nil, execErr(err)
		}
	}

	for _, info := range saved {
		if err := e.cat.CreateIndex(info); err != nil {
			return nil, execErr(err)
		}
	}

	return fmtResult("%d rows deleted from %s", len(handles), s.Table), nil
}

func (e *Executor) execSelect(s *sqlast.Select) (*Result, error) {
	schema, err := e.cat.GetSchema(s.Table)
	if err != nil {
		return nil, execErr(err)
	}
	table, err := e.cat.GetTable(s.Table)
	if err != nil {
		return nil, execErr(err)
	}

	pred, err := buildPredicate(schema, s.Where)
	if err != nil {
		return nil, err
	}
	var root plan.Node = &plan.TableScan{Table: table}
	if pred != nil {
		root = &plan.Select{Predicate: pred, Child: root}
	}

	var columns []string
	if s.List.Star {
		columns = schema.ColumnNames()
		root = &plan.ProjectAll{Child: root}
	} else {
		columns = s.List.Columns
		root = &plan.Project{Columns: s.List.Columns, Child: root}
	}

	rows, err := plan.Evaluate(plan.Optimize(root))
	if err != nil {
		return nil, execErr(err)
	}
	return &Result{Columns: columns, Rows: rows}, nil
}
