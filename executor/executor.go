// Package executor translates sqlast statements into catalog and plan
// operations. It is the dispatch table analog of
// query_executor/executor.go: one method per statement kind,
// switched on by Execute, with catalog mutation preceding backing-file
// creation on every DDL path and RelationError/StoreError uniformly
// wrapped as ExecError before reaching the caller.
package executor

import (
	"errors"
	"fmt"

	"relstore/catalog"
	"relstore/dberrors"
	"relstore/sqlast"
	"relstore/types"
)

// Executor runs sqlast.Statement values against one open Catalog.
type Executor struct {
	cat *catalog.Catalog
}

// New returns an Executor bound to cat.
func New(cat *catalog.Catalog) *Executor {
	return &Executor{cat: cat}
}

// Result is the uniform shape every statement kind reports back: a
// single message string accompanies the returned query result.
type Result struct {
	Columns []string
	Rows    []types.Row
	Message string
}

// Execute dispatches stmt to its handler.
func (e *Executor) Execute(stmt sqlast.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *sqlast.CreateTable:
		return e.execCreateTable(s)
	case *sqlast.DropTable:
		return e.execDropTable(s)
	case *sqlast.CreateIndex:
		return e.execCreateIndex(s)
	case *sqlast.DropIndex:
		return e.execDropIndex(s)
	case *sqlast.ShowTables:
		return e.execShowTables(s)
	case *sqlast.ShowColumns:
		return e.execShowColumns(s)
	case *sqlast.ShowIndex:
		return e.execShowIndex(s)
	case *sqlast.Insert:
		return e.execInsert(s)
	case *sqlast.Delete:
		return e.execDelete(s)
	case *sqlast.Select:
		return e.execSelect(s)
	default:
		return nil, dberrors.Execf("unrecognized statement type %T", stmt)
	}
}

// execErr wraps any error not already an ExecError: RelationError and
// StoreError surface here and are reported uniformly as ExecError.
func execErr(err error) error {
	if err == nil {
		return nil
	}
	var ee *dberrors.ExecError
	if errors.As(err, &ee) {
		return err
	}
	return dberrors.WrapExec(err)
}

func literalToValue(lit sqlast.Literal, want types.DataType) (types.Value, error) {
	switch want {
	case types.INT:
		if lit.IsString {
			return types.Value{}, dberrors.Relationf("expected an INT literal, got a string")
		}
		return types.NewInt(lit.Int), nil
	case types.TEXT:
		if !lit.IsString {
			return types.Value{}, dberrors.Relationf("expected a TEXT literal, got an integer")
		}
		return types.NewText([]byte(lit.Str)), nil
	default:
		return types.Value{}, dberrors.Relationf("unsupported column type %s for a SQL literal", want)
	}
}

func columnDefsToSchema(table string, cols []sqlast.ColumnDef) (*types.Schema, error) {
	schema := &types.Schema{TableName: table}
	for _, c := range cols {
		dt, err := types.ParseDataType(c.Type)
		if err != nil {
			return nil, dberrors.WrapExec(err)
		}
		if dt != types.INT && dt != types.TEXT {
			return nil, dberrors.Execf("unsupported column type %s for CREATE TABLE", dt)
		}
		schema.Columns = append(schema.Columns, types.ColumnDef{Name: c.Name, Type: dt})
	}
	return schema, nil
}

func fmtResult(msg string, args ...any) *Result {
	return &Result{Message: fmt.Sprintf(msg, args...)}
}
