package executor

import (
	"relstore/dberrors"
	"relstore/plan"
	"relstore/sqlast"
	"relstore/types"
)

// buildPredicate translates a WHERE clause into a plan.Predicate. Only
// conjunctions of column = literal are understood; any other operator or
// expression shape is rejected with the message the executor is
// required to raise for an unsupported clause.
func buildPredicate(schema *types.Schema, expr sqlast.Expr) (plan.Predicate, error) {
	if expr == nil {
		return nil, nil
	}
	switch e := expr.(type) {
	case *sqlast.And:
		left, err := buildPredicate(schema, e.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildPredicate(schema, e.Right)
		if err != nil {
			return nil, err
		}
		return func(r types.Row) bool { return left(r) && right(r) }, nil
	case *sqlast.BinaryOp:
		if e.Op != "=" {
			return nil, dberrors.Execf("Not supported operation type")
		}
		dt, ok := schema.ColumnType(e.Column)
		if !ok {
			return nil, dberrors.Relationf("column %q not found on table %q", e.Column, schema.TableName)
		}
		want, err := literalToValue(e.Value, dt)
		if err != nil {
			return nil, err
		}
		column := e.Column
		return func(r types.Row) bool {
			v, ok := r[column]
			return ok && v.Equal(want)
		}, nil
	default:
		return nil, dberrors.Execf("Not supported operation type")
	}
}
