// Package plan implements the small evaluation-plan tree the executor
// builds for SELECT and DELETE: TableScan, Select, Project and
// ProjectAll nodes that either materialize rows or, for the restricted
// TableScan[+Select] spine, stream handles for a mutator to consume.
//
// No teacher or pack example carries a comparable plan-tree abstraction
// (the closest analog, query_executor/executor.go, dispatches directly
// on AST without an intermediate plan representation), so this package
// keeps to a small interface with plain struct literals and no builder
// pattern; all node types live in this one file.
package plan

import (
	"relstore/dberrors"
	"relstore/storage/heaptable"
	"relstore/types"
)

// Predicate tests a materialized row.
type Predicate func(types.Row) bool

// Node is one plan-tree operator.
type Node interface {
	node()
}

// TableScan reads every live row of a table in ascending block-id,
// ascending record-id order. Residual, if non-nil, is a predicate that
// has been pushed down into the scan by Optimize.
type TableScan struct {
	Table    *heaptable.HeapTable
	Residual Predicate
}

func (*TableScan) node() {}

// Select filters Child's output through Predicate.
type Select struct {
	Predicate Predicate
	Child     Node
}

func (*Select) node() {}

// Project restricts Child's output to Columns.
type Project struct {
	Columns []string
	Child   Node
}

func (*Project) node() {}

// ProjectAll passes Child's output through unrestricted; it exists so a
// bare `SELECT *` has an explicit node distinct from an omitted
// Project.
type ProjectAll struct {
	Child Node
}

func (*ProjectAll) node() {}

// Optimize pushes a Select directly above a TableScan into the scan's
// residual predicate. Every other shape passes through unchanged.
func Optimize(n Node) Node {
	if sel, ok := n.(*Select); ok {
		if scan, ok := sel.Child.(*TableScan); ok {
			return &TableScan{Table: scan.Table, Residual: andPredicates(scan.Residual, sel.Predicate)}
		}
		return &Select{Predicate: sel.Predicate, Child: Optimize(sel.Child)}
	}
	switch t := n.(type) {
	case *Project:
		return &Project{Columns: t.Columns, Child: Optimize(t.Child)}
	case *ProjectAll:
		return &ProjectAll{Child: Optimize(t.Child)}
	default:
		return n
	}
}

func andPredicates(a, b Predicate) Predicate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(r types.Row) bool { return a(r) && b(r) }
}

// Pipeline returns the handle stream produced by the plan's root, legal
// only when the (optimized) root reduces to a bare TableScan. It is
// used by DELETE, which needs handles rather than materialized rows.
func Pipeline(n Node) (*heaptable.HeapTable, []types.Handle, error) {
	scan, ok := n.(*TableScan)
	if !ok {
		return nil, nil, dberrors.Execf("plan does not reduce to a single table scan")
	}
	handles, err := scan.Table.Select(rowFilter(scan.Residual))
	if err != nil {
		return nil, nil, err
	}
	return scan.Table, handles, nil
}

func rowFilter(p Predicate) func(types.Row) bool {
	if p == nil {
		return nil
	}
	return func(r types.Row) bool { return p(r) }
}

// Evaluate runs the whole tree to materialized rows, used by SELECT.
func Evaluate(n Node) ([]types.Row, error) {
	switch t := n.(type) {
	case *TableScan:
		handles, err := t.Table.Select(rowFilter(t.Residual))
		if err != nil {
			return nil, err
		}
		rows := make([]types.Row, 0, len(handles))
		for _, h := range handles {
			row, err := t.Table.Get(h)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	case *Select:
		rows, err := Evaluate(t.Child)
		if err != nil {
			return nil, err
		}
		out := rows[:0]
		for _, r := range rows {
			if t.Predicate(r) {
				out = append(out, r)
			}
		}
		return out, nil
	case *Project:
		rows, err := Evaluate(t.Child)
		if err != nil {
			return nil, err
		}
		out := make([]types.Row, len(rows))
		for i, r := range rows {
			projected, err := r.Project(t.Columns)
			if err != nil {
				return nil, dberrors.Relationf("%v", err)
			}
			out[i] = projected
		}
		return out, nil
	case *ProjectAll:
		return Evaluate(t.Child)
	default:
		return nil, dberrors.Execf("unrecognized plan node %T", n)
	}
}
