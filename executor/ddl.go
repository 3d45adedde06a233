package executor

import (
	"strings"

	"relstore/catalog"
	"relstore/dberrors"
	"relstore/index"
	"relstore/sqlast"
)

func (e *Executor) execCreateTable(s *sqlast.CreateTable) (*Result, error) {
	schema, err := columnDefsToSchema(s.Table, s.Columns)
	if err != nil {
		return nil, err
	}
	if err := e.cat.CreateTable(schema); err != nil {
		return nil, execErr(err)
	}
	return fmtResult("table %s created", s.Table), nil
}

func (e *Executor) execDropTable(s *sqlast.DropTable) (*Result, error) {
	if err := e.cat.DropTable(s.Table); err != nil {
		return nil, execErr(err)
	}
	return fmtResult("table %s dropped", s.Table), nil
}

func (e *Executor) execCreateIndex(s *sqlast.CreateIndex) (*Result, error) {
	kind := strings.ToUpper(s.Kind)
	if kind == "" {
		kind = string(index.BTreeKind)
	}
	var unique bool
	switch index.Kind(kind) {
	case index.BTreeKind:
		unique = true
	case index.HashKind:
		unique = false
	default:
		return nil, dberrors.Execf("unrecognized index type %q", s.Kind)
	}

	info := &catalog.IndexInfo{
		TableName: s.Table,
		IndexName: s.Index,
		Columns:   s.Columns,
		Unique:    unique,
		Kind:      index.Kind(kind),
	}
	if err := e.cat.CreateIndex(info); err != nil {
		return nil, execErr(err)
	}
	return fmtResult("index %s created on %s", s.Index, s.Table), nil
}

func (e *Executor) execDropIndex(s *sqlast.DropIndex) (*Result, error) {
	if err := e.cat.DropIndex(s.Table, s.Index); err != nil {
		return nil, execErr(err)
	}
	return fmtResult("index %s dropped", s.Index), nil
}
