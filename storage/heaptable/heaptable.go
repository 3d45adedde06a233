// Package heaptable implements HeapTable: a typed row store built on top
// of a HeapFile, marshaling Rows to and from the fixed byte encoding
// marshal.go defines and giving each stored row a stable types.Handle.
//
// Grounded in the split between heapfile_manager (raw bytes,
// RowPointer) and storage_engine (typed rows, serialization.go): this
// package is the typed layer, heapfile is the raw layer underneath it,
// matching that same boundary between the two packages.
package heaptable

import (
	"errors"

	"relstore/dberrors"
	"relstore/storage/blockstore"
	"relstore/storage/heapfile"
	"relstore/types"
)

// HeapTable is a HeapFile of records marshaled per Schema.
type HeapTable struct {
	Schema *types.Schema

	file *heapfile.HeapFile
	open bool
}

// New wraps an unopened blockstore.Store as a HeapTable for schema.
func New(schema *types.Schema, store blockstore.Store, path string) *HeapTable {
	return &HeapTable{Schema: schema, file: heapfile.New(store, path)}
}

// Create initializes brand new backing storage for the table.
func (t *HeapTable) Create() error {
	if err := t.file.Create(); err != nil {
		return err
	}
	t.open = true
	return nil
}

// CreateIfNotExists opens the table's storage if it already exists,
// or creates it if not.
func (t *HeapTable) CreateIfNotExists() error {
	if err := t.file.Open(); err != nil {
		return err
	}
	t.open = true
	return nil
}

// Open opens existing backing storage for the table.
func (t *HeapTable) Open() error {
	if err := t.file.Open(); err != nil {
		return err
	}
	t.open = true
	return nil
}

// Close flushes and closes the table's storage.
func (t *HeapTable) Close() error {
	if !t.open {
		return nil
	}
	t.open = false
	return t.file.Close()
}

// Drop closes (if needed) and deletes the table's backing storage.
func (t *HeapTable) Drop() error {
	return t.file.Drop()
}

// Insert marshals row and appends it. It fetches the last block and
// tries to add the record there; only on NoRoom does it allocate a
// fresh block and add there instead. It returns the row's Handle.
func (t *HeapTable) Insert(row types.Row) (types.Handle, error) {
	data, err := marshal(t.Schema, row)
	if err != nil {
		return types.Handle{}, err
	}

	blockID, err := t.file.GetLastBlockID()
	if err != nil {
		return types.Handle{}, err
	}
	p, err := t.file.Get(blockID)
	if err != nil {
		return types.Handle{}, err
	}
	recID, err := p.Add(data)
	if err != nil {
		var noRoom *dberrors.NoRoom
		if !errors.As(err, &noRoom) {
			return types.Handle{}, err
		}
		blockID, err = t.file.GetNew()
		if err != nil {
			return types.Handle{}, err
		}
		p, err = t.file.Get(blockID)
		if err != nil {
			return types.Handle{}, err
		}
		recID, err = p.Add(data)
		if err != nil {
			return types.Handle{}, err
		}
	}
	if err := t.file.Put(blockID, p); err != nil {
		return types.Handle{}, err
	}
	return types.Handle{Block: blockID, Record: recID}, nil
}

// Get fetches and unmarshals the row at handle.
func (t *HeapTable) Get(h types.Handle) (types.Row, error) {
	p, err := t.file.Get(h.Block)
	if err != nil {
		return nil, err
	}
	data, ok := p.Get(h.Record)
	if !ok {
		return nil, dberrors.Relationf("no row at %s", h.String())
	}
	return unmarshal(t.Schema, data)
}

// Delete tombstones the row at handle.
func (t *HeapTable) Delete(h types.Handle) error {
	p, err := t.file.Get(h.Block)
	if err != nil {
		return err
	}
	p.Del(h.Record)
	return t.file.Put(h.Block, p)
}

// Project restricts the row at handle to the given columns. A nil column
// list returns the row unrestricted.
func (t *HeapTable) Project(h types.Handle, columns []string) (types.Row, error) {
	row, err := t.Get(h)
	if err != nil {
		return nil, err
	}
	if columns == nil {
		return row, nil
	}
	out, err := row.Project(columns)
	if err != nil {
		return nil, dberrors.Relationf("%v", err)
	}
	return out, nil
}

// Select scans every live row and returns the handles for which where
// returns true. A nil where matches every row.
func (t *HeapTable) Select(where func(types.Row) bool) ([]types.Handle, error) {
	blockIDs, err := t.file.BlockIDs()
	if err != nil {
		return nil, err
	}
	var out []types.Handle
	for _, blockID := range blockIDs {
		p, err := t.file.Get(blockID)
		if err != nil {
			return nil, err
		}
		for _, recID := range p.Ids() {
			data, ok := p.Get(recID)
			if !ok {
				continue
			}
			row, err := unmarshal(t.Schema, data)
			if err != nil {
				return nil, err
			}
			if where == nil || where(row) {
				out = append(out, types.Handle{Block: blockID, Record: recID})
			}
		}
	}
	return out, nil
}
