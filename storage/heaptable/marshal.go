package heaptable

import (
	"encoding/binary"

	"relstore/dberrors"
	"relstore/storage/page"
	"relstore/types"
)

// marshal packs row into the fixed on-disk representation for schema:
// one field per column in schema order, INT as 4 little-endian bytes,
// TEXT as a 2-byte little-endian length prefix followed by the raw
// bytes, BOOLEAN as a single byte (0 or 1). Grounded in
// storage_engine/serialization.go's ValueToBytes/BytesToValue pair, but
// using different wire widths (that package uses a 4-byte float in
// place of BOOLEAN and has no boolean type at all).
//
// A record this large could never fit in a block regardless of how much
// free space the block happens to have, so marshal itself rejects it as
// a RelationError rather than letting the failure surface later as a
// NoRoom out of page.Add.
func marshal(schema *types.Schema, row types.Row) ([]byte, error) {
	buf := make([]byte, 0, 16)
	offset := 0
	checkRoom := func(grow int) error {
		offset += grow
		if offset > page.MaxRecordSize {
			return dberrors.Relationf("row too big to marshal")
		}
		return nil
	}
	for _, col := range schema.Columns {
		v, ok := row[col.Name]
		if !ok {
			return nil, dberrors.Relationf("missing value for column %q", col.Name)
		}
		if v.Type != col.Type {
			return nil, dberrors.Relationf("column %q: expected %s, got %s", col.Name, col.Type, v.Type)
		}
		switch col.Type {
		case types.INT:
			if err := checkRoom(4); err != nil {
				return nil, err
			}
			var tmp [4]byte
			binary.LittleEndian.PutUint32(tmp[:], uint32(v.Int))
			buf = append(buf, tmp[:]...)
		case types.TEXT:
			if len(v.Text) > 65535 {
				return nil, dberrors.Relationf("column %q: text value too long (%d bytes)", col.Name, len(v.Text))
			}
			if err := checkRoom(2 + len(v.Text)); err != nil {
				return nil, err
			}
			var tmp [2]byte
			binary.LittleEndian.PutUint16(tmp[:], uint16(len(v.Text)))
			buf = append(buf, tmp[:]...)
			buf = append(buf, v.Text...)
		case types.BOOLEAN:
			if err := checkRoom(1); err != nil {
				return nil, err
			}
			if v.Bool {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		default:
			return nil, dberrors.Relationf("column %q: unsupported data type %s", col.Name, col.Type)
		}
	}
	return buf, nil
}

// unmarshal is marshal's inverse. It rejects trailing or truncated
// bytes: the encoded length must match the schema exactly.
func unmarshal(schema *types.Schema, data []byte) (types.Row, error) {
	row := make(types.Row, len(schema.Columns))
	offset := 0
	for _, col := range schema.Columns {
		switch col.Type {
		case types.INT:
			if offset+4 > len(data) {
				return nil, dberrors.Relationf("column %q: truncated record", col.Name)
			}
			v := int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
			row[col.Name] = types.NewInt(v)
			offset += 4
		case types.TEXT:
			if offset+2 > len(data) {
				return nil, dberrors.Relationf("column %q: truncated record", col.Name)
			}
			n := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
			offset += 2
			if offset+n > len(data) {
				return nil, dberrors.Relationf("column %q: truncated record", col.Name)
			}
			text := make([]byte, n)
			copy(text, data[offset:offset+n])
			row[col.Name] = types.NewText(text)
			offset += n
		case types.BOOLEAN:
			if offset+1 > len(data) {
				return nil, dberrors.Relationf("column %q: truncated record", col.Name)
			}
			row[col.Name] = types.NewBool(data[offset] != 0)
			offset++
		default:
			return nil, dberrors.Relationf("column %q: unsupported data type %s", col.Name, col.Type)
		}
	}
	if offset != len(data) {
		return nil, dberrors.Relationf("record has %d trailing bytes past schema %s", len(data)-offset, schema.TableName)
	}
	return row, nil
}
