// Package types holds the value model shared by every layer of the
// storage engine: the typed column values a row is built from, the column
// definitions a schema is built from, and the row handle a caller uses to
// address a single stored record.
package types

import "fmt"

// DataType tags a column's storage representation. The engine supports a
// small, fixed set of scalar types; floating point, NULLs, defaults and
// foreign keys are not part of this layer.
type DataType int

const (
	// INT is a signed 32-bit integer, stored little-endian in 4 bytes.
	INT DataType = iota
	// TEXT is a byte string of length <= 65535, stored as a 2-byte
	// length prefix followed by the raw bytes.
	TEXT
	// BOOLEAN is a single byte, 0 or 1.
	BOOLEAN
)

func (dt DataType) String() string {
	switch dt {
	case INT:
		return "INT"
	case TEXT:
		return "TEXT"
	case BOOLEAN:
		return "BOOLEAN"
	default:
		return fmt.Sprintf("DataType(%d)", int(dt))
	}
}

// ParseDataType maps a column type token (as it would appear in a CREATE
// TABLE statement) to a DataType. DOUBLE is recognized only so callers can
// reject it with the specified message; it never becomes a valid DataType.
func ParseDataType(token string) (DataType, error) {
	switch token {
	case "INT", "INTEGER":
		return INT, nil
	case "TEXT", "VARCHAR", "STRING":
		return TEXT, nil
	case "BOOLEAN", "BOOL":
		return BOOLEAN, nil
	case "DOUBLE", "FLOAT", "REAL":
		return 0, fmt.Errorf("unrecognized data type")
	default:
		return 0, fmt.Errorf("unrecognized data type: %s", token)
	}
}

// Value is a tagged union over the three supported column types.
type Value struct {
	Type DataType
	Int  int32
	Text []byte
	Bool bool
}

// NewInt builds an INT value.
func NewInt(n int32) Value { return Value{Type: INT, Int: n} }

// NewText builds a TEXT value. The byte slice is retained, not copied.
func NewText(s []byte) Value { return Value{Type: TEXT, Text: s} }

// NewBool builds a BOOLEAN value.
func NewBool(b bool) Value { return Value{Type: BOOLEAN, Bool: b} }

// Equal reports strict value equality: same tag, same payload. Two values
// of different types are never equal, even if one could be coerced to the
// other's representation — this engine does no implicit coercion.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case INT:
		return v.Int == other.Int
	case TEXT:
		return string(v.Text) == string(other.Text)
	case BOOLEAN:
		return v.Bool == other.Bool
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Type {
	case INT:
		return fmt.Sprintf("%d", v.Int)
	case TEXT:
		return string(v.Text)
	case BOOLEAN:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "<invalid value>"
	}
}

// Row is a mapping from column name to Value. Column order is not
// semantically significant on a Row; the owning table's schema supplies
// the canonical order for marshaling.
type Row map[string]Value

// Clone returns a shallow copy of the row (Values themselves are copied by
// value; a TEXT payload's backing array is shared).
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Project restricts a row to the given column names. It returns an error
// naming the first column that isn't present in r.
func (r Row) Project(columns []string) (Row, error) {
	out := make(Row, len(columns))
	for _, c := range columns {
		v, ok := r[c]
		if !ok {
			return nil, fmt.Errorf("column %q not found in row", c)
		}
		out[c] = v
	}
	return out, nil
}
