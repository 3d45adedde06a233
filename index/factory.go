package index

import "relstore/dberrors"

// Kind names one of the two index bodies this package implements.
type Kind string

const (
	BTreeKind Kind = "BTREE"
	HashKind  Kind = "HASH"
)

// New builds an empty index of the named kind.
func New(kind Kind, unique bool) (Index, error) {
	switch kind {
	case BTreeKind:
		return NewBTree(unique), nil
	case HashKind:
		return NewHash(unique), nil
	default:
		return nil, dberrors.Relationf("unrecognized index type %q", kind)
	}
}
