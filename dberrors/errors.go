// Package dberrors collects the small closed taxonomy of error kinds the
// storage engine raises, so callers can distinguish them with errors.As
// instead of matching on wrapped strings.
package dberrors

import "fmt"

// NoRoom is raised by a SlottedPage when it cannot accommodate a record of
// the requested size, either on add or on an enlarging put.
type NoRoom struct {
	Requested int
	Available int
}

func (e *NoRoom) Error() string {
	return fmt.Sprintf("no room: requested %d bytes, %d available", e.Requested, e.Available)
}

// NewNoRoom builds a NoRoom error.
func NewNoRoom(requested, available int) *NoRoom {
	return &NoRoom{Requested: requested, Available: available}
}

// RelationError signals a schema, marshaling or projection violation:
// an unknown column, a row too large to marshal, an unsupported column
// type, or a missing column value on insert.
type RelationError struct {
	Msg string
}

func (e *RelationError) Error() string { return e.Msg }

// Relationf builds a RelationError with a formatted message.
func Relationf(format string, args ...any) *RelationError {
	return &RelationError{Msg: fmt.Sprintf(format, args...)}
}

// ExecError signals a SQL-level failure: an unknown statement kind, an
// unsupported clause, a missing table or index, or an attempt to drop a
// schema table.
type ExecError struct {
	Msg string
	// Cause, when set, is the underlying error this ExecError wraps —
	// typically a RelationError or StoreError the executor is reporting
	// uniformly to its caller.
	Cause error
}

func (e *ExecError) Error() string {
	switch {
	case e.Msg == "" && e.Cause != nil:
		return e.Cause.Error()
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	default:
		return e.Msg
	}
}

func (e *ExecError) Unwrap() error { return e.Cause }

// Execf builds an ExecError with a formatted message and no cause.
func Execf(format string, args ...any) *ExecError {
	return &ExecError{Msg: fmt.Sprintf(format, args...)}
}

// WrapExec wraps an arbitrary error as an ExecError, undecorated, for
// uniform reporting to the executor's caller.
func WrapExec(err error) *ExecError {
	return &ExecError{Cause: err}
}

// StoreError signals a failure from the underlying block store: I/O
// failure, or an attempt to create a store that already exists.
type StoreError struct {
	Msg   string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *StoreError) Unwrap() error { return e.Cause }

// Storef builds a StoreError wrapping an underlying cause.
func Storef(cause error, format string, args ...any) *StoreError {
	return &StoreError{Msg: fmt.Sprintf(format, args...), Cause: cause}
}
