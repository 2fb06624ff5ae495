package descriptor

import (
	"errors"
	"fmt"
)

//go:generate go tool stringer -type=ErrorKind -trimprefix=Kind -output=errorkind_string.go

// ErrorKind classifies descriptor errors.
type ErrorKind int

const (
	_ ErrorKind = iota // zero value is not a valid kind

	KindInvalidArgument
	KindTypeMismatch
	KindNotFound
)

// Error is a classified descriptor error. Sentinels below are matched with errors.Is.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}

	return e.Kind.String() + ": " + e.Msg
}

// Is reports kind equality, so any *Error matches the sentinel of its kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrTypeMismatch    = &Error{Kind: KindTypeMismatch}
	ErrNotFound        = &Error{Kind: KindNotFound}
)

func errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// FieldError reports which field of a node or builder was rejected.
type FieldError struct {
	Field string // e.g. "represented", "overrides[root]"
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func overrideField(key any) string {
	return fmt.Sprintf("overrides[%v]", key)
}
