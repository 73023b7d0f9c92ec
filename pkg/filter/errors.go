package filter

import (
	"fmt"
)

// ErrorKind classifies the failures of the filter parser.
//
// It implements the error interface itself, so that callers can match a returned error against a kind
// using errors.Is, e.g. errors.Is(err, filter.UnknownField).
type ErrorKind uint8

// List of all the error kinds the parser may produce.
const (
	// MalformedCondition is returned when a term can't be split into exactly three tokens or contains
	// unbalanced quotes or parentheses.
	MalformedCondition ErrorKind = iota + 1
	// UnknownField is returned when a field isn't part of the caller supplied schema.
	UnknownField
	// InvalidField is returned when a field violates the quoting or identifier rules.
	InvalidField
	// UnknownOperator is returned for operator tokens outside the supported vocabulary.
	UnknownOperator
	// InvalidValue is returned when a value violates the rules of its operator.
	InvalidValue
	// UnsupportedOperator is returned when a value is validated against an operator the value validator
	// doesn't know about.
	UnsupportedOperator
	// MissingRequiredField is returned when a required schema field isn't referenced by any condition.
	MissingRequiredField
)

var errorKindNames = map[ErrorKind]string{
	MalformedCondition:   "malformed condition",
	UnknownField:         "unknown field",
	InvalidField:         "invalid field",
	UnknownOperator:      "unknown operator",
	InvalidValue:         "invalid value",
	UnsupportedOperator:  "unsupported operator",
	MissingRequiredField: "missing required field",
}

// String returns a human-readable name of this kind.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", k)
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the error type returned by all parsing and validation functions of this package.
type Error struct {
	Kind  ErrorKind // Kind is the class of the failure.
	Token string    // Token is the raw input token (or term) that caused the failure.

	msg string
}

func newError(kind ErrorKind, token, format string, args ...any) *Error {
	return &Error{Kind: kind, Token: token, msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the kind of this error, which allows errors.Is to match against an ErrorKind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Assert interface compliance.
var (
	_ error = ErrorKind(0)
	_ error = (*Error)(nil)
)
