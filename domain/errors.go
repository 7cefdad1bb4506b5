package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTargetNil is returned when the passed target, which should be a
	// pointer, is passed as a nil value.
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned when the decode target is not a pointer.
	ErrNonPointer = errors.New("target is not a pointer")
	// ErrMixedConjunctions is returned when a single group joins terms with
	// both & and |.
	ErrMixedConjunctions = errors.New("cannot mix conjunctions within a group, use parenthesis around each set of same conjunctions (& and |)")
)

// ErrUnsupportedOperator is returned when a query tree contains an operator
// name that has no translation. The whole translation fails.
type ErrUnsupportedOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnsupportedOperator) Error() string {
	return fmt.Sprintf("unsupported operator: %s", e.Operator)
}

// ErrUnsupportedQuery is returned when the value given to a translator is not
// a string, a query tree or an object.
type ErrUnsupportedQuery struct {
	Query any
}

// Error implements [error].
func (e ErrUnsupportedQuery) Error() string {
	return fmt.Sprintf("cannot translate query of type %T", e.Query)
}

// ErrParse wraps syntax errors found in RQL text.
type ErrParse struct {
	Query string
	Err   error
}

// Error implements [error].
func (e ErrParse) Error() string {
	return fmt.Sprintf("cannot parse query %q: %s", e.Query, e.Err)
}

// Unwrap returns the underlying error.
func (e ErrParse) Unwrap() error { return e.Err }

// ErrUnknownConverter is returned when a value is prefixed with a converter
// name, like "date:", that is not registered.
type ErrUnknownConverter struct {
	Name string
}

// Error implements [error].
func (e ErrUnknownConverter) Error() string {
	return fmt.Sprintf("unknown converter %q", e.Name)
}

// ErrConvert is returned when a converter cannot read the given text.
type ErrConvert struct {
	Converter string
	Value     string
	Err       error
}

// Error implements [error].
func (e ErrConvert) Error() string {
	return fmt.Sprintf("converter %s cannot read %q: %s", e.Converter, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e ErrConvert) Unwrap() error { return e.Err }

// ErrDecode is returned by [Decoder.Decode] to easily wrap third party decoding
// errors.
type ErrDecode struct {
	Source any
	Target any
}

// Error implements [error].
func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}
