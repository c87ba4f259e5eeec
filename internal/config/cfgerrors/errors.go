// Package cfgerrors defines the error taxonomy shared by values, choice slots,
// the type registry and the document codec.
//
// Every typed error matches a sentinel through errors.Is, so callers that only
// care about the category can write:
//
//	if errors.Is(err, cfgerrors.ErrParse) {
//	    // malformed user input
//	}
//
// and callers that need the details can use errors.As with the typed error.
package cfgerrors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for each failure category.
var (
	// ErrParse indicates malformed string input.
	ErrParse = errors.New("parse error")

	// ErrTypeMismatch indicates a document shape that cannot be decoded into the value.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownChoice indicates a variant name outside the declared set.
	ErrUnknownChoice = errors.New("unknown choice")

	// ErrUnsupportedType indicates a kind with no decoder or a foreign value that cannot be coerced.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrVetoed indicates a transform listener rejected an incoming value.
	ErrVetoed = errors.New("value vetoed")

	// ErrNotFound indicates a path that does not resolve to a node.
	ErrNotFound = errors.New("not found")
)

// ParseError describes malformed string input for a value kind.
type ParseError struct {
	// Kind is the name of the value kind being parsed.
	Kind string
	// Input is the raw text that failed to parse.
	Input string
	// Message describes what was wrong.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// NewParseError creates a ParseError.
func NewParseError(kind, input, message string, err error) *ParseError {
	return &ParseError{Kind: kind, Input: input, Message: message, Err: err}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("cannot parse %q as %s: %v", e.Input, e.Kind, e.Err)
	}
	return fmt.Sprintf("cannot parse %q as %s: %s", e.Input, e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements error matching for ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// TypeMismatchError is returned when a document cannot be decoded into a value.
type TypeMismatchError struct {
	// Name is the value name.
	Name string
	// Expected describes the expected payload type.
	Expected string
	// Actual describes the document's type.
	Actual string
	// Err is the last decode failure, if any.
	Err error
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for %s: expected %s, got %s", e.Name, e.Expected, e.Actual)
}

// Unwrap returns the last decode failure.
func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// Is implements error matching for TypeMismatchError.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// UnknownChoiceError is returned when a name does not match any declared variant.
type UnknownChoiceError struct {
	// Name is the name of the value or choice slot.
	Name string
	// Choice is the name that was requested.
	Choice string
	// Available lists every valid name in declaration order.
	Available []string
}

// Error implements the error interface.
func (e *UnknownChoiceError) Error() string {
	return fmt.Sprintf("%s has no option named %s (available options are %s)",
		e.Name, e.Choice, strings.Join(e.Available, ", "))
}

// Is implements error matching for UnknownChoiceError.
func (e *UnknownChoiceError) Is(target error) bool {
	return target == ErrUnknownChoice
}

// UnsupportedTypeError is returned when a kind has no decoder or a foreign
// value cannot be coerced into the value's payload type.
type UnsupportedTypeError struct {
	// Kind is the kind or payload type name.
	Kind string
	// Value is the offending foreign value, if any.
	Value any
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("unsupported type %s for value %v (%T)", e.Kind, e.Value, e.Value)
	}
	return fmt.Sprintf("cannot deserialize values of type %s", e.Kind)
}

// Is implements error matching for UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ValidationVeto is returned when a transform listener rejects a value.
type ValidationVeto struct {
	// Name is the value name.
	Name string
	// Value is the rejected incoming value.
	Value any
	// Err is the listener's failure.
	Err error
}

// Error implements the error interface.
func (e *ValidationVeto) Error() string {
	return fmt.Sprintf("failed to set %s to %v: %v", e.Name, e.Value, e.Err)
}

// Unwrap returns the listener's failure.
func (e *ValidationVeto) Unwrap() error {
	return e.Err
}

// Is implements error matching for ValidationVeto.
func (e *ValidationVeto) Is(target error) bool {
	return target == ErrVetoed
}

// NotFound wraps ErrNotFound with the unresolved path.
func NotFound(path string) error {
	return errors.Wrapf(ErrNotFound, "path %q", path)
}
