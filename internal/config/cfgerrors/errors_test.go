package cfgerrors

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestParseError(t *testing.T) {
	err := NewParseError("INT", "abc", "not a number", nil)

	if got := err.Error(); got != `cannot parse "abc" as INT: not a number` {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrParse) {
		t.Error("ParseError should match ErrParse")
	}
	if errors.Is(err, ErrTypeMismatch) {
		t.Error("ParseError should not match ErrTypeMismatch")
	}
}

func TestParseError_Wrapped(t *testing.T) {
	cause := errors.New("bad digit")
	err := errors.Wrap(NewParseError("FLOAT", "1.x", "", cause), "setting Factor")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As should find ParseError through wrapping")
	}
	if pe.Input != "1.x" {
		t.Errorf("Input = %q, want 1.x", pe.Input)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped ParseError should unwrap to its cause")
	}
}

func TestUnknownChoiceError(t *testing.T) {
	err := &UnknownChoiceError{Name: "Weapon", Choice: "Nope", Available: []string{"Sword", "Bow"}}

	want := "Weapon has no option named Nope (available options are Sword, Bow)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnknownChoice) {
		t.Error("should match ErrUnknownChoice")
	}
}

func TestTypedErrors_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"type mismatch", &TypeMismatchError{Name: "a", Expected: "int", Actual: "string"}, ErrTypeMismatch},
		{"unsupported", &UnsupportedTypeError{Kind: "BIND"}, ErrUnsupportedType},
		{"veto", &ValidationVeto{Name: "a", Value: 1, Err: errors.New("no")}, ErrVetoed},
		{"not found", NotFound("a.b"), ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.target)
			}
		})
	}
}

func TestUnsupportedTypeError_Message(t *testing.T) {
	err := &UnsupportedTypeError{Kind: "BIND"}
	if got := err.Error(); got != "cannot deserialize values of type BIND" {
		t.Errorf("Error() = %q", got)
	}

	err = &UnsupportedTypeError{Kind: "int", Value: "x"}
	if got := err.Error(); got != "unsupported type int for value x (string)" {
		t.Errorf("Error() = %q", got)
	}
}
