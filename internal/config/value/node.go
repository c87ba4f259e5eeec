package value

import "github.com/dshills/tunable/internal/config/valuetype"

// Node is the kind-independent view of anything that lives in a scope:
// values, choice slots and nested scopes.
type Node interface {
	// Name returns the name, unique within the owning scope.
	Name() string
	// Path returns the dotted path from the root scope.
	Path() string
	// Kind returns the kind tag fixed at construction.
	Kind() valuetype.Kind

	// Document returns the document form of the current state.
	Document() any
	// DeserializeFrom applies a document.
	DeserializeFrom(doc any) error
	// SetByString parses and applies user text.
	SetByString(raw string) error
	// Restore resets to the declared default.
	Restore() error
	// Complete proposes completions for partial user text.
	Complete(partial string) []string

	// ScriptValue returns the scripting form of the current state.
	ScriptValue() any
	// SetScriptValue applies a foreign value from a script. Failures are
	// logged, never returned.
	SetScriptValue(foreign any)

	// Excluded reports whether the node is hidden from public documents.
	Excluded() bool
	// IsNotAnOption reports whether the node is hidden from API documents.
	IsNotAnOption() bool
}

// Documenter is implemented by payloads with their own document form.
type Documenter interface {
	Document() any
}

// DocumentDecoder is implemented by payload pointers that decode themselves
// from a document.
type DocumentDecoder interface {
	DecodeDocument(doc any) error
}

// NamedChoice is a variant identified by a display name unique among its
// siblings.
type NamedChoice interface {
	ChoiceName() string
}

// Shape is the container shape of a value, fixed at construction.
type Shape uint8

// Container shapes.
const (
	ShapeScalar Shape = iota
	ShapeList
	ShapeSet
	ShapeSortedSet
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeList:
		return "list"
	case ShapeSet:
		return "set"
	case ShapeSortedSet:
		return "sorted set"
	default:
		return "unknown"
	}
}
