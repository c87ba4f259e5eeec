// Package valuetype provides the catalog of value kinds and the registry that
// maps each kind to a string decoder and an autocompletion policy.
//
// A value's kind is fixed at construction. The registry is consulted when a
// value is set from user text or when a command layer asks for completions.
package valuetype

import "strings"

// Kind tags the payload a value carries.
type Kind uint8

// Value kinds.
const (
	Invalid Kind = iota
	Boolean
	Float
	FloatRange
	Int
	IntRange
	Text
	TextArray
	Color
	Key
	Bind
	Choice
	Choose
	Configurable
	Toggleable
)

var kindNames = [...]string{
	Invalid:      "INVALID",
	Boolean:      "BOOLEAN",
	Float:        "FLOAT",
	FloatRange:   "FLOAT_RANGE",
	Int:          "INT",
	IntRange:     "INT_RANGE",
	Text:         "TEXT",
	TextArray:    "TEXT_ARRAY",
	Color:        "COLOR",
	Key:          "KEY",
	Bind:         "BIND",
	Choice:       "CHOICE",
	Choose:       "CHOOSE",
	Configurable: "CONFIGURABLE",
	Toggleable:   "TOGGLEABLE",
}

// String returns the stable upper-case name used in documents.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "INVALID"
}

// Document returns the name of the kind.
func (k Kind) Document() any {
	return k.String()
}

// ParseKind returns the kind with the given name (case-insensitive).
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), Kind(i) != Invalid
		}
	}
	return Invalid, false
}

// ListKind tags the element type of a list or set value.
type ListKind uint8

// List element kinds.
const (
	ListNone ListKind = iota
	ListText
	ListInt
	ListFloat
	ListKey
	ListColor
)

var listKindNames = [...]string{
	ListNone:  "NONE",
	ListText:  "TEXT",
	ListInt:   "INT",
	ListFloat: "FLOAT",
	ListKey:   "KEY",
	ListColor: "COLOR",
}

// String returns the name of the list kind.
func (l ListKind) String() string {
	if int(l) < len(listKindNames) {
		return listKindNames[l]
	}
	return "NONE"
}

// ElementKind returns the scalar kind that decodes a single element.
func (l ListKind) ElementKind() Kind {
	switch l {
	case ListText:
		return Text
	case ListInt:
		return Int
	case ListFloat:
		return Float
	case ListKey:
		return Key
	case ListColor:
		return Color
	default:
		return Invalid
	}
}
