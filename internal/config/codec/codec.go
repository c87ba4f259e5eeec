// Package codec converts value trees to and from documents and serializes
// documents as JSON, TOML, YAML or CBOR.
//
// A document is a generic tree of map[string]any, []any and primitives.
// Encode produces one from a node; Decode applies one to a node.
package codec

import (
	"github.com/dshills/tunable/internal/config/configurable"
	"github.com/dshills/tunable/internal/config/value"
)

// EncodeOptions selects which nodes are written.
type EncodeOptions struct {
	// Public skips nodes excluded from public documents.
	Public bool

	// API skips nodes that are not options.
	API bool
}

func (o EncodeOptions) keep() func(value.Node) bool {
	if !o.Public && !o.API {
		return nil
	}
	return func(n value.Node) bool {
		if o.Public && n.Excluded() {
			return false
		}
		if o.API && n.IsNotAnOption() {
			return false
		}
		return true
	}
}

// Encode returns the document of n. Scopes are filtered by opts; a filtered
// out leaf encodes as nil.
func Encode(n value.Node, opts EncodeOptions) any {
	keep := opts.keep()
	if s, ok := n.(*configurable.Scope); ok {
		return s.DocumentFunc(keep)
	}
	if keep != nil && !keep(n) {
		return nil
	}
	return n.Document()
}

// Decode normalizes doc and applies it to n.
func Decode(n value.Node, doc any) error {
	return n.DeserializeFrom(Normalize(doc))
}
