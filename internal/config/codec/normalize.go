package codec

import (
	"fmt"
	"time"
)

// Normalize rewrites decoder output into the generic document shape:
// maps with string keys, []any sequences and plain primitives.
func Normalize(doc any) any {
	switch d := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(d))
		for k, v := range d {
			out[k] = Normalize(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(d))
		for k, v := range d {
			out[fmt.Sprint(k)] = Normalize(v)
		}
		return out
	case []any:
		out := make([]any, len(d))
		for i, v := range d {
			out[i] = Normalize(v)
		}
		return out
	case []map[string]any:
		out := make([]any, len(d))
		for i, v := range d {
			out[i] = Normalize(v)
		}
		return out
	case time.Time:
		return d.Format(time.RFC3339Nano)
	default:
		return doc
	}
}
