package payload

import (
	"fmt"

	"github.com/spf13/cast"
)

// Number is the set of numeric element types a Range can hold.
type Number interface {
	~int | ~int64 | ~float32 | ~float64
}

// Range is a closed interval [From, To].
type Range[N Number] struct {
	From N `mapstructure:"from" json:"from" yaml:"from" toml:"from"`
	To   N `mapstructure:"to" json:"to" yaml:"to" toml:"to"`
}

// NewRange creates a closed interval.
func NewRange[N Number](from, to N) Range[N] {
	return Range[N]{From: from, To: to}
}

// Contains reports whether n lies within the interval.
func (r Range[N]) Contains(n N) bool {
	return n >= r.From && n <= r.To
}

// String returns "<from>..<to>".
func (r Range[N]) String() string {
	return fmt.Sprintf("%v..%v", r.From, r.To)
}

// Pair returns the bounds as untyped values.
func (r Range[N]) Pair() (any, any) {
	return r.From, r.To
}

// WithPair builds a range of the receiver's element type from two foreign
// values, coercing each bound.
func (r Range[N]) WithPair(from, to any) (any, error) {
	lo, err := CastNumber[N](from)
	if err != nil {
		return nil, err
	}
	hi, err := CastNumber[N](to)
	if err != nil {
		return nil, err
	}
	return Range[N]{From: lo, To: hi}, nil
}

// WithExactPair is WithPair for documents: each bound must be a number
// that N holds without truncation or overflow.
func (r Range[N]) WithExactPair(from, to any) (any, error) {
	lo, err := ExactNumber[N](from)
	if err != nil {
		return nil, fmt.Errorf("range from: %w", err)
	}
	hi, err := ExactNumber[N](to)
	if err != nil {
		return nil, fmt.Errorf("range to: %w", err)
	}
	return Range[N]{From: lo, To: hi}, nil
}

// Document returns the document form {"from": ..., "to": ...}.
func (r Range[N]) Document() any {
	return map[string]any{"from": r.From, "to": r.To}
}

// DecodeDocument decodes the range from {"from", "to"} or a two element list.
func (r *Range[N]) DecodeDocument(doc any) error {
	var from, to any
	switch d := doc.(type) {
	case map[string]any:
		var okFrom, okTo bool
		from, okFrom = d["from"]
		to, okTo = d["to"]
		if !okFrom || !okTo {
			return fmt.Errorf("range document needs from and to, got %v", d)
		}
	case []any:
		if len(d) != 2 {
			return fmt.Errorf("range document needs 2 elements, got %d", len(d))
		}
		from, to = d[0], d[1]
	default:
		return fmt.Errorf("unexpected range document %T", doc)
	}

	v, err := r.WithExactPair(from, to)
	if err != nil {
		return err
	}
	*r = v.(Range[N])
	return nil
}

// CastNumber coerces a foreign value into the numeric type N. It is lenient
// and meant for script input; documents go through ExactNumber.
func CastNumber[N Number](v any) (N, error) {
	var zero N
	switch any(zero).(type) {
	case int:
		n, err := cast.ToIntE(v)
		return N(n), err
	case int64:
		n, err := cast.ToInt64E(v)
		return N(n), err
	case float32:
		n, err := cast.ToFloat32E(v)
		return N(n), err
	case float64:
		n, err := cast.ToFloat64E(v)
		return N(n), err
	}

	// Named numeric types fall back on their underlying kind.
	f, err := cast.ToFloat64E(v)
	return N(f), err
}
