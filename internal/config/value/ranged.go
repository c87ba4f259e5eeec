package value

import (
	"strconv"
	"strings"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// RangeSeparator separates the bounds of a range in user text.
const RangeSeparator = ".."

// RangedValue is a numeric value, or a numeric range, with static bounds and
// a display suffix. T is either N or payload.Range[N].
type RangedValue[T any, N payload.Number] struct {
	*Value[T]
	bounds payload.Range[N]
	suffix string
}

// NewRanged creates a ranged value. The kind is derived from T and N.
func NewRanged[T any, N payload.Number](name string, def T, bounds payload.Range[N], suffix string, opts ...Option) *RangedValue[T, N] {
	return &RangedValue[T, N]{
		Value:  New(name, def, rangedKind[T, N](), opts...),
		bounds: bounds,
		suffix: suffix,
	}
}

func rangedKind[T any, N payload.Number]() valuetype.Kind {
	var zero T
	_, isRange := any(zero).(payload.Range[N])
	switch any(N(0)).(type) {
	case float32, float64:
		if isRange {
			return valuetype.FloatRange
		}
		return valuetype.Float
	default:
		if isRange {
			return valuetype.IntRange
		}
		return valuetype.Int
	}
}

// Bounds returns the static bounds.
func (r *RangedValue[T, N]) Bounds() payload.Range[N] { return r.bounds }

// Suffix returns the display suffix, such as "ms" or "blocks".
func (r *RangedValue[T, N]) Suffix() string { return r.suffix }

// SetByString parses "<lo>..<hi>" for range payloads and a single number for
// scalar payloads.
func (r *RangedValue[T, N]) SetByString(raw string) error {
	var zero T
	switch any(zero).(type) {
	case payload.Range[N]:
		parts := strings.Split(strings.TrimSpace(raw), RangeSeparator)
		if len(parts) != 2 {
			return cfgerrors.NewParseError(r.kind.String(), raw, "expected <from>"+RangeSeparator+"<to>", nil)
		}
		from, err := parseNumber[N](r.kind, parts[0])
		if err != nil {
			return err
		}
		to, err := parseNumber[N](r.kind, parts[1])
		if err != nil {
			return err
		}
		return r.Set(any(payload.NewRange(from, to)).(T))

	case N:
		n, err := parseNumber[N](r.kind, raw)
		if err != nil {
			return err
		}
		return r.Set(any(n).(T))
	}
	return &cfgerrors.UnsupportedTypeError{Kind: typeName[T]()}
}

func parseNumber[N payload.Number](kind valuetype.Kind, raw string) (N, error) {
	s := strings.TrimSpace(raw)
	var (
		n   N
		err error
	)
	switch any(n).(type) {
	case int:
		var i int64
		i, err = strconv.ParseInt(s, 10, strconv.IntSize)
		n = N(i)
	case int64:
		var i int64
		i, err = strconv.ParseInt(s, 10, 64)
		n = N(i)
	case float32:
		var f float64
		f, err = strconv.ParseFloat(s, 32)
		n = N(f)
	case float64:
		var f float64
		f, err = strconv.ParseFloat(s, 64)
		n = N(f)
	default:
		return n, &cfgerrors.UnsupportedTypeError{Kind: typeName[N]()}
	}
	if err != nil {
		return n, cfgerrors.NewParseError(kind.String(), raw, "not a number", err)
	}
	return n, nil
}
