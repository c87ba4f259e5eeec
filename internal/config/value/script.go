package value

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/input/key"
)

// ScriptValue returns the current value in scripting form: ranges as a
// two element list, named variants as their name, other payloads in their
// document form.
func (v *Value[T]) ScriptValue() any {
	cur := v.Get()
	if p, ok := any(cur).(pairer); ok {
		from, to := p.Pair()
		return []any{from, to}
	}
	return v.Document()
}

// SetScriptValue coerces a foreign value into T and sets it. Coercion and
// veto failures are logged with the previous value and never returned.
func (v *Value[T]) SetScriptValue(foreign any) {
	t, err := v.coerce(foreign)
	if err == nil {
		err = v.Set(t)
	}
	if err != nil {
		v.logScriptFailure(foreign, err)
	}
}

func (v *Value[T]) logScriptFailure(foreign any, err error) {
	v.opts.logger.Error("script failed to set value",
		slog.String("path", v.opts.path),
		slog.Any("value", foreign),
		slog.Any("old", v.Document()),
		slog.Any("error", err),
	)
}

// coerce applies the per-kind coercion table.
func (v *Value[T]) coerce(foreign any) (T, error) {
	var zero T
	if foreign == nil {
		return zero, &cfgerrors.UnsupportedTypeError{Kind: typeName[T](), Value: foreign}
	}

	if pb, ok := any(zero).(pairBuilder); ok {
		from, to, err := scriptPair(foreign)
		if err != nil {
			return zero, err
		}
		r, err := pb.WithPair(from, to)
		if err != nil {
			return zero, &cfgerrors.UnsupportedTypeError{Kind: typeName[T](), Value: foreign}
		}
		return r.(T), nil
	}

	var (
		out any
		err error
	)
	switch any(zero).(type) {
	case bool:
		out, err = cast.ToBoolE(foreign)
	case int:
		out, err = cast.ToIntE(foreign)
	case int64:
		out, err = cast.ToInt64E(foreign)
	case float32:
		out, err = cast.ToFloat32E(foreign)
	case float64:
		out, err = cast.ToFloat64E(foreign)
	case string:
		out, err = cast.ToStringE(foreign)
	case []string:
		out, err = cast.ToStringSliceE(foreign)
	case key.Event:
		var s string
		if s, err = cast.ToStringE(foreign); err == nil {
			out, err = key.Parse(s)
		}
	case payload.Color:
		var s string
		if s, err = cast.ToStringE(foreign); err == nil {
			out, err = payload.ParseColor(s)
		}
	default:
		return v.decodeDocument(foreign)
	}
	if err != nil {
		return zero, errors.WithSecondaryError(
			&cfgerrors.UnsupportedTypeError{Kind: typeName[T](), Value: foreign}, err)
	}
	return out.(T), nil
}

// scriptPair extracts exactly two elements from a foreign sequence.
func scriptPair(foreign any) (any, any, error) {
	rv := reflect.ValueOf(foreign)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, nil, &cfgerrors.UnsupportedTypeError{Kind: "range", Value: foreign}
	}
	if rv.Len() != 2 {
		return nil, nil, errors.WithSecondaryError(
			&cfgerrors.UnsupportedTypeError{Kind: "range", Value: foreign},
			fmt.Errorf("range needs 2 elements, got %d", rv.Len()))
	}
	return rv.Index(0).Interface(), rv.Index(1).Interface(), nil
}
