package value

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"

	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// pairer exposes the two bounds of a range payload.
type pairer interface {
	Pair() (any, any)
}

// pairBuilder builds a range payload of its own element type, leniently
// for script input or exactly for decoded input.
type pairBuilder interface {
	WithPair(from, to any) (any, error)
	WithExactPair(from, to any) (any, error)
}

// documentOf returns the document form of a payload.
func documentOf(x any) any {
	switch p := x.(type) {
	case NamedChoice:
		return p.ChoiceName()
	case Documenter:
		return p.Document()
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = documentOf(rv.Index(i).Interface())
		}
		return out
	}
	return x
}

// decodeInto decodes doc into T exactly: self-decoding payloads first,
// then a direct assertion, then mapstructure without weak typing. Numbers
// that would be truncated or overflow the target fail.
func decodeInto[T any](doc any) (T, error) {
	var out T
	if doc == nil {
		return out, errors.New("nil document")
	}

	if dd, ok := any(&out).(DocumentDecoder); ok {
		err := dd.DecodeDocument(doc)
		return out, err
	}

	if t, ok := doc.(T); ok {
		return t, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &out,
		TagName:    "mapstructure",
		DecodeHook: exactNumbers,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(doc); err != nil {
		return out, err
	}
	return out, nil
}

// exactNumbers rejects numeric conversions that lose the value, which
// mapstructure otherwise performs silently.
func exactNumbers(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if err := payload.Fits(data, to); err != nil {
		return nil, err
	}
	return data, nil
}

// convert turns a decoded registry payload into T.
func convert[T any](decoded any) (T, error) {
	if t, ok := decoded.(T); ok {
		return t, nil
	}

	var zero T
	if pb, ok := any(zero).(pairBuilder); ok {
		if p, ok := decoded.(pairer); ok {
			from, to := p.Pair()
			r, err := pb.WithExactPair(from, to)
			if err != nil {
				return zero, err
			}
			if t, ok := r.(T); ok {
				return t, nil
			}
		}
	}

	return decodeInto[T](decoded)
}

// decodeElements decodes each element of a sequence document into E.
// String elements that do not decode directly go through the element kind's
// registry decoder.
func decodeElements[E any](doc any, elem valuetype.ListKind, reg *valuetype.Registry) ([]E, error) {
	rv := reflect.ValueOf(doc)
	if doc == nil || rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.Newf("expected a sequence, got %T", doc)
	}

	out := make([]E, 0, rv.Len())
	for i := range rv.Len() {
		item := rv.Index(i).Interface()
		e, err := decodeElement[E](item, elem, reg)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeElement[E any](item any, elem valuetype.ListKind, reg *valuetype.Registry) (E, error) {
	e, err := decodeInto[E](item)
	if err == nil {
		return e, nil
	}

	s, ok := item.(string)
	if !ok || elem == valuetype.ListNone {
		return e, err
	}
	decoded, derr := reg.Decode(elem.ElementKind(), s)
	if derr != nil {
		return e, derr
	}
	return convert[E](decoded)
}

func typeName[T any]() string {
	return fmt.Sprint(reflect.TypeFor[T]())
}

func typeOf(x any) string {
	return fmt.Sprintf("%T", x)
}
