package payload

import (
	"math"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Fits reports whether the numeric v converts to type to without losing
// its value: integer targets need a whole number within their range and
// float32 targets a magnitude float32 can hold. Float precision loss is
// accepted. Non-numeric v and non-numeric targets always fit; the decoder
// reports those.
func Fits(v any, to reflect.Type) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	target := reflect.Zero(to)

	switch {
	case isInt(to.Kind()):
		switch {
		case isFloat(rv.Kind()):
			f := rv.Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return errors.Newf("%v is not a whole number", v)
			}
			if f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
				return errors.Newf("%v overflows %s", v, to)
			}
		case isInt(rv.Kind()):
			if target.OverflowInt(rv.Int()) {
				return errors.Newf("%v overflows %s", v, to)
			}
		case isUint(rv.Kind()):
			if u := rv.Uint(); u > math.MaxInt64 || target.OverflowInt(int64(u)) {
				return errors.Newf("%v overflows %s", v, to)
			}
		}

	case isUint(to.Kind()):
		switch {
		case isFloat(rv.Kind()):
			f := rv.Float()
			if f != math.Trunc(f) || math.IsInf(f, 0) {
				return errors.Newf("%v is not a whole number", v)
			}
			if f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return errors.Newf("%v overflows %s", v, to)
			}
		case isInt(rv.Kind()):
			if i := rv.Int(); i < 0 || target.OverflowUint(uint64(i)) {
				return errors.Newf("%v overflows %s", v, to)
			}
		case isUint(rv.Kind()):
			if target.OverflowUint(rv.Uint()) {
				return errors.Newf("%v overflows %s", v, to)
			}
		}

	case to.Kind() == reflect.Float32:
		if isFloat(rv.Kind()) && target.OverflowFloat(rv.Float()) {
			return errors.Newf("%v overflows %s", v, to)
		}
	}
	return nil
}

// ExactNumber converts a numeric document into N, failing instead of
// truncating or overflowing. Strings and other kinds are rejected.
func ExactNumber[N Number](v any) (N, error) {
	var zero N
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || !isInt(rv.Kind()) && !isUint(rv.Kind()) && !isFloat(rv.Kind()) {
		return zero, errors.Newf("expected a number, got %T", v)
	}

	to := reflect.TypeOf(zero)
	if err := Fits(v, to); err != nil {
		return zero, err
	}
	return rv.Convert(to).Interface().(N), nil
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
