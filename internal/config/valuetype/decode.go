package valuetype

import (
	"strconv"
	"strings"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/input/key"
)

// TextArrayDelimiter separates elements of a text array.
const TextArrayDelimiter = ","

// DecodeBoolean accepts "true" or "false" in any case.
func DecodeBoolean(raw string) (any, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return nil, cfgerrors.NewParseError(Boolean.String(), raw, "expected true or false", nil)
}

// DecodeInt parses a base-10 64-bit integer.
func DecodeInt(raw string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(Int.String(), raw, "not an integer", err)
	}
	return n, nil
}

// DecodeFloat parses a 64-bit float.
func DecodeFloat(raw string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(Float.String(), raw, "not a number", err)
	}
	return f, nil
}

// DecodeIntRange parses "<lo>..<hi>" into a payload.Range[int64].
func DecodeIntRange(raw string) (any, error) {
	lo, hi, ok := splitRange(raw)
	if !ok {
		return nil, cfgerrors.NewParseError(IntRange.String(), raw, "expected <from>..<to>", nil)
	}
	from, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(IntRange.String(), raw, "bad lower bound", err)
	}
	to, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(IntRange.String(), raw, "bad upper bound", err)
	}
	return payload.NewRange(from, to), nil
}

// DecodeFloatRange parses "<lo>..<hi>" into a payload.Range[float64].
func DecodeFloatRange(raw string) (any, error) {
	lo, hi, ok := splitRange(raw)
	if !ok {
		return nil, cfgerrors.NewParseError(FloatRange.String(), raw, "expected <from>..<to>", nil)
	}
	from, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(FloatRange.String(), raw, "bad lower bound", err)
	}
	to, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return nil, cfgerrors.NewParseError(FloatRange.String(), raw, "bad upper bound", err)
	}
	return payload.NewRange(from, to), nil
}

func splitRange(raw string) (string, string, bool) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(raw), "..")
	if !ok {
		return "", "", false
	}
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	return lo, hi, lo != "" && hi != ""
}

// DecodeText returns the input verbatim.
func DecodeText(raw string) (any, error) {
	return raw, nil
}

// DecodeTextArray splits on TextArrayDelimiter, trimming spaces and dropping
// empty tokens.
func DecodeTextArray(raw string) (any, error) {
	parts := strings.Split(raw, TextArrayDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

// DecodeColor parses "#RRGGBB" or "#RRGGBBAA".
func DecodeColor(raw string) (any, error) {
	c, err := payload.ParseColor(raw)
	if err != nil {
		return nil, cfgerrors.NewParseError(Color.String(), raw, "", err)
	}
	return c, nil
}

// DecodeKey parses a key specification such as "Ctrl+S" or "<C-s>".
func DecodeKey(raw string) (any, error) {
	ev, err := key.Parse(raw)
	if err != nil {
		return nil, cfgerrors.NewParseError(Key.String(), raw, "", err)
	}
	return ev, nil
}
