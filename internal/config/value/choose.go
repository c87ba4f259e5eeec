package value

import (
	"github.com/spf13/cast"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// ChooseListValue holds one of a fixed list of named variants.
type ChooseListValue[T NamedChoice] struct {
	*Value[T]
	choices []T
}

// NewChooseList creates a value restricted to choices. Variants are
// compared by name, and every update resolves to the declared variant of
// that name or fails with *cfgerrors.UnknownChoiceError.
func NewChooseList[T NamedChoice](name string, def T, choices []T, opts ...Option) *ChooseListValue[T] {
	opts = append(opts, WithEqual(func(a, b T) bool {
		return a.ChoiceName() == b.ChoiceName()
	}))
	c := &ChooseListValue[T]{
		Value:   New(name, def, valuetype.Choose, opts...),
		choices: choices,
	}
	c.Value.choices = c.ChoiceNames
	c.Value.resolve = func(x T) (T, error) {
		return c.Lookup(x.ChoiceName())
	}
	return c
}

// Choices returns the declared variants in order.
func (c *ChooseListValue[T]) Choices() []T {
	out := make([]T, len(c.choices))
	copy(out, c.choices)
	return out
}

// ChoiceNames returns the declared variant names in order.
func (c *ChooseListValue[T]) ChoiceNames() []string {
	names := make([]string, len(c.choices))
	for i, ch := range c.choices {
		names[i] = ch.ChoiceName()
	}
	return names
}

// Lookup returns the variant with the exact name.
func (c *ChooseListValue[T]) Lookup(name string) (T, error) {
	for _, ch := range c.choices {
		if ch.ChoiceName() == name {
			return ch, nil
		}
	}
	var zero T
	return zero, &cfgerrors.UnknownChoiceError{Name: c.name, Choice: name, Available: c.ChoiceNames()}
}

// SetByString selects the variant with the exact, case-sensitive name.
func (c *ChooseListValue[T]) SetByString(name string) error {
	ch, err := c.Lookup(name)
	if err != nil {
		return err
	}
	return c.Set(ch)
}

// DeserializeFrom requires a bare name string.
func (c *ChooseListValue[T]) DeserializeFrom(doc any) error {
	name, ok := doc.(string)
	if !ok {
		return &cfgerrors.TypeMismatchError{Name: c.name, Expected: "choice name", Actual: typeOf(doc)}
	}
	return c.SetByString(name)
}

// SetScriptValue selects a variant by name.
func (c *ChooseListValue[T]) SetScriptValue(foreign any) {
	name, err := cast.ToStringE(foreign)
	if err == nil {
		err = c.SetByString(name)
	}
	if err != nil {
		c.logScriptFailure(foreign, err)
	}
}
