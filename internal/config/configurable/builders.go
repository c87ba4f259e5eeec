package configurable

import (
	"cmp"

	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/input/bind"
	"github.com/dshills/tunable/internal/input/key"
)

// Tree registers a nested scope.
func (s *Scope) Tree(name string) *Scope {
	child := s.detached(name, valuetype.Configurable)
	s.Add(child)
	return child
}

// Toggleable registers a nested scope with an Enabled switch.
func (s *Scope) Toggleable(name string, enabled bool) *Scope {
	child := s.detached(name, valuetype.Toggleable)
	child.enabled = child.Boolean(EnabledName, enabled)
	s.Add(child)
	return child
}

// Boolean registers a boolean value.
func (s *Scope) Boolean(name string, def bool) *value.Value[bool] {
	return Register(s, name, def, valuetype.Boolean)
}

// Int registers an int value.
func (s *Scope) Int(name string, def int) *value.Value[int] {
	return Register(s, name, def, valuetype.Int)
}

// Int64 registers an int64 value.
func (s *Scope) Int64(name string, def int64) *value.Value[int64] {
	return Register(s, name, def, valuetype.Int)
}

// Float registers a float64 value.
func (s *Scope) Float(name string, def float64) *value.Value[float64] {
	return Register(s, name, def, valuetype.Float)
}

// Float32 registers a float32 value.
func (s *Scope) Float32(name string, def float32) *value.Value[float32] {
	return Register(s, name, def, valuetype.Float)
}

// Text registers a text value.
func (s *Scope) Text(name string, def string) *value.Value[string] {
	return Register(s, name, def, valuetype.Text)
}

// TextArray registers an ordered list of strings.
func (s *Scope) TextArray(name string, def ...string) *value.Value[[]string] {
	return ListOf(s, name, def, valuetype.ListText)
}

// Color registers a color value.
func (s *Scope) Color(name string, def payload.Color) *value.Value[payload.Color] {
	return Register(s, name, def, valuetype.Color)
}

// Key registers a key value.
func (s *Scope) Key(name string, def key.Event) *value.Value[key.Event] {
	return Register(s, name, def, valuetype.Key)
}

// Bind registers a key binding value.
func (s *Scope) Bind(name string, def bind.InputBind) *value.BindValue {
	v := value.NewBind(name, def, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// IntRange registers an int range with bounds.
func (s *Scope) IntRange(name string, def, bounds payload.Range[int], suffix string) *value.RangedValue[payload.Range[int], int] {
	return Ranged(s, name, def, bounds, suffix)
}

// FloatRange registers a float64 range with bounds.
func (s *Scope) FloatRange(name string, def, bounds payload.Range[float64], suffix string) *value.RangedValue[payload.Range[float64], float64] {
	return Ranged(s, name, def, bounds, suffix)
}

// Register registers a scalar value of any payload type.
func Register[T any](s *Scope, name string, def T, kind valuetype.Kind) *value.Value[T] {
	v := value.New(name, def, kind, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// Ranged registers a bounded number or number range.
func Ranged[T any, N payload.Number](s *Scope, name string, def T, bounds payload.Range[N], suffix string) *value.RangedValue[T, N] {
	v := value.NewRanged(name, def, bounds, suffix, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// ListOf registers an ordered list.
func ListOf[E any](s *Scope, name string, def []E, elem valuetype.ListKind) *value.Value[[]E] {
	v := value.NewList(name, def, elem, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// SetOf registers an unordered set.
func SetOf[E comparable](s *Scope, name string, elem valuetype.ListKind, def ...E) *value.Value[payload.Set[E]] {
	v := value.NewSet(name, payload.NewSet(def...), elem, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// SortedSetOf registers a set that enumerates in ascending order.
func SortedSetOf[E cmp.Ordered](s *Scope, name string, elem valuetype.ListKind, def ...E) *value.Value[payload.SortedSet[E]] {
	v := value.NewSortedSet(name, payload.NewSortedSet(def...), elem, s.ValueOptions(name)...)
	s.Add(v)
	return v
}

// ChooseList registers a value restricted to one of choices.
func ChooseList[T value.NamedChoice](s *Scope, name string, def T, choices ...T) *value.ChooseListValue[T] {
	v := value.NewChooseList(name, def, choices, s.ValueOptions(name)...)
	s.Add(v)
	return v
}
