package value

import (
	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/input/bind"
)

// BindValue holds a key binding.
type BindValue struct {
	*Value[bind.InputBind]
}

// NewBind creates a key binding value.
func NewBind(name string, def bind.InputBind, opts ...Option) *BindValue {
	return &BindValue{Value: New(name, def, valuetype.Bind, opts...)}
}

// SetByString rebinds using the binding syntax, keeping the current action
// when raw names only a key.
func (b *BindValue) SetByString(raw string) error {
	nb, err := b.Get().Bind(raw)
	if err != nil {
		return cfgerrors.NewParseError(valuetype.Bind.String(), raw, "", err)
	}
	return b.Set(nb)
}

// SetScriptValue accepts a binding string or document.
func (b *BindValue) SetScriptValue(foreign any) {
	var err error
	if s, ok := foreign.(string); ok {
		err = b.SetByString(s)
	} else {
		err = b.DeserializeFrom(foreign)
	}
	if err != nil {
		b.logScriptFailure(foreign, err)
	}
}
