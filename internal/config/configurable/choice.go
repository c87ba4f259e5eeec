package configurable

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// Choice is a named variant owning its own scope.
type Choice interface {
	value.NamedChoice
	Scope() *Scope
}

// BaseChoice implements Choice. Embed it in variant structs:
//
//	type Jetpack struct {
//	    configurable.BaseChoice
//	    Power *value.Value[float64]
//	}
type BaseChoice struct {
	name  string
	scope *Scope
}

// NewChoice creates the base of a variant named name for the slot named
// slotName in parent. Values built on its Scope publish under
// "<slot path>.<name>".
func NewChoice(parent *Scope, slotName, name string) BaseChoice {
	slotScope := parent.detached(slotName, valuetype.Choice)
	return BaseChoice{name: name, scope: slotScope.detached(name, valuetype.Configurable)}
}

// ChoiceName returns the variant name.
func (b BaseChoice) ChoiceName() string { return b.name }

// Scope returns the variant's scope.
func (b BaseChoice) Scope() *Scope { return b.scope }

// slot is the kind-independent view of a ChoiceConfigurable.
type slot interface {
	value.Node
	choiceScope(name string) (*Scope, bool)
	choiceScopes() []*Scope
	documentFunc(keep func(value.Node) bool) map[string]any
}

// Document field names of a choice slot.
const (
	FieldName      = "name"
	FieldActive    = "active"
	FieldValue     = "value"
	FieldChoices   = "choices"
	FieldValueType = "valueType"
)

// ChoiceConfigurable holds exactly one active variant out of a fixed,
// ordered set. Switching keeps the state of every variant.
type ChoiceConfigurable[C Choice] struct {
	*value.ChooseListValue[C]
}

// Choices registers a choice slot in parent with the given default and
// variants. It panics if def is not among choices or names repeat.
func Choices[C Choice](parent *Scope, name string, def C, choices ...C) *ChoiceConfigurable[C] {
	seen := make(map[string]bool, len(choices))
	found := false
	for _, c := range choices {
		if seen[c.ChoiceName()] {
			panic("configurable: duplicate choice " + c.ChoiceName() + " in " + name)
		}
		seen[c.ChoiceName()] = true
		found = found || c.ChoiceName() == def.ChoiceName()
	}
	if !found {
		panic("configurable: default " + def.ChoiceName() + " is not a choice of " + name)
	}

	cc := &ChoiceConfigurable[C]{
		ChooseListValue: value.NewChooseList(name, def, choices, parent.ValueOptions(name)...),
	}
	parent.Add(cc)
	return cc
}

// Kind returns valuetype.Choice.
func (cc *ChoiceConfigurable[C]) Kind() valuetype.Kind { return valuetype.Choice }

// Active returns the active variant.
func (cc *ChoiceConfigurable[C]) Active() C { return cc.Get() }

// SetActive switches to c, which must be one of the declared variants.
func (cc *ChoiceConfigurable[C]) SetActive(c C) error { return cc.Set(c) }

// ActiveScope returns the live scope of the active variant.
func (cc *ChoiceConfigurable[C]) ActiveScope() *Scope { return cc.Get().Scope() }

// Restore switches back to the default variant and restores every variant's
// scope.
func (cc *ChoiceConfigurable[C]) Restore() error {
	errs := []error{cc.ChooseListValue.Restore()}
	for _, c := range cc.Choices() {
		if err := c.Scope().Restore(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Document returns
//
//	{name, active, value: <active scope>, choices: {<name>: <scope>...}, valueType}
func (cc *ChoiceConfigurable[C]) Document() any {
	return cc.documentFunc(nil)
}

func (cc *ChoiceConfigurable[C]) documentFunc(keep func(value.Node) bool) map[string]any {
	choices := make(map[string]any, len(cc.Choices()))
	for _, c := range cc.Choices() {
		choices[c.ChoiceName()] = c.Scope().DocumentFunc(keep)
	}
	active := cc.Active()
	return map[string]any{
		FieldName:      cc.Name(),
		FieldActive:    active.ChoiceName(),
		FieldValue:     choices[active.ChoiceName()],
		FieldChoices:   choices,
		FieldValueType: valuetype.Choice.String(),
	}
}

// DeserializeFrom switches to the document's active variant, then applies
// every entry of choices to the matching variant's scope, active or not.
// A bare string document only switches.
func (cc *ChoiceConfigurable[C]) DeserializeFrom(doc any) error {
	if name, ok := doc.(string); ok {
		return cc.SetByString(name)
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return &cfgerrors.TypeMismatchError{Name: cc.Name(), Expected: "choice object", Actual: typeOf(doc)}
	}

	if raw, ok := m[FieldActive]; ok {
		name, ok := raw.(string)
		if !ok {
			return &cfgerrors.TypeMismatchError{Name: cc.Name(), Expected: "choice name", Actual: typeOf(raw)}
		}
		if err := cc.SetByString(name); err != nil {
			return err
		}
	}

	var errs []error
	choices, _ := m[FieldChoices].(map[string]any)
	for _, c := range cc.Choices() {
		sub, ok := choices[c.ChoiceName()]
		if !ok {
			continue
		}
		if err := c.Scope().DeserializeFrom(sub); err != nil {
			errs = append(errs, err)
		}
	}

	// Documents without choices still carry the active variant's state.
	if sub, ok := m[FieldValue]; ok && choices == nil {
		if err := cc.ActiveScope().DeserializeFrom(sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (cc *ChoiceConfigurable[C]) choiceScope(name string) (*Scope, bool) {
	c, err := cc.Lookup(name)
	if err != nil {
		return nil, false
	}
	return c.Scope(), true
}

func (cc *ChoiceConfigurable[C]) choiceScopes() []*Scope {
	choices := cc.Choices()
	out := make([]*Scope, len(choices))
	for i, c := range choices {
		out[i] = c.Scope()
	}
	return out
}

func typeOf(x any) string {
	return fmt.Sprintf("%T", x)
}
