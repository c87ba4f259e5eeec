// Package demo declares a sample feature tree. The CLI edits it and the
// integration tests exercise every value kind through it.
package demo

import (
	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/configurable"
	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/input/bind"
	"github.com/dshills/tunable/internal/input/key"
)

// RootName is the name of the feature tree's root scope.
const RootName = "Features"

// Features is the sample tree.
type Features struct {
	Root *configurable.Scope
	Fly  *Fly
	Fail *FailFocus
	HUD  *HUD
}

// New builds the feature tree. Options configure the root scope.
func New(opts ...configurable.Option) *Features {
	root := configurable.New(RootName, opts...)
	return &Features{
		Root: root,
		Fly:  newFly(root),
		Fail: newFailFocus(root),
		HUD:  newHUD(root),
	}
}

// FlyMode is a fly mode variant.
type FlyMode interface {
	configurable.Choice
	flyMode()
}

// Vanilla flies at a fixed speed with an optional glide.
type Vanilla struct {
	configurable.BaseChoice
	Speed *value.RangedValue[float64, float64]
	Glide *value.RangedValue[float64, float64]
}

func (*Vanilla) flyMode() {}

// Creative toggles creative flight.
type Creative struct {
	configurable.BaseChoice
	Speed       *value.RangedValue[float64, float64]
	ForceFlight *value.Value[bool]
}

func (*Creative) flyMode() {}

// Jetpack boosts upward while the jump key is held.
type Jetpack struct {
	configurable.BaseChoice
	Power *value.RangedValue[int, int]
	Boost *value.Value[key.Event]
}

func (*Jetpack) flyMode() {}

// Fly is the fly feature.
type Fly struct {
	Scope            *configurable.Scope
	Bind             *value.BindValue
	Mode             *configurable.ChoiceConfigurable[FlyMode]
	Vanilla          *Vanilla
	Creative         *Creative
	Jetpack          *Jetpack
	Visuals          *configurable.Scope
	Stride           *value.Value[bool]
	DisableOnSetback *value.Value[bool]
}

func newFly(root *configurable.Scope) *Fly {
	s := root.Tree("Fly")
	f := &Fly{Scope: s}
	f.Bind = s.Bind("Bind", bind.InputBind{Key: key.MustParse("f"), Action: bind.ActionToggle})

	f.Vanilla = &Vanilla{BaseChoice: configurable.NewChoice(s, "Mode", "Vanilla")}
	vs := f.Vanilla.Scope()
	f.Vanilla.Speed = configurable.Ranged(vs, "Speed", 1.0, payload.NewRange(0.1, 5.0), "b/t")
	f.Vanilla.Glide = configurable.Ranged(vs, "Glide", 0.0, payload.NewRange(-1.0, 1.0), "")

	f.Creative = &Creative{BaseChoice: configurable.NewChoice(s, "Mode", "Creative")}
	cs := f.Creative.Scope()
	f.Creative.Speed = configurable.Ranged(cs, "Speed", 0.1, payload.NewRange(0.05, 1.0), "")
	f.Creative.ForceFlight = cs.Boolean("ForceFlight", true)

	f.Jetpack = &Jetpack{BaseChoice: configurable.NewChoice(s, "Mode", "Jetpack")}
	js := f.Jetpack.Scope()
	f.Jetpack.Power = configurable.Ranged(js, "Power", 2, payload.NewRange(1, 10), "")
	f.Jetpack.Boost = js.Key("Boost", key.MustParse("Space"))

	f.Mode = configurable.Choices[FlyMode](s, "Mode", f.Vanilla, f.Vanilla, f.Creative, f.Jetpack)

	f.Visuals = s.Toggleable("Visuals", true)
	f.Stride = f.Visuals.Boolean("Stride", true)
	f.DisableOnSetback = s.Boolean("DisableOnSetback", false)
	return f
}

// FailFocus misses the target on purpose at a configurable rate.
type FailFocus struct {
	Scope                *configurable.Scope
	Rate                 *value.RangedValue[int, int]
	Factor               *value.RangedValue[float64, float64]
	StrengthHorizontal   *value.RangedValue[payload.Range[float64], float64]
	StrengthVertical     *value.RangedValue[payload.Range[float64], float64]
	TransitionInDuration *value.RangedValue[payload.Range[int], int]
}

func newFailFocus(root *configurable.Scope) *FailFocus {
	s := root.Toggleable("Fail", false)
	return &FailFocus{
		Scope:  s,
		Rate:   configurable.Ranged(s, "Rate", 3, payload.NewRange(1, 100), "%"),
		Factor: configurable.Ranged(s, "Factor", 0.04, payload.NewRange(0.01, 0.99), ""),
		StrengthHorizontal: s.FloatRange("StrengthHorizontal",
			payload.NewRange(15.0, 20.0), payload.NewRange(1.0, 90.0), "°"),
		StrengthVertical: s.FloatRange("StrengthVertical",
			payload.NewRange(2.0, 5.0), payload.NewRange(0.0, 90.0), "°"),
		TransitionInDuration: s.IntRange("TransitionInDuration",
			payload.NewRange(1, 4), payload.NewRange(0, 20), "ticks"),
	}
}

// Enabled reports whether fail focus is switched on.
func (f *FailFocus) Enabled() bool {
	return f.Scope.IsEnabled()
}

// Theme is a HUD color theme.
type Theme string

// ChoiceName implements value.NamedChoice.
func (t Theme) ChoiceName() string { return string(t) }

// Available themes.
const (
	ThemeDark    Theme = "Dark"
	ThemeLight   Theme = "Light"
	ThemeClassic Theme = "Classic"
)

// HUD is the heads-up display feature.
type HUD struct {
	Scope    *configurable.Scope
	Theme    *value.ChooseListValue[Theme]
	Accent   *value.Value[payload.Color]
	Zoom     *value.Value[key.Event]
	Title    *value.Value[string]
	Hidden   *value.Value[[]string]
	Tags     *value.Value[payload.SortedSet[string]]
	Friends  *value.Value[payload.Set[string]]
	Scales   *value.Value[[]float64]
	Hotbar   *value.Value[[]key.Event]
	Session  *value.Value[string]
	Revision *value.Value[int]
}

// ErrEmptyTitle is returned when the HUD title is set to blank text.
var ErrEmptyTitle = errors.New("title must not be empty")

func newHUD(root *configurable.Scope) *HUD {
	s := root.Toggleable("HUD", true)
	h := &HUD{Scope: s}

	h.Theme = configurable.ChooseList(s, "Theme", ThemeDark, ThemeDark, ThemeLight, ThemeClassic)
	h.Accent = s.Color("Accent", payload.Color{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff})
	h.Zoom = s.Key("Zoom", key.MustParse("Ctrl+Z"))
	h.Title = s.Text("Title", "tunable").OnChange(func(t string) (string, error) {
		if t == "" {
			return "", ErrEmptyTitle
		}
		return t, nil
	})
	h.Hidden = s.TextArray("Hidden", "Scoreboard")
	h.Tags = configurable.SortedSetOf(s, "Tags", valuetype.ListText, "combat", "movement")
	h.Friends = configurable.SetOf[string](s, "Friends", valuetype.ListText)
	h.Scales = configurable.ListOf(s, "Scales", []float64{1.0, 1.5}, valuetype.ListFloat)
	h.Hotbar = configurable.ListOf(s, "Hotbar", []key.Event{key.MustParse("1"), key.MustParse("2")}, valuetype.ListKey)
	h.Session = s.Text("Session", "").DoNotIncludeAlways()
	h.Revision = s.Int("Revision", 1).NotAnOption()
	return h
}
