package configurable

import (
	"reflect"
	"sort"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/payload"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/logging"
)

type flyMode interface {
	Choice
	isFlyMode()
}

type vanilla struct {
	BaseChoice
	Speed *value.Value[float64]
}

func (*vanilla) isFlyMode() {}

type jetpack struct {
	BaseChoice
	Power *value.Value[int]
}

func (*jetpack) isFlyMode() {}

type fixture struct {
	root    *Scope
	mode    *ChoiceConfigurable[flyMode]
	vanilla *vanilla
	jetpack *jetpack
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	opts = append(opts, WithLogger(logging.ForTest(t)))
	root := New("Features", opts...)
	fly := root.Tree("Fly")

	v := &vanilla{BaseChoice: NewChoice(fly, "Mode", "Vanilla")}
	v.Speed = v.Scope().Float("Speed", 1.0)

	j := &jetpack{BaseChoice: NewChoice(fly, "Mode", "Jetpack")}
	j.Power = j.Scope().Int("Power", 0)

	mode := Choices[flyMode](fly, "Mode", v, v, j)
	return fixture{root: root, mode: mode, vanilla: v, jetpack: j}
}

func TestChoiceConfigurable_InactiveStatePersists(t *testing.T) {
	f := newFixture(t)

	if err := f.jetpack.Power.Set(5); err != nil {
		t.Fatal(err)
	}
	if err := f.mode.SetActive(f.vanilla); err != nil {
		t.Fatal(err)
	}
	if err := f.mode.SetByString("Jetpack"); err != nil {
		t.Fatal(err)
	}

	if got := f.jetpack.Power.Get(); got != 5 {
		t.Errorf("Power = %d after switching away and back, want 5", got)
	}
	if f.mode.Active().ChoiceName() != "Jetpack" {
		t.Errorf("Active() = %s", f.mode.Active().ChoiceName())
	}
	if f.mode.ActiveScope() != f.jetpack.Scope() {
		t.Error("ActiveScope() should be the jetpack scope")
	}
}

func TestChoiceConfigurable_UnknownChoice(t *testing.T) {
	f := newFixture(t)

	err := f.mode.SetByString("Elytra")
	var uce *cfgerrors.UnknownChoiceError
	if !errors.As(err, &uce) {
		t.Fatalf("error = %v, want UnknownChoiceError", err)
	}
	if !reflect.DeepEqual(uce.Available, []string{"Vanilla", "Jetpack"}) {
		t.Errorf("Available = %v", uce.Available)
	}

	stranger := &jetpack{BaseChoice: NewChoice(f.root, "Mode", "Stranger")}
	if err := f.mode.SetActive(stranger); !errors.Is(err, cfgerrors.ErrUnknownChoice) {
		t.Errorf("SetActive(undeclared) error = %v, want ErrUnknownChoice", err)
	}
	if f.mode.Active().ChoiceName() != "Vanilla" {
		t.Error("failed switch changed the active choice")
	}
}

func TestChoiceConfigurable_ForeignVariantResolvesToDeclared(t *testing.T) {
	f := newFixture(t)
	other := New("Other")
	impostor := &jetpack{BaseChoice: NewChoice(other, "Mode", "Jetpack")}
	impostor.Power = impostor.Scope().Int("Power", 99)

	if err := f.mode.SetActive(impostor); err != nil {
		t.Fatalf("SetActive(other Jetpack) error = %v", err)
	}
	if f.mode.Active() != flyMode(f.jetpack) {
		t.Error("active choice is not the declared Jetpack")
	}
	if f.mode.ActiveScope() != f.jetpack.Scope() {
		t.Error("live scope is not the declared Jetpack scope")
	}
	if f.jetpack.Power.Get() != 0 {
		t.Errorf("declared Power = %d, want 0", f.jetpack.Power.Get())
	}
}

func TestChoiceConfigurable_Document(t *testing.T) {
	f := newFixture(t)
	if err := f.jetpack.Power.Set(3); err != nil {
		t.Fatal(err)
	}

	doc := f.mode.Document().(map[string]any)
	want := map[string]any{
		"name":   "Mode",
		"active": "Vanilla",
		"value":  map[string]any{"Speed": 1.0},
		"choices": map[string]any{
			"Vanilla": map[string]any{"Speed": 1.0},
			"Jetpack": map[string]any{"Power": 3},
		},
		"valueType": "CHOICE",
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("Document() = %#v\nwant %#v", doc, want)
	}
}

func TestChoiceConfigurable_DeserializeRestoresInactive(t *testing.T) {
	f := newFixture(t)

	doc := map[string]any{
		"name":   "Mode",
		"active": "Vanilla",
		"choices": map[string]any{
			"Vanilla": map[string]any{"Speed": 2.5},
			"Jetpack": map[string]any{"Power": 7.0},
			"Removed": map[string]any{"X": 1},
		},
	}
	if err := f.mode.DeserializeFrom(doc); err != nil {
		t.Fatal(err)
	}

	if f.vanilla.Speed.Get() != 2.5 {
		t.Errorf("Speed = %v, want 2.5", f.vanilla.Speed.Get())
	}
	if f.jetpack.Power.Get() != 7 {
		t.Errorf("inactive Power = %d, want 7", f.jetpack.Power.Get())
	}

	bad := map[string]any{"active": "Nope"}
	if err := f.mode.DeserializeFrom(bad); !errors.Is(err, cfgerrors.ErrUnknownChoice) {
		t.Errorf("unknown active error = %v", err)
	}
}

func TestChoiceConfigurable_RoundTrip(t *testing.T) {
	src := newFixture(t)
	_ = src.mode.SetByString("Jetpack")
	_ = src.jetpack.Power.Set(9)
	_ = src.vanilla.Speed.Set(0.5)

	dst := newFixture(t)
	if err := dst.root.DeserializeFrom(src.root.Document()); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(dst.root.Document(), src.root.Document()) {
		t.Errorf("round trip mismatch:\n%#v\n%#v", dst.root.Document(), src.root.Document())
	}
}

func TestChoiceConfigurable_Restore(t *testing.T) {
	f := newFixture(t)
	_ = f.mode.SetByString("Jetpack")
	_ = f.jetpack.Power.Set(4)
	_ = f.vanilla.Speed.Set(3)

	if err := f.mode.Restore(); err != nil {
		t.Fatal(err)
	}
	if f.mode.Active().ChoiceName() != "Vanilla" || f.jetpack.Power.Get() != 0 || f.vanilla.Speed.Get() != 1 {
		t.Error("Restore should reset the active choice and every choice scope")
	}
}

func TestChoiceConfigurable_Notifies(t *testing.T) {
	bus := notify.New()
	defer bus.Close()

	var paths []string
	bus.Subscribe(func(c notify.Change) { paths = append(paths, c.Path) })

	f := newFixture(t, WithNotifier(bus))
	_ = f.mode.SetByString("Jetpack")
	_ = f.jetpack.Power.Set(2)

	want := []string{"Fly.Mode", "Fly.Mode.Jetpack.Power"}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestScope_Find(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		path string
		want value.Node
	}{
		{"Fly.Mode", f.mode},
		{"Fly.Mode.Jetpack.Power", f.jetpack.Power},
		{"Fly.Mode.Vanilla.Speed", f.vanilla.Speed},
		{"", f.root},
	}
	for _, tt := range tests {
		got, err := f.root.Find(tt.path)
		if err != nil {
			t.Errorf("Find(%q) error = %v", tt.path, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Find(%q) = %v", tt.path, got.Name())
		}
	}

	for _, bad := range []string{"Nope", "Fly.Mode.Elytra", "Fly.Mode.Jetpack.Power.X"} {
		if _, err := f.root.Find(bad); !errors.Is(err, cfgerrors.ErrNotFound) {
			t.Errorf("Find(%q) error = %v, want ErrNotFound", bad, err)
		}
	}
}

func TestScope_DuplicateNamePanics(t *testing.T) {
	s := New("Root")
	s.Int("A", 1)

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	s.Text("A", "x")
}

func TestScope_DeserializeCombinesErrors(t *testing.T) {
	s := New("Root")
	a := s.Int("A", 1)
	b := s.Boolean("B", false)
	c := s.Text("C", "x")

	err := s.DeserializeFrom(map[string]any{
		"A":       "not a number",
		"B":       map[string]any{},
		"C":       "y",
		"Unknown": 1,
	})
	if err == nil {
		t.Fatal("expected combined error")
	}
	if !errors.Is(err, cfgerrors.ErrTypeMismatch) {
		t.Errorf("error = %v, want ErrTypeMismatch", err)
	}
	if a.Get() != 1 || b.Get() {
		t.Error("failed children should keep their values")
	}
	if c.Get() != "y" {
		t.Error("valid children should still be applied")
	}

	if err := s.DeserializeFrom([]any{1}); !errors.Is(err, cfgerrors.ErrTypeMismatch) {
		t.Errorf("non-object document error = %v", err)
	}
}

func TestScope_Toggleable(t *testing.T) {
	s := New("Root")
	visuals := s.Toggleable("Visuals", false)
	visuals.Color("Tint", payload.Color{R: 255, A: 255})

	if visuals.Kind() != valuetype.Toggleable {
		t.Errorf("Kind() = %v", visuals.Kind())
	}
	if visuals.IsEnabled() {
		t.Error("toggleable should start disabled")
	}

	node, err := s.Find("Visuals.Enabled")
	if err != nil {
		t.Fatal(err)
	}
	if err := node.SetByString("true"); err != nil {
		t.Fatal(err)
	}
	if !visuals.IsEnabled() {
		t.Error("Enabled switch should turn the scope on")
	}

	doc := s.Document().(map[string]any)["Visuals"].(map[string]any)
	if doc["Enabled"] != true || doc["Tint"] != "#FF0000FF" {
		t.Errorf("toggleable document = %#v", doc)
	}
}

func TestScope_Builders(t *testing.T) {
	s := New("Root")
	s.Int64("Seed", 42)
	s.Float32("Gain", 0.5)
	s.TextArray("Names", "b", "a")
	SetOf(s, "Tags", valuetype.ListText, "x", "x", "y")
	SortedSetOf(s, "Levels", valuetype.ListInt, 3, 1, 2)
	s.IntRange("Delay", payload.NewRange(1, 3), payload.NewRange(0, 10), "ticks")

	doc := s.Document().(map[string]any)
	if !reflect.DeepEqual(doc["Names"], []any{"b", "a"}) {
		t.Errorf("Names = %#v", doc["Names"])
	}
	if !reflect.DeepEqual(doc["Levels"], []any{1, 2, 3}) {
		t.Errorf("Levels = %#v", doc["Levels"])
	}
	if tags := doc["Tags"].([]any); len(tags) != 2 {
		t.Errorf("Tags = %#v", tags)
	}
	if !reflect.DeepEqual(doc["Delay"], map[string]any{"from": 1, "to": 3}) {
		t.Errorf("Delay = %#v", doc["Delay"])
	}
}

func TestScope_WalkAndDocumentFunc(t *testing.T) {
	f := newFixture(t)
	f.root.Tree("Debug").Boolean("Trace", false).NotAnOption()

	var names []string
	f.root.Walk(func(n value.Node) bool {
		names = append(names, n.Path())
		return true
	})
	sort.Strings(names)
	want := []string{
		"Debug", "Debug.Trace", "Fly", "Fly.Mode",
		"Fly.Mode.Jetpack", "Fly.Mode.Jetpack.Power",
		"Fly.Mode.Vanilla", "Fly.Mode.Vanilla.Speed",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Walk paths = %v\nwant %v", names, want)
	}

	doc := f.root.DocumentFunc(func(n value.Node) bool { return !n.IsNotAnOption() })
	if debug := doc["Debug"].(map[string]any); len(debug) != 0 {
		t.Errorf("filtered Debug = %#v", debug)
	}
}

func TestScope_RestoreAll(t *testing.T) {
	f := newFixture(t)
	_ = f.vanilla.Speed.Set(9)
	_ = f.mode.SetByString("Jetpack")

	if err := f.root.Restore(); err != nil {
		t.Fatal(err)
	}
	if f.vanilla.Speed.Get() != 1 || f.mode.Active().ChoiceName() != "Vanilla" {
		t.Error("Restore should reach nested values and slots")
	}
}
