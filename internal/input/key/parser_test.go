package key

import (
	"errors"
	"testing"
)

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
		wantMod  Modifier
	}{
		{"a", 'a', ModNone},
		{"A", 'A', ModShift},
		{"1", '1', ModNone},
		{"@", '@', ModNone},
		{"+", '+', ModNone},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != KeyRune {
			t.Errorf("Parse(%q) key = %v, want Rune", tt.spec, event.Key)
		}
		if event.Rune != tt.wantRune {
			t.Errorf("Parse(%q) rune = %q, want %q", tt.spec, event.Rune, tt.wantRune)
		}
		if event.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, event.Modifiers, tt.wantMod)
		}
	}
}

func TestParseNamedKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey Key
	}{
		{"Enter", KeyEnter},
		{"enter", KeyEnter},
		{"Esc", KeyEscape},
		{"Space", KeySpace},
		{"F12", KeyF12},
		{"MouseLeft", KeyMouseLeft},
		{"mouse3", KeyMouseMiddle},
		{"<CR>", KeyEnter},
		{"<Esc>", KeyEscape},
	}

	for _, tt := range tests {
		event, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if event.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, event.Key, tt.wantKey)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"Ctrl+S", NewRuneEvent('s', ModCtrl)},
		{"ctrl+shift+p", NewRuneEvent('p', ModCtrl|ModShift)},
		{"Alt+F4", NewSpecialEvent(KeyF4, ModAlt)},
		{"<C-s>", NewRuneEvent('s', ModCtrl)},
		{"<C-S-p>", NewRuneEvent('p', ModCtrl|ModShift)},
		{"<D-a>", NewRuneEvent('a', ModMeta)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseNone(t *testing.T) {
	got, err := Parse("none")
	if err != nil {
		t.Fatalf("Parse(none) error = %v", err)
	}
	if !got.IsNone() {
		t.Errorf("Parse(none) = %+v, want unbound", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+S", ErrInvalidSpec},
		{"<X-s>", ErrInvalidSpec},
		{"notakey", ErrInvalidSpec},
		{"Ctrl+None", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestEventString_RoundTrip(t *testing.T) {
	specs := []string{"a", "A", "Ctrl+S", "Ctrl+Shift+P", "Alt+F4", "Enter", "MouseRight", "None", "Meta+Space"}

	for _, spec := range specs {
		ev := MustParse(spec)
		again, err := Parse(ev.String())
		if err != nil {
			t.Errorf("Parse(%q.String()=%q) error = %v", spec, ev.String(), err)
			continue
		}
		if again != ev {
			t.Errorf("round trip of %q: got %+v, want %+v", spec, again, ev)
		}
	}
}

func TestEventString_Canonical(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"<C-s>", "Ctrl+S"},
		{"A", "A"},
		{"alt+f4", "Alt+F4"},
		{"none", "None"},
	}

	for _, tt := range tests {
		if got := MustParse(tt.spec).String(); got != tt.want {
			t.Errorf("%q.String() = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestEventDocument(t *testing.T) {
	ev := MustParse("Ctrl+K")

	var decoded Event
	if err := decoded.DecodeDocument(ev.Document()); err != nil {
		t.Fatalf("DecodeDocument error = %v", err)
	}
	if decoded != ev {
		t.Errorf("decoded = %+v, want %+v", decoded, ev)
	}

	if err := decoded.DecodeDocument(42); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("DecodeDocument(42) error = %v, want ErrInvalidSpec", err)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names() returned nothing")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted at %d: %q > %q", i, names[i-1], names[i])
		}
	}
	for _, n := range names {
		if n == "Rune" {
			t.Error("Names() should not include Rune")
		}
	}
}

func TestModifierString(t *testing.T) {
	if got := (ModCtrl | ModShift | ModAlt).String(); got != "Ctrl+Alt+Shift" {
		t.Errorf("String() = %q", got)
	}
	if got := ModNone.String(); got != "" {
		t.Errorf("ModNone.String() = %q, want empty", got)
	}
}
