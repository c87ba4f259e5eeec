package key

import (
	"fmt"
	"strings"
)

// Event is a single key or button, optionally combined with modifiers.
// The zero Event is the unbound key.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the modifier keys held with Key.
	Modifiers Modifier
}

// None is the unbound key.
var None = Event{}

// NewRuneEvent creates an event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates an event for a named key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsNone returns true if the event is the unbound key.
func (e Event) IsNone() bool {
	return e.Key == KeyNone
}

// String returns the canonical form, e.g. "a", "Ctrl+S", "Alt+F4", "None".
// The result parses back to an equal Event.
func (e Event) String() string {
	if e.IsNone() {
		return "None"
	}

	var name string
	if e.Key == KeyRune {
		name = string(e.Rune)
		if e.Modifiers.Has(ModCtrl) || e.Modifiers.Has(ModAlt) || e.Modifiers.Has(ModMeta) {
			name = strings.ToUpper(name)
		}
	} else {
		name = e.Key.String()
	}

	mods := e.Modifiers
	// Shift is implied by an upper-case rune
	if e.Key == KeyRune && mods == ModShift {
		return name
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Document returns the document form of the event.
func (e Event) Document() any {
	return e.String()
}

// DecodeDocument decodes the event from its document form.
func (e *Event) DecodeDocument(doc any) error {
	s, ok := doc.(string)
	if !ok {
		return fmt.Errorf("%w: expected key name, got %T", ErrInvalidSpec, doc)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
