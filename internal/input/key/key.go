package key

import (
	"fmt"
	"sort"
	"strings"
)

// Key represents an input key or button.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key (an unbound binding).
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Mouse buttons
	KeyMouseLeft
	KeyMouseRight
	KeyMouseMiddle

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:        "None",
	KeyEscape:      "Escape",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyBackspace:   "Backspace",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeySpace:       "Space",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyF1:          "F1",
	KeyF2:          "F2",
	KeyF3:          "F3",
	KeyF4:          "F4",
	KeyF5:          "F5",
	KeyF6:          "F6",
	KeyF7:          "F7",
	KeyF8:          "F8",
	KeyF9:          "F9",
	KeyF10:         "F10",
	KeyF11:         "F11",
	KeyF12:         "F12",
	KeyMouseLeft:   "MouseLeft",
	KeyMouseRight:  "MouseRight",
	KeyMouseMiddle: "MouseMiddle",
	KeyRune:        "Rune",
}

// String returns the canonical name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsMouse returns true if this is a mouse button.
func (k Key) IsMouse() bool {
	return k >= KeyMouseLeft && k <= KeyMouseMiddle
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// keyNameMap maps key names and aliases (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"none":        KeyNone,
	"escape":      KeyEscape,
	"esc":         KeyEscape,
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"cr":          KeyEnter,
	"tab":         KeyTab,
	"backspace":   KeyBackspace,
	"bs":          KeyBackspace,
	"delete":      KeyDelete,
	"del":         KeyDelete,
	"insert":      KeyInsert,
	"ins":         KeyInsert,
	"home":        KeyHome,
	"end":         KeyEnd,
	"pageup":      KeyPageUp,
	"pgup":        KeyPageUp,
	"pagedown":    KeyPageDown,
	"pgdn":        KeyPageDown,
	"space":       KeySpace,
	"up":          KeyUp,
	"down":        KeyDown,
	"left":        KeyLeft,
	"right":       KeyRight,
	"f1":          KeyF1,
	"f2":          KeyF2,
	"f3":          KeyF3,
	"f4":          KeyF4,
	"f5":          KeyF5,
	"f6":          KeyF6,
	"f7":          KeyF7,
	"f8":          KeyF8,
	"f9":          KeyF9,
	"f10":         KeyF10,
	"f11":         KeyF11,
	"f12":         KeyF12,
	"mouseleft":   KeyMouseLeft,
	"mouse1":      KeyMouseLeft,
	"mouseright":  KeyMouseRight,
	"mouse2":      KeyMouseRight,
	"mousemiddle": KeyMouseMiddle,
	"mouse3":      KeyMouseMiddle,
}

// FromName returns the Key for a given name or alias (case-insensitive).
// The second result is false if the name is not recognized.
func FromName(name string) (Key, bool) {
	k, ok := keyNameMap[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Names returns the canonical names of all named keys, sorted.
func Names() []string {
	names := make([]string, 0, len(keyNames))
	for k := KeyNone; k < KeyRune; k++ {
		names = append(names, keyNames[k])
	}
	sort.Strings(names)
	return names
}
