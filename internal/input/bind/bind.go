// Package bind provides the input binding payload stored by bind settings:
// a key (or mouse button) plus the action the binding performs.
package bind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/tunable/internal/input/key"
)

// Action describes how a binding reacts to its key.
type Action uint8

const (
	// ActionToggle flips the bound feature on each press.
	ActionToggle Action = iota
	// ActionHold keeps the bound feature active while the key is held.
	ActionHold
	// ActionSmart toggles on a short press and holds on a long press.
	ActionSmart
)

// ErrInvalidBind indicates a malformed binding specification.
var ErrInvalidBind = errors.New("invalid binding")

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionHold:
		return "hold"
	case ActionSmart:
		return "smart"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name (case-insensitive).
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "toggle":
		return ActionToggle, nil
	case "hold":
		return ActionHold, nil
	case "smart":
		return ActionSmart, nil
	default:
		return ActionToggle, fmt.Errorf("%w: unknown action %q", ErrInvalidBind, s)
	}
}

// InputBind is a key binding. The zero InputBind is unbound with ActionToggle.
type InputBind struct {
	Key    key.Event
	Action Action
}

// Unbound returns an unbound binding with the given action.
func Unbound(action Action) InputBind {
	return InputBind{Key: key.None, Action: action}
}

// IsUnbound returns true if no key is bound.
func (b InputBind) IsUnbound() bool {
	return b.Key.IsNone()
}

// Bind returns a copy of b bound to the key in spec.
//
// The spec is a key specification as accepted by key.Parse, optionally
// followed by ":" and an action name, e.g. "Ctrl+F", "MouseMiddle:hold",
// "none". The action is kept when the spec does not name one.
func (b InputBind) Bind(spec string) (InputBind, error) {
	keySpec, action := spec, b.Action

	if idx := strings.LastIndex(spec, ":"); idx > 0 {
		if a, err := ParseAction(spec[idx+1:]); err == nil {
			keySpec, action = spec[:idx], a
		}
	}

	ev, err := key.Parse(keySpec)
	if err != nil {
		return b, fmt.Errorf("%w: %w", ErrInvalidBind, err)
	}
	return InputBind{Key: ev, Action: action}, nil
}

// String returns "<key>" or "<key>:<action>" when the action is not toggle.
func (b InputBind) String() string {
	if b.Action == ActionToggle {
		return b.Key.String()
	}
	return b.Key.String() + ":" + b.Action.String()
}

// Document returns the document form {"key": ..., "action": ...}.
func (b InputBind) Document() any {
	return map[string]any{
		"key":    b.Key.String(),
		"action": b.Action.String(),
	}
}

// DecodeDocument decodes a binding from its document form. A bare string is
// accepted as a binding specification.
func (b *InputBind) DecodeDocument(doc any) error {
	switch d := doc.(type) {
	case string:
		parsed, err := InputBind{}.Bind(d)
		if err != nil {
			return err
		}
		*b = parsed
		return nil
	case map[string]any:
		var out InputBind
		if raw, ok := d["key"]; ok {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("%w: key must be a string, got %T", ErrInvalidBind, raw)
			}
			ev, err := key.Parse(s)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidBind, err)
			}
			out.Key = ev
		}
		if raw, ok := d["action"]; ok {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("%w: action must be a string, got %T", ErrInvalidBind, raw)
			}
			a, err := ParseAction(s)
			if err != nil {
				return err
			}
			out.Action = a
		}
		*b = out
		return nil
	default:
		return fmt.Errorf("%w: unexpected document %T", ErrInvalidBind, doc)
	}
}
