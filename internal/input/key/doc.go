// Package key identifies input keys for binding settings.
//
// A key specification can be written in several equivalent forms:
//
//   - Simple keys: "a", "1", "Enter", "F5"
//   - With modifiers: "Ctrl+S", "Alt+F4", "Ctrl+Shift+P"
//   - Vim-style: "<C-s>", "<A-f>", "<C-S-p>", "<CR>"
//   - Mouse buttons: "MouseLeft", "MouseRight", "MouseMiddle"
//   - The unbound key: "none"
//
// Parse turns any of these into an Event; Event.String renders the canonical
// "Ctrl+S" form that Parse accepts back.
package key
