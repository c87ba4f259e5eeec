// Package configurable provides scopes: named trees of values, nested scopes
// and choice slots.
//
// A root scope carries the notifier and logger; every value and scope built
// from it inherits both along with its dotted path:
//
//	root := configurable.New("Features", configurable.WithNotifier(bus))
//	movement := root.Tree("Movement")
//	speed := movement.Float("Speed", 1.0)   // path "Movement.Speed"
//
// A choice slot holds exactly one active variant out of a fixed set. Each
// variant owns its own scope, and switching variants never resets the state
// of the one left behind.
package configurable
