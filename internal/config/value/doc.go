// Package value provides Value, a named, typed, observable setting cell, and
// its specializations for ranges, key bindings and named variants.
//
// A Value is created once with a default and a kind, then mutated in place:
//
//	speed := value.New("Speed", 1.0, valuetype.Float,
//	    value.WithNotifier(bus),
//	    value.WithPath("Movement.Fly.Speed"),
//	)
//	speed.OnChange(func(v float64) (float64, error) {
//	    if v < 0 {
//	        return 0, errors.New("speed must be positive")
//	    }
//	    return v, nil
//	})
//	err := speed.SetByString("2.5")
//
// Every update runs through the same pipeline: equal values are dropped,
// transform listeners run in registration order with each receiving the
// previous one's output, the result is committed atomically, a change is
// published on the notifier, and change listeners run in registration order.
// A failing transform vetoes the update and leaves the cell unchanged.
package value
