// Package api provides the Lua modules exposed to settings scripts.
//
// The values module gives scripts access to a configurable scope by dotted
// path:
//
//	values.set("Fly.Mode", "Jetpack")
//	values.set("Fly.Mode.Jetpack.Power", 5)
//	for _, name in ipairs(values.choices("Fly.Mode")) do
//	    print(name)
//	end
//	values.watch("Visuals", function(path, old, new)
//	    print(path, old, new)
//	end)
//
// Values cross the boundary as documents: numbers, strings, booleans and
// tables. Ranges are two element arrays and choices are their names.
//
// # Setup
//
//	state, _ := lua.NewState()
//	reg := api.NewRegistry()
//	_ = reg.Register(api.NewValuesModule(root, state))
//	if err := reg.InjectAll(); err != nil {
//	    return err
//	}
//	defer reg.CleanupAll()
//	err := state.DoFile(ctx, "tweaks.lua")
package api
