// Package lua runs settings scripts on gopher-lua.
//
// This package provides:
//   - A sandboxed State with only the base, table, string and math libraries
//   - A per-execution deadline and host call budget
//   - A Bridge converting documents to and from Lua values
//
// # State
//
//	state, err := lua.NewState(
//	    lua.WithExecutionTimeout(2 * time.Second),
//	    lua.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile(ctx, "tweaks.lua"); err != nil {
//	    return err
//	}
//
// # Sandbox
//
// The Sandbox removes dofile, loadfile, load, loadstring and require, and
// sends print output to the logger. Host functions call Sandbox.Charge so
// that runaway scripts hit ErrInstructionLimit; loops that never call the
// host are stopped by the execution deadline instead.
//
// # Thread safety
//
// All State methods lock the state. Use State.Do to call into Lua from
// another goroutine.
package lua
