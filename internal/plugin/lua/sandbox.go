package lua

import (
	"log/slog"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations and meters host calls.
type Sandbox struct {
	L *lua.LState

	instructionLimit int64
	instructionCount int64

	logger *slog.Logger
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, instructionLimit int64, logger *slog.Logger) *Sandbox {
	return &Sandbox{
		L:                L,
		instructionLimit: instructionLimit,
		logger:           logger,
	}
}

// Install removes functions that load code from outside the script and
// routes print to the logger.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafePrint()
}

// installSafePrint replaces print so script output lands in the log
// instead of stdout.
func (s *Sandbox) installSafePrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		s.logger.Info("script output", slog.String("text", strings.Join(parts, "\t")))
		return 0
	}))
}

// ResetInstructionCount resets the instruction counter.
func (s *Sandbox) ResetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
}

// InstructionCount returns the current instruction count.
func (s *Sandbox) InstructionCount() int64 {
	return atomic.LoadInt64(&s.instructionCount)
}

// IncrementInstructions adds to the instruction count and returns true if limit exceeded.
func (s *Sandbox) IncrementInstructions(n int64) bool {
	if s.instructionLimit <= 0 {
		return false
	}
	count := atomic.AddInt64(&s.instructionCount, n)
	return count > s.instructionLimit
}

// Charge counts one host call and raises a Lua error once the budget is
// spent. Host functions call it on entry.
func (s *Sandbox) Charge(L *lua.LState) {
	if s.IncrementInstructions(1) {
		L.RaiseError("%s", ErrInstructionLimit.Error())
	}
}
