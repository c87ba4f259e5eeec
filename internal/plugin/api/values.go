package api

import (
	"log/slog"
	"sync"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/tunable/internal/config/configurable"
	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/logging"
	"github.com/dshills/tunable/internal/plugin/lua"
)

// ModuleName is the Lua global holding the values API.
const ModuleName = "values"

// chooser is implemented by choice lists and choice slots.
type chooser interface {
	ChoiceNames() []string
}

// ValuesModule exposes a scope to Lua as the values table:
//
//	values.get(path)          -> current value
//	values.set(path, v)       -> nothing; failures are logged
//	values.choices(path)      -> {names}
//	values.restore(path)      -> true, or false and a message
//	values.watch(path, fn)    -> watch id; fn(path, old, new) on change
//	values.unwatch(id)        -> true if the watch existed
//
// Unknown paths raise an argument error everywhere except set, which never
// raises.
//
// Watch handlers run on the Lua goroutine. Changes made by the script are
// delivered before set and restore return; changes from elsewhere wait for
// Dispatch.
type ValuesModule struct {
	root    *configurable.Scope
	state   *lua.State
	logger  *slog.Logger
	bridge  *lua.Bridge
	handler *glua.LTable

	mu      sync.Mutex
	watches map[int]*notify.Subscription
	nextID  int
	pending []pendingCall
}

var _ Module = (*ValuesModule)(nil)

type pendingCall struct {
	id     int
	change notify.Change
}

// NewValuesModule creates a values module over root for state.
func NewValuesModule(root *configurable.Scope, state *lua.State) *ValuesModule {
	return &ValuesModule{
		root:    root,
		state:   state,
		logger:  logging.OrDiscard(root.Logger()),
		watches: make(map[int]*notify.Subscription),
	}
}

// Name returns the module name.
func (m *ValuesModule) Name() string {
	return ModuleName
}

// Register installs the module into the state.
func (m *ValuesModule) Register() error {
	return m.state.Do(func(L *glua.LState) error {
		m.bridge = lua.NewBridge(L)
		m.handler = L.NewTable()

		mod := L.NewTable()
		L.SetField(mod, "get", L.NewFunction(m.get))
		L.SetField(mod, "set", L.NewFunction(m.set))
		L.SetField(mod, "choices", L.NewFunction(m.choices))
		L.SetField(mod, "restore", L.NewFunction(m.restore))
		L.SetField(mod, "watch", L.NewFunction(m.watch))
		L.SetField(mod, "unwatch", L.NewFunction(m.unwatch))
		L.SetField(mod, "_handlers", m.handler)

		L.SetGlobal(ModuleName, mod)
		return nil
	})
}

// Cleanup removes every watch.
func (m *ValuesModule) Cleanup() {
	m.mu.Lock()
	subs := make([]*notify.Subscription, 0, len(m.watches))
	for _, s := range m.watches {
		subs = append(subs, s)
	}
	m.watches = make(map[int]*notify.Subscription)
	m.pending = nil
	m.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

// Dispatch delivers queued changes to watch handlers.
func (m *ValuesModule) Dispatch() error {
	return m.state.Do(func(L *glua.LState) error {
		m.drain(L)
		return nil
	})
}

// Pending returns the number of changes waiting for Dispatch.
func (m *ValuesModule) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *ValuesModule) find(L *glua.LState, path string) value.Node {
	n, err := m.root.Find(path)
	if err != nil {
		L.ArgError(1, err.Error())
		return nil
	}
	return n
}

// get(path) -> value
func (m *ValuesModule) get(L *glua.LState) int {
	m.state.Sandbox().Charge(L)
	n := m.find(L, L.CheckString(1))
	L.Push(m.bridge.ToLuaValue(n.ScriptValue()))
	return 1
}

// set(path, v)
// Failures are logged and the value keeps its previous state.
func (m *ValuesModule) set(L *glua.LState) int {
	m.state.Sandbox().Charge(L)
	path := L.ToString(1)
	foreign := m.bridge.ToGoValue(L.Get(2))

	n, err := m.root.Find(path)
	if err != nil {
		m.logger.Error("script failed to set value",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return 0
	}

	n.SetScriptValue(foreign)
	m.drain(L)
	return 0
}

// choices(path) -> {names}
func (m *ValuesModule) choices(L *glua.LState) int {
	m.state.Sandbox().Charge(L)
	n := m.find(L, L.CheckString(1))
	c, ok := n.(chooser)
	if !ok {
		L.ArgError(1, n.Path()+" has no choices")
		return 0
	}
	L.Push(m.bridge.ToLuaValue(c.ChoiceNames()))
	return 1
}

// restore(path) -> bool, message?
func (m *ValuesModule) restore(L *glua.LState) int {
	m.state.Sandbox().Charge(L)
	n := m.find(L, L.CheckString(1))
	err := n.Restore()
	m.drain(L)

	if err != nil {
		L.Push(glua.LFalse)
		L.Push(glua.LString(err.Error()))
		return 2
	}
	L.Push(glua.LTrue)
	return 1
}

// watch(path, fn) -> id
func (m *ValuesModule) watch(L *glua.LState) int {
	m.state.Sandbox().Charge(L)
	path := L.CheckString(1)
	fn := L.CheckFunction(2)
	m.find(L, path)
	if m.root.Notifier() == nil {
		L.RaiseError("values.watch: %s has no change notifier", path)
		return 0
	}

	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	m.handler.RawSetInt(id, fn)
	sub := m.root.Notifier().SubscribePath(path, func(c notify.Change) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.watches[id]; ok {
			m.pending = append(m.pending, pendingCall{id: id, change: c})
		}
	})

	m.mu.Lock()
	m.watches[id] = sub
	m.mu.Unlock()

	L.Push(glua.LNumber(id))
	return 1
}

// unwatch(id) -> bool
func (m *ValuesModule) unwatch(L *glua.LState) int {
	id := L.CheckInt(1)

	m.mu.Lock()
	sub, ok := m.watches[id]
	delete(m.watches, id)
	m.mu.Unlock()

	if ok {
		sub.Unsubscribe()
		m.handler.RawSetInt(id, glua.LNil)
	}
	L.Push(glua.LBool(ok))
	return 1
}

// drain runs queued watch handlers. Handler errors are logged.
func (m *ValuesModule) drain(L *glua.LState) {
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return
		}
		call := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		fn, ok := m.handler.RawGetInt(call.id).(*glua.LFunction)
		if !ok {
			continue
		}
		err := L.CallByParam(glua.P{Fn: fn, NRet: 0, Protect: true},
			glua.LString(call.change.Path),
			m.bridge.ToLuaValue(call.change.OldValue),
			m.bridge.ToLuaValue(call.change.NewValue),
		)
		if err != nil {
			m.logger.Error("watch handler failed",
				slog.String("path", call.change.Path),
				slog.Any("error", err),
			)
		}
	}
}
