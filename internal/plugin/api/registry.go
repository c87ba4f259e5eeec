package api

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
)

// Module is a Lua API module bound to one state.
type Module interface {
	// Name returns the global the module installs (e.g. "values").
	Name() string

	// Register installs the module into its state.
	Register() error

	// Cleanup releases everything the module holds outside the state.
	Cleanup()
}

// Registry manages the modules of one script state.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module. Names must be unique.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return errors.Newf("module %q already registered", mod.Name())
	}
	r.modules[mod.Name()] = mod
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns the registered module names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InjectAll installs every module in name order and stops at the first
// failure.
func (r *Registry) InjectAll() error {
	for _, name := range r.List() {
		mod, _ := r.Get(name)
		if err := mod.Register(); err != nil {
			return errors.Wrapf(err, "register module %q", name)
		}
	}
	return nil
}

// CleanupAll calls Cleanup on every module.
func (r *Registry) CleanupAll() {
	for _, name := range r.List() {
		mod, _ := r.Get(name)
		mod.Cleanup()
	}
}
