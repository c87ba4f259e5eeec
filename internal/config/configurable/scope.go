package configurable

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/logging"
)

// EnabledName is the name of the switch inside a toggleable scope.
const EnabledName = "Enabled"

// Option configures a root scope.
type Option func(*Scope)

// WithNotifier sets the notifier inherited by the whole tree.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Scope) {
		s.notifier = n
	}
}

// WithLogger sets the logger inherited by the whole tree.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) {
		s.logger = logger
	}
}

// WithRegistry sets the type registry inherited by the whole tree.
func WithRegistry(r *valuetype.Registry) Option {
	return func(s *Scope) {
		s.registry = r
	}
}

// Scope is a named collection of nodes. Children keep declaration order.
type Scope struct {
	value.Flags

	name     string
	path     string
	kind     valuetype.Kind
	notifier *notify.Notifier
	logger   *slog.Logger
	registry *valuetype.Registry

	mu       sync.RWMutex
	children []value.Node
	index    map[string]value.Node

	enabled *value.Value[bool]
}

// New creates a root scope. Paths below it are relative to it.
func New(name string, opts ...Option) *Scope {
	s := &Scope{
		name:  name,
		kind:  valuetype.Configurable,
		index: make(map[string]value.Node),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDiscard(s.logger)
	if s.registry == nil {
		s.registry = valuetype.Default()
	}
	return s
}

// detached creates a scope inheriting from s without registering it.
func (s *Scope) detached(name string, kind valuetype.Kind) *Scope {
	return &Scope{
		name:     name,
		path:     s.childPath(name),
		kind:     kind,
		notifier: s.notifier,
		logger:   s.logger,
		registry: s.registry,
		index:    make(map[string]value.Node),
	}
}

func (s *Scope) childPath(name string) string {
	if s.path == "" {
		return name
	}
	return s.path + "." + name
}

// ValueOptions returns the options a value named name needs to live in s.
func (s *Scope) ValueOptions(name string) []value.Option {
	return []value.Option{
		value.WithPath(s.childPath(name)),
		value.WithNotifier(s.notifier),
		value.WithLogger(s.logger),
		value.WithRegistry(s.registry),
	}
}

// Add registers a node. It panics if the name is already taken.
func (s *Scope) Add(n value.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[n.Name()]; exists {
		panic(fmt.Sprintf("configurable: %q already registered in %q", n.Name(), s.name))
	}
	s.index[n.Name()] = n
	s.children = append(s.children, n)
}

// Name returns the scope name.
func (s *Scope) Name() string { return s.name }

// Path returns the dotted path from the root. The root's path is empty.
func (s *Scope) Path() string { return s.path }

// Kind returns Configurable or Toggleable.
func (s *Scope) Kind() valuetype.Kind { return s.kind }

// Notifier returns the notifier inherited by the tree.
func (s *Scope) Notifier() *notify.Notifier { return s.notifier }

// Logger returns the logger inherited by the tree.
func (s *Scope) Logger() *slog.Logger { return s.logger }

// Children returns the registered nodes in declaration order.
func (s *Scope) Children() []value.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]value.Node, len(s.children))
	copy(out, s.children)
	return out
}

// Child returns the direct child with the given name.
func (s *Scope) Child(name string) (value.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.index[name]
	return n, ok
}

// Enabled returns the switch of a toggleable scope, nil otherwise.
func (s *Scope) Enabled() *value.Value[bool] {
	return s.enabled
}

// IsEnabled reports whether a toggleable scope is switched on.
// Plain scopes are always enabled.
func (s *Scope) IsEnabled() bool {
	return s.enabled == nil || s.enabled.Get()
}

// Find resolves a dotted path below s, descending through nested scopes and
// into the variants of choice slots ("Mode.Jetpack.Power").
func (s *Scope) Find(path string) (value.Node, error) {
	if path == "" {
		return s, nil
	}

	var cur value.Node = s
	for _, seg := range strings.Split(path, ".") {
		next, ok := lookup(cur, seg)
		if !ok {
			return nil, cfgerrors.NotFound(path)
		}
		cur = next
	}
	return cur, nil
}

func lookup(n value.Node, name string) (value.Node, bool) {
	switch c := n.(type) {
	case *Scope:
		return c.Child(name)
	case slot:
		return c.choiceScope(name)
	}
	return nil, false
}

// Walk calls fn for every node below s, depth first in declaration order,
// including the scopes of inactive variants. Returning false skips the
// node's descendants.
func (s *Scope) Walk(fn func(value.Node) bool) {
	for _, child := range s.Children() {
		if !fn(child) {
			continue
		}
		switch c := child.(type) {
		case *Scope:
			c.Walk(fn)
		case slot:
			for _, cs := range c.choiceScopes() {
				if fn(cs) {
					cs.Walk(fn)
				}
			}
		}
	}
}

// Document returns the document of every child keyed by name.
func (s *Scope) Document() any {
	return s.DocumentFunc(nil)
}

// DocumentFunc is Document restricted to the nodes keep accepts.
// A nil keep accepts everything.
func (s *Scope) DocumentFunc(keep func(value.Node) bool) map[string]any {
	out := make(map[string]any)
	for _, child := range s.Children() {
		if keep != nil && !keep(child) {
			continue
		}
		out[child.Name()] = documentFunc(child, keep)
	}
	return out
}

func documentFunc(n value.Node, keep func(value.Node) bool) any {
	switch c := n.(type) {
	case *Scope:
		return c.DocumentFunc(keep)
	case slot:
		return c.documentFunc(keep)
	}
	return n.Document()
}

// DeserializeFrom applies the entries of a document object to matching
// children. Unknown keys are ignored. Every child runs; failures are
// combined.
func (s *Scope) DeserializeFrom(doc any) error {
	m, ok := doc.(map[string]any)
	if !ok {
		return &cfgerrors.TypeMismatchError{Name: s.name, Expected: "object", Actual: fmt.Sprintf("%T", doc)}
	}

	var errs []error
	for _, child := range s.Children() {
		sub, ok := m[child.Name()]
		if !ok {
			continue
		}
		if err := child.DeserializeFrom(sub); err != nil {
			errs = append(errs, errors.Wrapf(err, "%s", s.childPath(child.Name())))
		}
	}

	for k := range m {
		if _, ok := s.Child(k); !ok {
			s.logger.Debug("ignoring unknown key", slog.String("scope", s.path), slog.String("key", k))
		}
	}
	return errors.Join(errs...)
}

// SetByString fails: scopes have no text form.
func (s *Scope) SetByString(string) error {
	return &cfgerrors.UnsupportedTypeError{Kind: s.kind.String()}
}

// Restore restores every child. Failures are combined.
func (s *Scope) Restore() error {
	var errs []error
	for _, child := range s.Children() {
		if err := child.Restore(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Complete proposes the names of the children.
func (s *Scope) Complete(partial string) []string {
	children := s.Children()
	names := make([]string, 0, len(children))
	for _, c := range children {
		names = append(names, c.Name())
	}
	return valuetype.CompleteOptions(partial, names)
}

// ScriptValue returns the scope document.
func (s *Scope) ScriptValue() any {
	return s.Document()
}

// SetScriptValue applies a document from a script, logging failures.
func (s *Scope) SetScriptValue(foreign any) {
	if err := s.DeserializeFrom(foreign); err != nil {
		s.logger.Error("script failed to set scope",
			slog.String("path", s.path),
			slog.Any("error", err),
		)
	}
}
