package value

import (
	"log/slog"

	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/valuetype"
	"github.com/dshills/tunable/internal/logging"
)

// Option configures a value at construction.
type Option func(*options)

type options struct {
	path     string
	listKind valuetype.ListKind
	notifier *notify.Notifier
	logger   *slog.Logger
	registry *valuetype.Registry
	equal    func(a, b any) bool
}

func newOptions(name string, opts []Option) options {
	o := options{path: name}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.OrDiscard(o.logger)
	if o.registry == nil {
		o.registry = valuetype.Default()
	}
	return o
}

// WithPath sets the dotted path published with changes. Defaults to the name.
func WithPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.path = path
		}
	}
}

// WithListKind sets the element kind of list and set values.
func WithListKind(kind valuetype.ListKind) Option {
	return func(o *options) {
		o.listKind = kind
	}
}

// WithNotifier sets the notifier committed changes are published to.
func WithNotifier(n *notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLogger sets the logger for vetoes and listener failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry sets the registry used for string decoding and completion.
func WithRegistry(r *valuetype.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithEqual overrides the equality used to detect no-op updates.
func WithEqual[T any](eq func(a, b T) bool) Option {
	return func(o *options) {
		o.equal = func(a, b any) bool {
			x, okA := a.(T)
			y, okB := b.(T)
			return okA && okB && eq(x, y)
		}
	}
}
