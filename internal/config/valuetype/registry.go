package valuetype

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/cfgerrors"
)

// Decoder turns user text into a payload.
type Decoder func(raw string) (any, error)

// Completer proposes completions for a partial input.
// Options carries the declared choice names for option-like kinds.
type Completer func(partial string, options []string) []string

// Entry describes how a kind is parsed and completed.
type Entry struct {
	// Decoder parses user text. Nil means the kind has no text form.
	Decoder Decoder

	// Completer proposes completions. Nil behaves like CompleteNone.
	Completer Completer
}

// Registry maps kinds to their entries.
type Registry struct {
	mu      sync.RWMutex
	entries map[Kind]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[Kind]Entry)}
}

// NewWithDefaults creates a registry with the built-in decoders and completers.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

var defaultRegistry = sync.OnceValue(NewWithDefaults)

// Default returns the shared registry holding the built-in kinds.
func Default() *Registry {
	return defaultRegistry()
}

// Register sets the entry for a kind, replacing any previous one.
func (r *Registry) Register(kind Kind, entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[kind] = entry
}

// Lookup returns the entry for a kind.
func (r *Registry) Lookup(kind Kind) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[kind]
	return e, ok
}

// Has reports whether the kind has a decoder.
func (r *Registry) Has(kind Kind) bool {
	e, ok := r.Lookup(kind)
	return ok && e.Decoder != nil
}

// Decode parses raw text as the given kind.
// It fails with *cfgerrors.UnsupportedTypeError when the kind has no decoder
// and with *cfgerrors.ParseError when the text is malformed.
func (r *Registry) Decode(kind Kind, raw string) (any, error) {
	e, ok := r.Lookup(kind)
	if !ok || e.Decoder == nil {
		return nil, &cfgerrors.UnsupportedTypeError{Kind: kind.String()}
	}

	v, err := e.Decoder(raw)
	if err != nil {
		var pe *cfgerrors.ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, cfgerrors.NewParseError(kind.String(), raw, "", err)
	}
	return v, nil
}

// Complete returns completions for a partial input. It never fails.
func (r *Registry) Complete(kind Kind, partial string, options []string) []string {
	e, ok := r.Lookup(kind)
	if !ok || e.Completer == nil {
		return CompleteNone(partial, options)
	}
	return e.Completer(partial, options)
}

// RegisterDefaults registers the built-in kinds.
func (r *Registry) RegisterDefaults() {
	r.Register(Boolean, Entry{Decoder: DecodeBoolean, Completer: CompleteBoolean})
	r.Register(Int, Entry{Decoder: DecodeInt})
	r.Register(Float, Entry{Decoder: DecodeFloat})
	r.Register(IntRange, Entry{Decoder: DecodeIntRange})
	r.Register(FloatRange, Entry{Decoder: DecodeFloatRange})
	r.Register(Text, Entry{Decoder: DecodeText})
	r.Register(TextArray, Entry{Decoder: DecodeTextArray})
	r.Register(Color, Entry{Decoder: DecodeColor})
	r.Register(Key, Entry{Decoder: DecodeKey, Completer: CompleteKey})

	// Binds parse through the bind value itself; choices through their owner.
	r.Register(Bind, Entry{Completer: CompleteKey})
	r.Register(Choice, Entry{Completer: CompleteOptions})
	r.Register(Choose, Entry{Completer: CompleteOptions})
	r.Register(Configurable, Entry{})
	r.Register(Toggleable, Entry{})
}
