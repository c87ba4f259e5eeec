package value

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dshills/tunable/internal/config/cfgerrors"
	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/valuetype"
)

// TransformFunc receives an incoming value and returns the value to commit.
// Returning an error vetoes the update.
type TransformFunc[T any] func(T) (T, error)

// ChangedFunc observes a committed value.
type ChangedFunc[T any] func(T)

// Value is a named, typed, observable setting cell.
// All methods are safe for concurrent use.
type Value[T any] struct {
	Flags

	name     string
	kind     valuetype.Kind
	shape    Shape
	def      T
	opts     options
	cur      atomic.Pointer[T]
	writeMu  sync.Mutex
	listenMu sync.RWMutex

	transforms []TransformFunc[T]
	changed    []ChangedFunc[T]

	// Container shapes decode and encode through these.
	decodeContainer func(doc any) (T, error)
	encodeContainer func(T) any

	// choices supplies completion options for option-like kinds.
	choices func() []string

	// resolve runs after the transform chain and may replace or reject its
	// output.
	resolve TransformFunc[T]
}

// New creates a scalar value.
func New[T any](name string, def T, kind valuetype.Kind, opts ...Option) *Value[T] {
	return newValue(name, def, kind, ShapeScalar, opts)
}

func newValue[T any](name string, def T, kind valuetype.Kind, shape Shape, opts []Option) *Value[T] {
	v := &Value[T]{
		name:  name,
		kind:  kind,
		shape: shape,
		def:   def,
		opts:  newOptions(name, opts),
	}
	initial := def
	v.cur.Store(&initial)
	return v
}

// Name returns the value name.
func (v *Value[T]) Name() string { return v.name }

// Path returns the dotted path published with changes.
func (v *Value[T]) Path() string { return v.opts.path }

// Kind returns the kind tag.
func (v *Value[T]) Kind() valuetype.Kind { return v.kind }

// ListKind returns the element kind of list and set values.
func (v *Value[T]) ListKind() valuetype.ListKind { return v.opts.listKind }

// Shape returns the container shape.
func (v *Value[T]) Shape() Shape { return v.shape }

// Default returns the declared default.
func (v *Value[T]) Default() T { return v.def }

// Logger returns the value's logger.
func (v *Value[T]) Logger() *slog.Logger { return v.opts.logger }

// Get returns the current value.
func (v *Value[T]) Get() T {
	return *v.cur.Load()
}

// String formats the current value.
func (v *Value[T]) String() string {
	return fmt.Sprint(v.Document())
}

// OnChange appends a transform listener.
func (v *Value[T]) OnChange(fn TransformFunc[T]) *Value[T] {
	v.listenMu.Lock()
	defer v.listenMu.Unlock()
	v.transforms = append(v.transforms, fn)
	return v
}

// OnChanged appends a change listener.
func (v *Value[T]) OnChanged(fn ChangedFunc[T]) *Value[T] {
	v.listenMu.Lock()
	defer v.listenMu.Unlock()
	v.changed = append(v.changed, fn)
	return v
}

// DoNotIncludeAlways hides the value from public documents.
func (v *Value[T]) DoNotIncludeAlways() *Value[T] {
	v.SetExcluded(func() bool { return true })
	return v
}

// DoNotIncludeWhen hides the value from public documents while pred holds.
func (v *Value[T]) DoNotIncludeWhen(pred func() bool) *Value[T] {
	v.SetExcluded(pred)
	return v
}

// NotAnOption hides the value from API documents.
func (v *Value[T]) NotAnOption() *Value[T] {
	v.SetNotAnOption()
	return v
}

// IndependentDescription marks the value as carrying its own description.
func (v *Value[T]) IndependentDescription() *Value[T] {
	v.SetIndependentDescription()
	return v
}

// Set runs newValue through the update pipeline.
// It returns a *cfgerrors.ValidationVeto when a transform listener rejects it.
//
// The notification and change listeners run after the write lock is
// released, so a listener may set the value again. Concurrent Sets on one
// value commit in a serial order but may notify in a different one; Get is
// authoritative.
func (v *Value[T]) Set(newValue T) error {
	return v.update(newValue, notify.ChangeSet, "set")
}

// Restore sets the value back to its default.
func (v *Value[T]) Restore() error {
	return v.update(v.def, notify.ChangeRestore, "restore")
}

func (v *Value[T]) update(in T, typ notify.ChangeType, source string) error {
	v.writeMu.Lock()

	old := v.Get()
	if v.equal(old, in) {
		v.writeMu.Unlock()
		return nil
	}

	v.listenMu.RLock()
	transforms := v.transforms
	changed := v.changed
	v.listenMu.RUnlock()

	out, err := v.transform(transforms, in)
	if err != nil {
		v.writeMu.Unlock()
		veto := &cfgerrors.ValidationVeto{Name: v.name, Value: in, Err: err}
		v.opts.logger.Warn("transform vetoed value",
			slog.String("path", v.opts.path),
			slog.Any("value", in),
			slog.Any("error", err),
		)
		return veto
	}

	v.cur.Store(&out)
	v.writeMu.Unlock()

	v.opts.notifier.Notify(notify.Change{
		Path:     v.opts.path,
		Type:     typ,
		OldValue: old,
		NewValue: out,
		Source:   source,
	})

	for i, fn := range changed {
		v.callChanged(i, fn, out)
	}
	return nil
}

// transform feeds each stage the previous stage's output.
func (v *Value[T]) transform(transforms []TransformFunc[T], in T) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transform listener panicked: %v", r)
		}
	}()

	out = in
	for _, fn := range transforms {
		if out, err = fn(out); err != nil {
			return out, err
		}
	}
	if v.resolve != nil {
		return v.resolve(out)
	}
	return out, nil
}

func (v *Value[T]) callChanged(index int, fn ChangedFunc[T], val T) {
	defer func() {
		if r := recover(); r != nil {
			v.opts.logger.Error("change listener panicked",
				slog.String("path", v.opts.path),
				slog.Int("listener", index),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	fn(val)
}

type equaler[T any] interface {
	Equal(T) bool
}

func (v *Value[T]) equal(a, b T) bool {
	if v.opts.equal != nil {
		return v.opts.equal(a, b)
	}
	if e, ok := any(a).(equaler[T]); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// SetByString decodes raw with the registry decoder of the value's kind.
func (v *Value[T]) SetByString(raw string) error {
	decoded, err := v.opts.registry.Decode(v.kind, raw)
	if err != nil {
		return err
	}

	var t T
	if v.shape != ShapeScalar {
		t, err = v.decodeContainer(decoded)
	} else {
		t, err = convert[T](decoded)
	}
	if err != nil {
		return cfgerrors.NewParseError(v.kind.String(), raw, "", err)
	}
	return v.Set(t)
}

// Document returns the document form of the current value.
func (v *Value[T]) Document() any {
	cur := v.Get()
	if v.encodeContainer != nil {
		return v.encodeContainer(cur)
	}
	return documentOf(cur)
}

// DeserializeFrom decodes doc according to the value's shape and sets it.
func (v *Value[T]) DeserializeFrom(doc any) error {
	t, err := v.decodeDocument(doc)
	if err != nil {
		return err
	}
	return v.Set(t)
}

func (v *Value[T]) decodeDocument(doc any) (T, error) {
	if v.shape != ShapeScalar {
		return v.decodeContainer(doc)
	}

	t, err := decodeInto[T](doc)
	if err == nil {
		return t, nil
	}

	// Text documents fall back on the kind's string form.
	if s, ok := doc.(string); ok && v.opts.registry.Has(v.kind) {
		if decoded, derr := v.opts.registry.Decode(v.kind, s); derr == nil {
			if t, cerr := convert[T](decoded); cerr == nil {
				return t, nil
			}
		}
	}

	var zero T
	return zero, &cfgerrors.TypeMismatchError{
		Name:     v.name,
		Expected: typeName[T](),
		Actual:   fmt.Sprintf("%T", doc),
		Err:      err,
	}
}

// Complete proposes completions for partial user text.
func (v *Value[T]) Complete(partial string) []string {
	var options []string
	if v.choices != nil {
		options = v.choices()
	}
	return v.opts.registry.Complete(v.kind, partial, options)
}

func (v *Value[T]) mismatch(doc any, err error) error {
	return &cfgerrors.TypeMismatchError{
		Name:     v.name,
		Expected: v.shape.String() + " " + typeName[T](),
		Actual:   fmt.Sprintf("%T", doc),
		Err:      err,
	}
}
