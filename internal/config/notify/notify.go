// Package notify provides the change bus that values publish to after a
// committed update.
//
// A Notifier is created by the owner of a value tree and handed to every value
// in it. Observers subscribe to all changes or to a path prefix and are called
// in subscription order. A panicking observer is logged and skipped; delivery
// to the remaining observers continues.
package notify

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChangeType represents the type of change.
type ChangeType int

const (
	// ChangeSet indicates a value was set.
	ChangeSet ChangeType = iota

	// ChangeRestore indicates a value was restored to its default.
	ChangeRestore

	// ChangeReload indicates a whole tree was reloaded from a document.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeRestore:
		return "restore"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is a committed update.
type Change struct {
	// ID uniquely identifies this change.
	ID uuid.UUID

	// Path is the dot-separated path of the value. Empty for reloads.
	Path string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous payload.
	OldValue any

	// NewValue is the committed payload.
	NewValue any

	// Source identifies the producer (e.g. "set", "script", "store").
	Source string

	// Time is when the change was published.
	Time time.Time
}

// Observer is called when a change is published.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	path     string
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Path returns the subscribed path prefix, empty for global subscriptions.
func (s *Subscription) Path() string {
	return s.path
}

type subscriber struct {
	id       uint64
	path     string
	observer Observer
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu          sync.RWMutex
	subscribers []subscriber
	nextID      uint64
	logger      *slog.Logger

	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous delivery through a buffered queue.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// WithLogger sets the logger used to report observer panics.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		logger: slog.New(slog.DiscardHandler),
		done:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for a path and everything below it.
// Subscribing to "Movement" receives changes to "Movement.Fly.Speed".
// Reload events reach every subscriber.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subscribers = append(n.subscribers, subscriber{id: id, path: path, observer: observer})

	return &Subscription{id: id, path: path, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Notify publishes a change. Missing ID and Time are filled in.
// Publishing on a closed notifier is a no-op.
func (n *Notifier) Notify(change Change) {
	if n == nil {
		return
	}

	n.mu.RLock()
	closed := n.closed
	n.mu.RUnlock()
	if closed {
		return
	}

	if change.ID == uuid.Nil {
		change.ID = uuid.New()
	}
	if change.Time.IsZero() {
		change.Time = time.Now()
	}

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliver(change)
}

// NotifySet publishes a set change.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{
		Path:     path,
		Type:     ChangeSet,
		OldValue: oldValue,
		NewValue: newValue,
		Source:   source,
	})
}

// NotifyReload publishes a reload of the whole tree.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close shuts down the notifier, draining queued changes first.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subscribers = slices.DeleteFunc(n.subscribers, func(s subscriber) bool {
		return s.id == id
	})
}

// deliver calls every matching observer outside the lock.
func (n *Notifier) deliver(change Change) {
	n.mu.RLock()
	var matched []subscriber
	for _, s := range n.subscribers {
		if change.Type == ChangeReload || matches(s.path, change.Path) {
			matched = append(matched, s)
		}
	}
	n.mu.RUnlock()

	for _, s := range matched {
		n.safeCall(s, change)
	}
}

func (n *Notifier) safeCall(s subscriber, change Change) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("change observer panicked",
				slog.String("path", change.Path),
				slog.String("subscription", s.path),
				slog.String("change", change.ID.String()),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	s.observer(change)
}

func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliver(change)
		case <-n.done:
			for {
				select {
				case change := <-n.buffer:
					n.deliver(change)
				default:
					return
				}
			}
		}
	}
}

// matches reports whether a subscription path covers a change path.
func matches(sub, path string) bool {
	if sub == "" || sub == path {
		return true
	}
	return len(path) > len(sub) && path[:len(sub)] == sub && path[len(sub)] == '.'
}
