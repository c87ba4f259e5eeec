package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		ct   ChangeType
		want string
	}{
		{ChangeSet, "set"},
		{ChangeRestore, "restore"},
		{ChangeReload, "reload"},
		{ChangeType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestNotifier_Subscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var got Change
	sub := n.Subscribe(func(c Change) { got = c })

	n.NotifySet("Movement.Speed", 1, 2, "set")

	if got.Path != "Movement.Speed" || got.OldValue != 1 || got.NewValue != 2 || got.Source != "set" {
		t.Errorf("received %+v", got)
	}
	if got.ID == uuid.Nil {
		t.Error("change ID should be assigned")
	}
	if got.Time.IsZero() {
		t.Error("change time should be assigned")
	}

	sub.Unsubscribe()
	got = Change{}
	n.NotifySet("Movement.Speed", 2, 3, "set")
	if got.Path != "" {
		t.Error("unsubscribed observer should not be called")
	}
}

func TestNotifier_SubscribePath(t *testing.T) {
	n := New()
	defer n.Close()

	var paths []string
	n.SubscribePath("Movement", func(c Change) { paths = append(paths, c.Path) })

	n.NotifySet("Movement", nil, 1, "")
	n.NotifySet("Movement.Fly.Speed", nil, 1, "")
	n.NotifySet("MovementSpeed", nil, 1, "")
	n.NotifySet("Render", nil, 1, "")
	n.NotifyReload("store")

	want := []string{"Movement", "Movement.Fly.Speed", ""}
	if strings.Join(paths, "|") != strings.Join(want, "|") {
		t.Errorf("paths = %q, want %q", paths, want)
	}
}

func TestNotifier_DeliveryOrder(t *testing.T) {
	n := New()
	defer n.Close()

	var order []int
	for i := range 5 {
		n.Subscribe(func(Change) { order = append(order, i) })
	}

	n.NotifySet("a", nil, nil, "")

	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want subscription order", order)
		}
	}
}

func TestNotifier_ObserverPanicIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	n := New(WithLogger(logger))
	defer n.Close()

	var after atomic.Bool
	n.Subscribe(func(Change) { panic("boom") })
	n.Subscribe(func(Change) { after.Store(true) })

	n.NotifySet("a", nil, 1, "")

	if !after.Load() {
		t.Error("observer after a panicking one should still be called")
	}
	if !strings.Contains(buf.String(), "change observer panicked") {
		t.Errorf("panic should be logged, got %q", buf.String())
	}
}

func TestNotifier_KeepsGivenID(t *testing.T) {
	n := New()
	defer n.Close()

	id := uuid.New()
	var got uuid.UUID
	n.Subscribe(func(c Change) { got = c.ID })
	n.Notify(Change{ID: id, Path: "a"})

	if got != id {
		t.Errorf("ID = %v, want %v", got, id)
	}
}

func TestNotifier_Async(t *testing.T) {
	n := New(WithAsync(16))

	var count atomic.Int32
	n.Subscribe(func(Change) { count.Add(1) })

	for range 10 {
		n.NotifySet("a", nil, 1, "")
	}

	// Close drains the queue.
	n.Close()

	if got := count.Load(); got != 10 {
		t.Errorf("delivered %d, want 10", got)
	}
}

func TestNotifier_Closed(t *testing.T) {
	n := New()

	var called atomic.Bool
	n.Subscribe(func(Change) { called.Store(true) })

	n.Close()
	n.Close()
	n.NotifySet("a", nil, 1, "")

	if called.Load() {
		t.Error("closed notifier should not deliver")
	}
}

func TestNotifier_Nil(t *testing.T) {
	var n *Notifier
	n.NotifySet("a", nil, 1, "")
}

func TestNotifier_ConcurrentAccess(t *testing.T) {
	n := New()
	defer n.Close()

	var count atomic.Int64
	var wg sync.WaitGroup

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := n.Subscribe(func(Change) { count.Add(1) })
			for range 100 {
				n.NotifySet("a", nil, 1, "")
			}
			sub.Unsubscribe()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("concurrent notify timed out")
	}

	if n.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after unsubscribe", n.Len())
	}
	if count.Load() < 1000 {
		t.Errorf("count = %d, want at least 1000", count.Load())
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		sub, path string
		want      bool
	}{
		{"", "a.b", true},
		{"a", "a", true},
		{"a", "a.b", true},
		{"a.b", "a", false},
		{"a", "ab", false},
	}

	for _, tt := range tests {
		if got := matches(tt.sub, tt.path); got != tt.want {
			t.Errorf("matches(%q, %q) = %v, want %v", tt.sub, tt.path, got, tt.want)
		}
	}
}
