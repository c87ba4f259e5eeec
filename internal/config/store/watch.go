package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch reloads the scope whenever the settings file changes on disk, until
// ctx is cancelled. Bursts of events are coalesced into one reload after the
// debounce delay. Writes made by Save do not trigger a reload.
//
// The parent directory is watched rather than the file so that editors which
// replace the file by rename keep being observed. The directory must exist.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer func() { _ = w.Close() }()

	abs, err := filepath.Abs(s.path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", s.path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			timer.Reset(s.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("settings watcher error", "path", s.path, "error", err)

		case <-timer.C:
			s.safeReload()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

// safeReload reloads and logs failures, recovering from panics in decode
// listeners so the watch loop survives.
func (s *Store) safeReload() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("settings reload panicked", "path", s.path, "panic", r)
		}
	}()

	if err := s.reload(); err != nil {
		s.logger.Error("failed to reload settings", "path", s.path, "error", err)
		return
	}
	s.logger.Debug("settings reloaded", "path", s.path)
}
