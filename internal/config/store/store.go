// Package store persists a configurable scope to a settings file.
//
// A Store loads the file into the scope, saves the scope back atomically and
// can watch the file for external edits, reloading the scope when it changes:
//
//	s := store.New(root, store.DefaultPath("tunable"))
//	if err := s.Load(); err != nil {
//	    return err
//	}
//	go s.Watch(ctx)
package store

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/dshills/tunable/internal/config/codec"
	"github.com/dshills/tunable/internal/config/configurable"
	"github.com/dshills/tunable/internal/logging"
)

// DefaultFileName is the settings file name inside the application's config directory.
const DefaultFileName = "settings.json"

// DefaultDebounce is how long Watch waits for events to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Source is the change source reported for reloads.
const Source = "store"

// Store reads and writes a scope's document.
type Store struct {
	root     *configurable.Scope
	path     string
	format   codec.Format
	opts     codec.EncodeOptions
	logger   *slog.Logger
	debounce time.Duration
	perm     os.FileMode

	// mu serializes file access; last holds the bytes most recently read or
	// written so that Watch can ignore events caused by Save.
	mu   sync.Mutex
	last []byte
}

// Option configures a Store.
type Option func(*Store)

// WithFormat overrides the format picked from the file extension.
func WithFormat(f codec.Format) Option {
	return func(s *Store) {
		s.format = f
	}
}

// WithLogger sets the logger used for reload failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithDebounce sets the settle delay for Watch.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithEncodeOptions filters what Save writes.
func WithEncodeOptions(opts codec.EncodeOptions) Option {
	return func(s *Store) {
		s.opts = opts
	}
}

// New creates a Store for root backed by the file at path.
func New(root *configurable.Scope, path string, opts ...Option) *Store {
	s := &Store{
		root:     root,
		path:     path,
		format:   codec.FormatFromPath(path),
		debounce: DefaultDebounce,
		perm:     0o644,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = root.Logger()
	}
	s.logger = logging.OrDiscard(s.logger)
	return s
}

// DefaultPath returns the settings file path for app under the XDG config
// directory. The directory is created if needed; on failure the path is
// still returned and the error surfaces on Save.
func DefaultPath(app string) string {
	path, err := xdg.ConfigFile(filepath.Join(app, DefaultFileName))
	if err != nil {
		return filepath.Join(xdg.ConfigHome, app, DefaultFileName)
	}
	return path
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Format returns the serialization format.
func (s *Store) Format() codec.Format { return s.format }

// Load reads the file and applies it to the scope. A missing file leaves the
// scope untouched and is not an error. Decode failures for individual values
// are joined into the returned error; the remaining values are still applied.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", s.path)
	}
	return s.apply(data)
}

// apply decodes data into the scope. Callers hold s.mu.
func (s *Store) apply(data []byte) error {
	s.last = data
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	doc, err := codec.Unmarshal(s.format, data)
	if err != nil {
		return errors.Wrapf(err, "load %s", s.path)
	}

	decodeErr := codec.Decode(s.root, doc)
	s.root.Notifier().NotifyReload(Source)
	if decodeErr != nil {
		return errors.Wrapf(decodeErr, "load %s", s.path)
	}
	return nil
}

// Save writes the scope's document to the file. The file is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save() error {
	data, err := codec.Marshal(s.format, codec.Encode(s.root, s.opts))
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, data, s.perm); err != nil {
		return errors.Wrapf(err, "save %s", s.path)
	}
	s.last = data
	return nil
}

// reload re-reads the file after a watch event. Unchanged content is skipped.
func (s *Store) reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "read %s", s.path)
	}
	if bytes.Equal(data, s.last) {
		return nil
	}
	return s.apply(data)
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create directory")
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmp := f.Name()

	ok := false
	defer func() {
		if !ok {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write temp file")
	}
	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "sync temp file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "rename temp file")
	}

	ok = true
	return nil
}
