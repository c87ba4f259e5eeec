package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/tunable/internal/config/codec"
	"github.com/dshills/tunable/internal/config/configurable"
	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/config/store"
	"github.com/dshills/tunable/internal/config/value"
	"github.com/dshills/tunable/internal/demo"
	"github.com/dshills/tunable/internal/logging"
)

// app carries state shared by every subcommand.
type app struct {
	v *viper.Viper
}

// session is one command's view of the settings: the feature tree loaded
// from the settings file.
type session struct {
	features *demo.Features
	store    *store.Store
	notifier *notify.Notifier
	logger   *slog.Logger
	out      io.Writer
}

func (a *app) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(a.v.GetString(keyLogLevel)),
		Format: logging.ParseFormat(a.v.GetString(keyLogFormat)),
		Output: cmd.ErrOrStderr(),
	})
}

// open builds the feature tree and loads the settings file into it.
// Values the file cannot supply keep their defaults and are reported as
// warnings; a file that does not parse is an error.
func (a *app) open(cmd *cobra.Command) (*session, error) {
	logger := a.logger(cmd)

	path := a.v.GetString(keyFile)
	if path == "" {
		path = store.DefaultPath(AppName)
	}

	var opts []store.Option
	opts = append(opts, store.WithLogger(logger))
	if name := a.v.GetString(keyFormat); name != "" {
		f, err := codec.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, store.WithFormat(f))
	}

	n := notify.New(notify.WithLogger(logger))
	features := demo.New(
		configurable.WithNotifier(n),
		configurable.WithLogger(logger),
	)
	st := store.New(features.Root, path, opts...)

	if err := st.Load(); err != nil {
		var syntax *codec.SyntaxError
		if errors.As(err, &syntax) {
			n.Close()
			return nil, err
		}
		logger.Warn("some settings could not be loaded", slog.Any("error", err))
	}
	logger.Debug("settings loaded", slog.String("path", path))

	return &session{
		features: features,
		store:    st,
		notifier: n,
		logger:   logger,
		out:      cmd.OutOrStdout(),
	}, nil
}

func (s *session) close() {
	s.notifier.Close()
}

func (s *session) root() *configurable.Scope {
	return s.features.Root
}

func (s *session) find(path string) (value.Node, error) {
	return s.root().Find(path)
}

func (s *session) save() error {
	if err := s.store.Save(); err != nil {
		return err
	}
	s.logger.Debug("settings saved", slog.String("path", s.store.Path()))
	return nil
}

// display renders a node for the terminal. Strings print bare, everything
// else as indented JSON.
func display(n value.Node) (string, error) {
	doc := codec.Encode(n, codec.EncodeOptions{})
	if s, ok := doc.(string); ok {
		return s, nil
	}
	data, err := codec.Marshal(codec.JSON, doc)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func (s *session) printNode(n value.Node) error {
	text, err := display(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, text)
	return err
}

// withSession opens a session for the duration of fn.
func (a *app) withSession(cmd *cobra.Command, fn func(*session) error) error {
	s, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}
