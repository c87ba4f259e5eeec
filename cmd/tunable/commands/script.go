package commands

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/tunable/internal/config/notify"
	"github.com/dshills/tunable/internal/plugin/api"
	"github.com/dshills/tunable/internal/plugin/lua"
)

func newScriptCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script against the settings",
		Long: `Run a Lua script with the values module and save the result.

The script sees a global 'values' table:
  values.get(path), values.set(path, v), values.choices(path),
  values.restore(path), values.watch(path, fn), values.unwatch(id)

Only the base, string, table and math libraries are available.

Examples:
  tunable script tweaks.lua`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				state, err := lua.NewState(
					lua.WithLogger(s.logger),
					lua.WithExecutionTimeout(timeout),
				)
				if err != nil {
					return err
				}
				defer state.Close()

				reg := api.NewRegistry()
				if err := reg.Register(api.NewValuesModule(s.root(), state)); err != nil {
					return err
				}
				if err := reg.InjectAll(); err != nil {
					return err
				}
				defer reg.CleanupAll()

				if err := state.DoFile(cmd.Context(), args[0]); err != nil {
					return err
				}
				return s.save()
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", lua.DefaultExecutionTimeout, "maximum script run time")
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print changes as the settings file is edited",
		Long: `Watch the settings file and print every value that changes when it is
edited by another program. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(s *session) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				sub := s.notifier.Subscribe(func(c notify.Change) {
					switch c.Type {
					case notify.ChangeReload:
						s.logger.Info("settings reloaded", slog.String("source", c.Source))
					default:
						fmt.Fprintf(s.out, "%s: %v -> %v\n", c.Path, c.OldValue, c.NewValue)
					}
				})
				defer sub.Unsubscribe()

				s.logger.Info("watching settings", slog.String("path", s.store.Path()))
				return s.store.Watch(ctx)
			})
		},
	}
}
