// Package commands implements the CLI commands for tunable.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/tunable/internal/logging"
)

// AppName names the config directory and the environment prefix.
const AppName = "tunable"

// version is set at build time via ldflags.
var version = "dev"

// Viper keys.
const (
	keyFile      = "file"
	keyFormat    = "format"
	keyLogLevel  = "log.level"
	keyLogFormat = "log.format"
)

// NewRootCmd builds the command tree. Each call gets its own viper
// instance so that tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   AppName,
		Short: "Inspect and edit feature settings",
		Long: `tunable edits a tree of typed feature settings and persists it to a
settings file.

Values are addressed by dotted path. Choice slots expose their variants
as path segments, so inactive variants can be edited too.`,
		Example: `  # Show a value
  tunable get Fly.Mode

  # Switch fly mode and tune the jetpack
  tunable set Fly.Mode Jetpack
  tunable set Fly.Mode.Jetpack.Power 5

  # Dump the public settings as YAML
  tunable dump --public --output yaml`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetVersionTemplate(AppName + " version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.String(keyFile, "", "settings file (default $XDG_CONFIG_HOME/tunable/settings.json)")
	flags.String(keyFormat, "", "settings file format: json, toml, yaml, cbor (default from extension)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text, json")

	_ = v.BindPFlag(keyFile, flags.Lookup(keyFile))
	_ = v.BindPFlag(keyFormat, flags.Lookup(keyFormat))
	_ = v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	_ = v.BindPFlag(keyLogFormat, flags.Lookup("log-format"))

	app := &app{v: v}
	root.AddCommand(
		newGetCmd(app),
		newSetCmd(app),
		newCompleteCmd(app),
		newChoicesCmd(app),
		newRestoreCmd(app),
		newDumpCmd(app),
		newLoadCmd(app),
		newScriptCmd(app),
		newWatchCmd(app),
	)
	return root
}

// initConfig layers the optional CLI config file and TUNABLE_* environment
// variables under the flags.
func initConfig(v *viper.Viper) error {
	v.SetConfigName("cli")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "reading CLI config")
		}
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

var errorLabel = color.New(color.FgRed, color.Bold)

func printError(w io.Writer, err error) {
	label := "Error:"
	if logging.SupportsColor(w) {
		label = errorLabel.Sprint(label)
	}
	fmt.Fprintf(w, "%s %v\n", label, err)
}
