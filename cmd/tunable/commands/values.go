package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/tunable/internal/logging"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print a value or scope",
		Long: `Print the current value at a dotted path. Scopes print as a JSON
object of their children.

Examples:
  tunable get Fly.Mode
  tunable get Fail`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				n, err := s.find(args[0])
				if err != nil {
					return err
				}
				return s.printNode(n)
			})
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Parse and assign a value",
		Long: `Parse text with the value's own parser and assign it, then save the
settings file.

Examples:
  tunable set Fly.Mode Jetpack
  tunable set Fail.StrengthVertical 2..6
  tunable set Fly.Bind g:hold
  tunable set HUD.Tags combat,movement,render`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				n, err := s.find(args[0])
				if err != nil {
					return err
				}
				if err := n.SetByString(args[1]); err != nil {
					return err
				}
				if err := s.save(); err != nil {
					return err
				}
				return s.printNode(n)
			})
		},
	}
}

func newCompleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <path> [partial]",
		Short: "List completions for a value",
		Long: `List the completions a value proposes for partial input: choice
names, booleans, key names, or child names for scopes.

Examples:
  tunable complete Fly.Mode J
  tunable complete HUD.Zoom f`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				n, err := s.find(args[0])
				if err != nil {
					return err
				}
				partial := ""
				if len(args) == 2 {
					partial = args[1]
				}
				for _, c := range n.Complete(partial) {
					fmt.Fprintln(s.out, c)
				}
				return nil
			})
		},
	}
}

// chooser is implemented by choice lists and choice slots.
type chooser interface {
	ChoiceNames() []string
	ScriptValue() any
}

var activeMark = color.New(color.FgGreen, color.Bold)

func newChoicesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "choices <path>",
		Short: "List the options of a choice",
		Long: `List the declared options of a choice list or choice slot in
declaration order. The active option is marked with '*'.

Examples:
  tunable choices Fly.Mode
  tunable choices HUD.Theme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				n, err := s.find(args[0])
				if err != nil {
					return err
				}
				c, ok := n.(chooser)
				if !ok {
					return errors.Newf("%s has no choices", args[0])
				}

				active, _ := c.ScriptValue().(string)
				colored := logging.SupportsColor(s.out)
				for _, name := range c.ChoiceNames() {
					mark := " "
					if name == active {
						mark = "*"
						if colored {
							mark = activeMark.Sprint(mark)
						}
					}
					fmt.Fprintf(s.out, "%s %s\n", mark, name)
				}
				return nil
			})
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [path]",
		Short: "Reset values to their defaults",
		Long: `Reset a value, or every value below a scope, to its default and save
the settings file. Without a path the whole tree is reset.

Examples:
  tunable restore Fly.Mode.Jetpack
  tunable restore`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(s *session) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				n, err := s.find(path)
				if err != nil {
					return err
				}
				if err := n.Restore(); err != nil {
					return err
				}
				return s.save()
			})
		},
	}
}
