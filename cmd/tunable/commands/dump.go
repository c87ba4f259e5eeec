package commands

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dshills/tunable/internal/config/codec"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		public bool
		api    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "dump [path]",
		Short: "Print the settings document",
		Long: `Print the document of the whole tree, or of the node at path.

--public leaves out values that are never shared. --api leaves out
entries that are not options.

Examples:
  tunable dump
  tunable dump Fly --output toml
  tunable dump --public --output yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := codec.ParseFormat(output)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(s *session) error {
				path := ""
				if len(args) == 1 {
					path = args[0]
				}
				n, err := s.find(path)
				if err != nil {
					return err
				}

				doc := codec.Encode(n, codec.EncodeOptions{Public: public, API: api})
				data, err := codec.Marshal(format, doc)
				if err != nil {
					return err
				}
				_, err = s.out.Write(data)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "omit values excluded from public documents")
	cmd.Flags().BoolVar(&api, "api", false, "omit entries that are not options")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json, toml, yaml, cbor")
	return cmd
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Apply a settings document from a file",
		Long: `Apply a settings document to the tree and save the result. The format
follows the file extension. Entries that fail to apply are reported; the
rest are kept.

Examples:
  tunable load shared.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "read %s", args[0])
			}
			doc, err := codec.Unmarshal(codec.FormatFromPath(args[0]), data)
			if err != nil {
				return err
			}

			return a.withSession(cmd, func(s *session) error {
				decodeErr := codec.Decode(s.root(), doc)
				if err := s.save(); err != nil {
					return err
				}
				return decodeErr
			})
		},
	}
}
