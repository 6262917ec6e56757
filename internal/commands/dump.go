package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// DumpCmd creates the 'dump' command that exports a grammar as YAML
func DumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [path]",
		Short: "Export the parsed grammar as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			_, p, err := s.load(s.schemaPath(cmd, args), false)
			if err != nil {
				return err
			}

			data, err := grammar.NewSnapshot(p.Grammar()).YAML()
			if err != nil {
				return err
			}
			output.Plain(string(data))
			return nil
		},
	}
}
