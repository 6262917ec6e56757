package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/diff"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// DiffCmd creates the 'diff' command comparing two schemas structurally
func DiffCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show structural differences between two schemas",
		Long: `Parse two schema files or directories and diff their grammars.

Both sides are rendered in bracket form before comparison, so comments,
whitespace and statement order inside reopened tags do not show up.

Examples:
  wren diff old/schema.cfg data/schema.cfg
  wren diff old/ new/ --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			_, oldP, err := s.load(args[0], false)
			if err != nil {
				return err
			}
			_, newP, err := s.load(args[1], false)
			if err != nil {
				return err
			}

			out := diff.Grammars(args[0], args[1], oldP.Grammar(), newP.Grammar())
			if out == "" {
				output.Success("Grammars are identical")
				return nil
			}

			output.Plain(out)
			if exitCode {
				return fmt.Errorf("grammars differ")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when the grammars differ")

	return cmd
}
