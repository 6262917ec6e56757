package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
	"github.com/simonhull/firebird-suite/wren/pkg/loader"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// CheckCmd creates the 'check' command that reports schema problems
func CheckCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Parse a schema and report malformed or unresolved statements",
		Long: `Parse a schema file or directory and list every problem found.

Parsing always completes: malformed lines are skipped and undefined types
leave keys unresolved. By default problems are reported but the command
succeeds. With --strict (or strict: true in wren.yml) any error makes the
command fail, which is useful in CI.

Examples:
  wren check
  wren check data/schema.cfg
  wren check data/schema/ --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			path := s.schemaPath(cmd, args)
			src, p, err := s.load(path, true)
			if err != nil {
				return err
			}

			diags := p.Diagnostics()
			report(src, diags)

			g := p.Grammar()
			errCount := countSeverity(diags, grammar.SeverityError)
			warnCount := len(diags) - errCount
			summary := fmt.Sprintf("Parsed %d tags and %d primitives from %s", g.Len(), len(g.Primitives()), path)

			switch {
			case errCount > 0:
				output.Error(fmt.Sprintf("%s with %d error(s) and %d warning(s)", summary, errCount, warnCount))
			case warnCount > 0:
				output.Warn(fmt.Sprintf("%s with %d warning(s)", summary, warnCount))
			default:
				output.Success(summary)
			}

			if (strict || s.cfg.Strict) && errCount > 0 {
				return fmt.Errorf("schema check failed: %d error(s)", errCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any error-level problem is found")

	return cmd
}

// report prints each diagnostic with its file position
func report(src *loader.Source, diags grammar.Diagnostics) {
	for _, d := range diags {
		pos := "end of schema"
		if d.Line > 0 {
			pos = src.Position(d.Line)
		}
		msg := fmt.Sprintf("%s: %s [%s]", pos, d.Message, d.Kind)
		if d.Severity == grammar.SeverityError {
			output.Error(msg)
		} else {
			output.Warn(msg)
		}
		if d.Text != "" {
			output.Step(d.Text)
		}
	}
}

func countSeverity(diags grammar.Diagnostics, sev grammar.Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}
