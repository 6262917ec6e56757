package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// ShowCmd creates the 'show' command that renders one tag subtree
func ShowCmd() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "show <tag> [path]",
		Short: "Render the allowed structure of a tag",
		Long: `Render a tag with its keys and, recursively, its child tags.

Examples:
  wren show unit
  wren show side data/schema.cfg --details`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			path := s.schemaPath(cmd, args[1:])
			_, p, err := s.load(path, false)
			if err != nil {
				return err
			}

			g := p.Grammar()
			tag, ok := g.Tag(args[0])
			if !ok {
				return fmt.Errorf("tag %q is not defined in %s", args[0], path)
			}

			output.Plain(g.Render(tag, 0))

			if details {
				output.Info(fmt.Sprintf("cardinality: %s, defined: %t, needs expanding: %t",
					tag.Cardinality(), tag.Defined(), tag.NeedsExpanding()))
				for _, key := range tag.ChildKeys() {
					vt, resolved := key.ValueType()
					if !resolved {
						vt = "unknown type " + key.TypeName()
					}
					var flags []string
					if key.IsEnum() {
						flags = append(flags, "enum")
					}
					if key.IsTranslatable() {
						flags = append(flags, "translatable")
					}
					line := fmt.Sprintf("%s (%s): %s", key.Name(), key.Cardinality(), vt)
					if len(flags) > 0 {
						line += " [" + strings.Join(flags, ", ") + "]"
					}
					output.Step(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Also describe cardinality and key types")

	return cmd
}
