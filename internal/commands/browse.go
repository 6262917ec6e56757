package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/browse"
)

// BrowseCmd creates the 'browse' command with the interactive tag browser
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Explore a grammar interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			_, p, err := s.load(s.schemaPath(cmd, args), true)
			if err != nil {
				return err
			}
			return browse.Run(p.Grammar())
		},
	}
}
