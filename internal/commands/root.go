package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// RootCmd creates and returns the root command for the wren CLI
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "wren",
		Short: "Schema grammar parser and inspector",
		Long: `Wren reads bracket-delimited schema description files and builds the
grammar model that form and UI generators query: which tags may appear
where, which keys they allow, and how those keys are typed.

Use it to:
• Check schema files for malformed statements and undefined types
• Inspect the allowed structure of a single tag
• Export or diff whole grammars`,
		Version:       wren.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (default: ./wren.yml)")
	cmd.PersistentFlags().String("schema", "", "Schema file or directory (overrides schema.path)")

	return cmd
}

// NewApp returns the root command with every subcommand registered
func NewApp() *cobra.Command {
	root := RootCmd()
	root.AddCommand(CheckCmd())
	root.AddCommand(ShowCmd())
	root.AddCommand(DumpCmd())
	root.AddCommand(DiffCmd())
	root.AddCommand(BrowseCmd())
	root.AddCommand(InitCmd())
	return root
}
