package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/config"
	"github.com/simonhull/firebird-suite/wren/pkg/input"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// InitCmd creates the 'init' command that writes a default wren.yml
func InitCmd() *cobra.Command {
	var force, interactive bool
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a wren.yml with default settings",
		Long: `Write a wren.yml in the current directory.

Examples:
  wren init
  wren init --path schemas/
  wren init -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in *input.Prompter
			if interactive {
				in = input.New(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			if _, err := os.Stat(config.FileName); err == nil && !force {
				if in == nil || !in.Confirm(config.FileName+" already exists. Overwrite?", false) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := config.DefaultConfig()
			if schemaPath != "" {
				cfg.Schema.Path = schemaPath
			}
			if in != nil {
				cfg.Schema.Path = in.Prompt("Schema file or directory", cfg.Schema.Path)
				cfg.Schema.Extension = in.Prompt("Schema file extension", cfg.Schema.Extension)
				cfg.Schema.TranslatableType = in.Prompt("Translatable string type", cfg.Schema.TranslatableType)
				cfg.Strict = in.Confirm("Fail checks on schema errors?", cfg.Strict)
			}

			if err := config.Save(config.FileName, cfg); err != nil {
				return err
			}

			output.Success("Created " + config.FileName)
			output.Step("schema: " + cfg.Schema.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing wren.yml")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask for each setting")
	cmd.Flags().StringVar(&schemaPath, "path", "", "Schema file or directory to record in wren.yml")

	return cmd
}
