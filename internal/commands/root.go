package commands

import (
	"github.com/spf13/cobra"

	"github.com/azmeuk/settings-export/internal/output"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

// RootCmd creates and returns the root command for the settings-export CLI.
// Running it with no subcommand exports straight away, so the common case
// stays a single word.
func RootCmd() *cobra.Command {
	var verbose bool
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "settings-export [settings-ref...]",
		Short: "Export application settings schemas to documentation and config templates",
		Long: `settings-export inspects settings declarations and renders them as
.env examples, Markdown documentation, plain-text reference and commented
TOML configuration templates.

Settings references name a YAML manifest, optionally narrowed to a single
settings entry:
  settings-export settings.yml
  settings-export settings.yml:Database`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts, args)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	addExportFlags(cmd, opts)

	return cmd
}
