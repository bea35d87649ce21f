package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azmeuk/settings-export/internal/generators/registry"
	"github.com/azmeuk/settings-export/internal/generators/simple"
	"github.com/azmeuk/settings-export/internal/output"
)

// GeneratorsCmd lists the available generators and documents their
// configuration options, rendered by the plain-text generator itself.
func GeneratorsCmd() *cobra.Command {
	var docs bool

	cmd := &cobra.Command{
		Use:   "generators",
		Short: "List available generators",
		Long:  "Show every generator and, with --docs, its configuration options",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !docs {
				output.Info("Available generators:")
				for _, d := range registry.All() {
					output.Step(d.Name)
				}
				return nil
			}

			renderer := simple.New(simple.DefaultConfig())
			for _, d := range registry.All() {
				node, err := d.ConfigSchema()
				if err != nil {
					return fmt.Errorf("describing %s config: %w", d.Name, err)
				}
				text, err := renderer.Generate(node)
				if err != nil {
					return fmt.Errorf("rendering %s config: %w", d.Name, err)
				}
				fmt.Print(text)
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&docs, "docs", false, "Show each generator's configuration options")
	return cmd
}
