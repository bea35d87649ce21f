package main

import (
	"os"

	"github.com/azmeuk/settings-export/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ExportCmd())
	rootCmd.AddCommand(commands.GeneratorsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
