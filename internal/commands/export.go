package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azmeuk/settings-export/internal/export"
	"github.com/azmeuk/settings-export/internal/generators/registry"
	"github.com/azmeuk/settings-export/internal/manifest"
	"github.com/azmeuk/settings-export/internal/output"
	"github.com/azmeuk/settings-export/internal/schema"
	"github.com/azmeuk/settings-export/internal/settings"
)

type exportOptions struct {
	projectDir string
	generators []string
}

func addExportFlags(cmd *cobra.Command, opts *exportOptions) {
	cmd.Flags().StringVar(&opts.projectDir, "project-dir", "", "Project directory (defaults to the configured one, then \".\")")
	cmd.Flags().StringSliceVarP(&opts.generators, "generator", "g", nil, "Generators to run (default: all)")
}

// ExportCmd returns the explicit export command. It does the same thing as
// the bare root invocation.
func ExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [settings-ref...]",
		Short: "Render settings schemas and write the configured files",
		Long: `Render every configured generator over the given settings references
and write the resulting files. References given as arguments replace the
default_settings list from settings-export.yml.

A generator that fails is reported and skipped; the rest of the batch still
runs. Files whose content is already up to date are left untouched.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), opts, args)
		},
	}

	addExportFlags(cmd, opts)
	return cmd
}

func runExport(ctx context.Context, opts *exportOptions, args []string) error {
	s, err := settings.Load(opts.projectDir)
	if err != nil {
		return err
	}
	if opts.projectDir != "" {
		s.ProjectDir = opts.projectDir
		if s.RootDir == "" || s.RootDir == "." {
			s.RootDir = opts.projectDir
		}
	}
	if err := s.ResolveDirs(); err != nil {
		return err
	}

	refs := args
	if len(refs) == 0 {
		refs = s.DefaultSettings
	}
	if len(refs) == 0 {
		return fmt.Errorf("nothing to export: pass a settings reference or set default_settings in settings-export.yml")
	}

	nodes, err := manifest.ResolveAll(refs)
	if err != nil {
		return err
	}

	if s.RespectExclude {
		for _, node := range nodes {
			schema.DropExcluded(node)
		}
	}
	if s.RelativeTo.ReplaceAbsPaths {
		for _, node := range nodes {
			schema.Relativize(node, s.ProjectDir, s.RelativeTo.Alias)
		}
	}

	gens, err := registry.Build(s.Generators, opts.generators...)
	if err != nil {
		return err
	}

	exporter := &export.Exporter{Root: s.RootDir, Generators: gens}
	results := exporter.Run(ctx, nodes...)

	updated := export.Updated(results)
	if len(updated) > 0 {
		output.Success(fmt.Sprintf("Exported %d file(s)", len(updated)))
		for _, path := range updated {
			output.Step(path)
		}
	} else if export.FirstError(results) == nil {
		output.Info("Everything is up to date")
	}

	return export.FirstError(results)
}
