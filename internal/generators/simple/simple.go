// Package simple renders a settings tree as a plain-text report.
package simple

import (
	"strings"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/schema"
	"github.com/azmeuk/settings-export/internal/textutil"
)

// Config carries the plain-text generator options.
type Config struct {
	// Paths are the report files to write; empty means text-only.
	Paths []string `default:"[]" desc:"The paths to the resulting text files" example:"SETTINGS.txt"`
	// Mode filters fields uniformly across all nodes.
	Mode generators.Mode `default:"all" desc:"The mode to export for the configuration variables" choice:"all, only-optional, only-required"`
}

// DefaultConfig returns the builtin configuration.
func DefaultConfig() Config {
	return Config{Mode: generators.ModeAll}
}

// Generator renders plain-text settings reports.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	if cfg.Mode == "" {
		cfg.Mode = generators.ModeAll
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) Name() string    { return "simple" }
func (g *Generator) Paths() []string { return g.cfg.Paths }

// Generate renders each node as an `=`-underlined title followed by one
// `-`-underlined block per field. Child settings are not descended into;
// callers pass every node they want reported.
func (g *Generator) Generate(nodes ...*schema.SettingsInfo) (string, error) {
	sections := make([]string, 0, len(nodes))
	for _, node := range nodes {
		sections = append(sections, g.renderNode(node))
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

func (g *Generator) renderNode(node *schema.SettingsInfo) string {
	segments := []string{textutil.Underline(node.Name, '=')}
	if node.EnvPrefix != "" {
		segments = append(segments, "Environment Prefix: "+node.EnvPrefix)
	}
	if node.Docs != "" {
		segments = append(segments, node.Docs)
	}
	for _, f := range node.Fields {
		if !g.cfg.Mode.Includes(f) {
			continue
		}
		segments = append(segments, renderField(f))
	}
	return strings.Join(segments, "\n\n")
}

func renderField(f *schema.FieldInfo) string {
	heading := "`" + f.FullName() + "`"
	if f.Deprecated {
		heading += " (⚠️ Deprecated)"
	}
	heading += ": " + typeList(f.Types)

	segments := []string{textutil.Underline(heading, '-')}
	if f.Description != "" {
		segments = append(segments, f.Description)
	}

	var tail []string
	if !f.IsRequired {
		tail = append(tail, "Default: "+f.Default)
	}
	if f.HasExamples() {
		tail = append(tail, "Examples: "+strings.Join(f.Examples, ", "))
	}

	if len(tail) > 0 {
		if f.Description != "" {
			segments = append(segments, strings.Join(tail, "\n"))
		} else {
			segments[0] += "\n" + strings.Join(tail, "\n")
		}
	}
	return strings.Join(segments, "\n\n")
}

// typeList renders type tags in the report's bracketed single-quoted form,
// e.g. ['string', 'null'].
func typeList(tags []string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = "'" + tag + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
