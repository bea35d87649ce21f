// Package dotenv renders a settings tree as an environment-file template.
package dotenv

import (
	"strings"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/schema"
)

// ExampleFormatter builds the trailing example comment fragment for a field.
// A nil formatter omits the fragment entirely.
type ExampleFormatter func(examples []string) string

// DefaultExampleFormatter joins the serialized examples with commas.
func DefaultExampleFormatter(examples []string) string {
	return strings.Join(examples, ", ")
}

// Config carries the dotenv generator options.
type Config struct {
	// Paths are the .env files to write; empty means text-only.
	Paths []string `default:"[]" desc:"The paths to the resulting .env files" example:".env.example"`
	// Mode filters fields uniformly across all nodes.
	Mode generators.Mode `default:"all" desc:"The mode to export for the configuration variables" choice:"all, only-optional, only-required"`
	// SplitByGroup precedes each node's variables with a '### Title' header.
	SplitByGroup bool `default:"true" desc:"Whether to split environment variables by settings group"`

	ExampleFormatter ExampleFormatter `export:"-"`
}

// DefaultConfig returns the builtin configuration: all fields, grouped,
// examples enabled.
func DefaultConfig() Config {
	return Config{
		Mode:             generators.ModeAll,
		SplitByGroup:     true,
		ExampleFormatter: DefaultExampleFormatter,
	}
}

// Generator renders dotenv templates.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	if cfg.Mode == "" {
		cfg.Mode = generators.ModeAll
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) Name() string    { return "dotenv" }
func (g *Generator) Paths() []string { return g.cfg.Paths }

// Generate renders every node in tree pre-order. Required variables render
// as bare `KEY=` lines, optional ones as commented `# KEY=value` lines. A
// live value differing from the declared default renders as the commented
// default (with a trailing `# default` marker) followed by the active
// uncommented assignment.
func (g *Generator) Generate(nodes ...*schema.SettingsInfo) (string, error) {
	var flat []*schema.SettingsInfo
	for _, node := range nodes {
		flat = appendPreOrder(flat, node)
	}

	if !g.cfg.SplitByGroup {
		var b strings.Builder
		for _, node := range flat {
			g.writeFields(&b, node)
		}
		return b.String(), nil
	}

	groups := make([]string, 0, len(flat))
	for _, node := range flat {
		var b strings.Builder
		b.WriteString("### " + node.Name + "\n\n")
		g.writeFields(&b, node)
		groups = append(groups, b.String())
	}
	return strings.Join(groups, "\n"), nil
}

func (g *Generator) writeFields(b *strings.Builder, node *schema.SettingsInfo) {
	for _, f := range node.Fields {
		if !g.cfg.Mode.Includes(f) {
			continue
		}
		for _, line := range g.fieldLines(node, f) {
			b.WriteString(line + "\n")
		}
	}
}

func (g *Generator) fieldLines(node *schema.SettingsInfo, f *schema.FieldInfo) []string {
	key := generators.EnvName(node, f)

	if f.IsRequired {
		if f.HasValue {
			return []string{key + "=" + f.Value}
		}
		return []string{key + "="}
	}

	line := "# " + key + "=" + f.Default
	if g.cfg.ExampleFormatter != nil && f.HasExamples() {
		line += "  # " + g.cfg.ExampleFormatter(f.Examples)
	}
	if !f.HasValue {
		return []string{line}
	}
	return []string{line + "  # default", key + "=" + f.Value}
}

func appendPreOrder(into []*schema.SettingsInfo, node *schema.SettingsInfo) []*schema.SettingsInfo {
	into = append(into, node)
	for _, child := range node.ChildSettings {
		into = appendPreOrder(into, child)
	}
	return into
}
