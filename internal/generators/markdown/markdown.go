// Package markdown renders a settings tree as Markdown sections with
// aligned field tables.
package markdown

import (
	"strings"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/schema"
	"github.com/azmeuk/settings-export/internal/textutil"
)

// Column identifies one table column. Columns render in the order they are
// configured.
type Column string

const (
	ColumnName        Column = "Name"
	ColumnType        Column = "Type"
	ColumnDefault     Column = "Default"
	ColumnDescription Column = "Description"
	ColumnExample     Column = "Example"
)

// TableOnlyMode collapses the output into a single flat table.
type TableOnlyMode string

const (
	// TableOnlyOff renders one section per node with headings and docs.
	TableOnlyOff TableOnlyMode = "false"
	// TableOnlyOn drops every heading and flattens all fields, including
	// descendants, into one table.
	TableOnlyOn TableOnlyMode = "true"
	// TableOnlyWithHeader keeps only the very first top-level heading.
	TableOnlyWithHeader TableOnlyMode = "with-header"
)

func (m TableOnlyMode) enabled() bool {
	return m == TableOnlyOn || m == TableOnlyWithHeader
}

// DefaultFilePrefix is the static block prepended before generated content.
const DefaultFilePrefix = "# Configuration\n\n" +
	"Below is a list of all available configuration options, with their types,\n" +
	"defaults and descriptions.\n\n"

// Config carries the markdown generator options.
type Config struct {
	// Paths are the markdown files to write; empty means text-only.
	Paths []string `default:"[]" desc:"The paths to the resulting Markdown files" example:"docs/configuration.md"`
	// Mode filters fields uniformly across all nodes.
	Mode generators.Mode `default:"all" desc:"The mode to export for the configuration variables" choice:"all, only-optional, only-required"`
	// FilePrefix is prepended verbatim before any generated content.
	FilePrefix string `default:"''" desc:"The static text block prepended to the file"`
	// Columns selects and orders the table columns.
	Columns []Column `default:"[Name, Type, Default, Description, Example]" desc:"The table columns to render, in order"`
	// TableOnly flattens all fields from every node into a single table.
	TableOnly TableOnlyMode `default:"false" desc:"Whether to render a single flat table without headings" choice:"false, true, with-header"`
	// ToUpperCase renders variable names uppercased.
	ToUpperCase bool `default:"true" desc:"Whether to convert variable names to upper case"`

	hasFilePrefix bool
}

// DefaultConfig returns the builtin configuration: every column, grouped
// sections, the default file prefix.
func DefaultConfig() Config {
	cfg := Config{
		Mode:        generators.ModeAll,
		Columns:     AllColumns(),
		TableOnly:   TableOnlyOff,
		ToUpperCase: true,
	}
	cfg.SetFilePrefix(DefaultFilePrefix)
	return cfg
}

// AllColumns returns the full column set in its default order.
func AllColumns() []Column {
	return []Column{ColumnName, ColumnType, ColumnDefault, ColumnDescription, ColumnExample}
}

// SetFilePrefix sets the static prefix block. An explicitly empty prefix is
// honored; only an unset prefix falls back to the default.
func (c *Config) SetFilePrefix(prefix string) {
	c.FilePrefix = prefix
	c.hasFilePrefix = true
}

// Generator renders Markdown documentation.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	if cfg.Mode == "" {
		cfg.Mode = generators.ModeAll
	}
	if len(cfg.Columns) == 0 {
		cfg.Columns = AllColumns()
	}
	if cfg.TableOnly == "" {
		cfg.TableOnly = TableOnlyOff
	}
	if !cfg.hasFilePrefix && cfg.FilePrefix == "" {
		cfg.SetFilePrefix(DefaultFilePrefix)
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) Name() string    { return "markdown" }
func (g *Generator) Paths() []string { return g.cfg.Paths }

// Generate renders each node as a heading (## plus one # per nesting
// level), its docs, an environment-prefix line and a padded field table.
func (g *Generator) Generate(nodes ...*schema.SettingsInfo) (string, error) {
	var sections []string

	if g.cfg.TableOnly.enabled() {
		// Flat mode has no per-node sections, so the kept heading is a
		// top-level one.
		if g.cfg.TableOnly == TableOnlyWithHeader && len(nodes) > 0 {
			sections = append(sections, "# "+nodes[0].Name)
		}
		var rows [][]string
		for _, node := range nodes {
			rows = g.appendRows(rows, node)
		}
		if len(rows) > 0 {
			sections = append(sections, g.table(rows))
		}
	} else {
		for _, node := range nodes {
			sections = g.appendSections(sections, node, 1)
		}
	}

	if len(sections) == 0 {
		return g.cfg.FilePrefix, nil
	}
	return g.cfg.FilePrefix + strings.Join(sections, "\n\n") + "\n", nil
}

func (g *Generator) appendSections(sections []string, node *schema.SettingsInfo, depth int) []string {
	var parts []string
	parts = append(parts, strings.Repeat("#", depth+1)+" "+node.Name)
	if node.Docs != "" {
		parts = append(parts, node.Docs)
	}
	if node.EnvPrefix != "" {
		parts = append(parts, "**Environment Prefix**: `"+node.EnvPrefix+"`")
	}
	rows := g.appendNodeRows(nil, node)
	if len(rows) > 0 {
		parts = append(parts, g.table(rows))
	}
	sections = append(sections, strings.Join(parts, "\n\n"))

	for _, child := range node.ChildSettings {
		sections = g.appendSections(sections, child, depth+1)
	}
	return sections
}

// appendRows collects rows for a node and all its descendants (flat mode).
func (g *Generator) appendRows(rows [][]string, node *schema.SettingsInfo) [][]string {
	rows = g.appendNodeRows(rows, node)
	for _, child := range node.ChildSettings {
		rows = g.appendRows(rows, child)
	}
	return rows
}

func (g *Generator) appendNodeRows(rows [][]string, node *schema.SettingsInfo) [][]string {
	for _, f := range node.Fields {
		if !g.cfg.Mode.Includes(f) {
			continue
		}
		row := make([]string, len(g.cfg.Columns))
		for i, col := range g.cfg.Columns {
			row[i] = g.cell(col, node, f)
		}
		rows = append(rows, row)
	}
	return rows
}

func (g *Generator) table(rows [][]string) string {
	headers := make([]string, len(g.cfg.Columns))
	for i, col := range g.cfg.Columns {
		headers[i] = string(col)
	}
	return textutil.MarkdownTable(headers, rows)
}

func (g *Generator) cell(col Column, node *schema.SettingsInfo, f *schema.FieldInfo) string {
	switch col {
	case ColumnName:
		name := node.EnvPrefix + f.FullName()
		if g.cfg.ToUpperCase {
			name = strings.ToUpper(name)
		}
		cell := "`" + name + "`"
		if f.Deprecated {
			cell += " (⚠️ Deprecated)"
		}
		return cell
	case ColumnType:
		quoted := make([]string, len(f.Types))
		for i, tag := range f.Types {
			quoted[i] = "`" + tag + "`"
		}
		return strings.Join(quoted, " | ")
	case ColumnDefault:
		if f.IsRequired {
			return "*required*"
		}
		return "`" + f.Default + "`"
	case ColumnDescription:
		return f.Description
	case ColumnExample:
		quoted := make([]string, len(f.Examples))
		for i, example := range f.Examples {
			quoted[i] = "`" + example + "`"
		}
		return strings.Join(quoted, ", ")
	default:
		return ""
	}
}
