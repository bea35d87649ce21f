// Package toml renders a settings tree as a commented TOML configuration
// template, mirroring the tree with native sections up to a configurable
// depth and dotted keys beyond it.
package toml

import (
	"fmt"
	"sort"
	"strings"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/schema"
	"github.com/azmeuk/settings-export/internal/textutil"
)

const wrapWidth = 80

// Formatter hooks build the comment lines preceding each entry. A nil hook
// omits its line(s) entirely.
type (
	HeaderFormatter      func(name, docs string) string
	TypeFormatter        func(key string, types []string, required, deprecated bool) string
	DescriptionFormatter func(description string) string
	DefaultFormatter     func(serialized string) string
	ExamplesFormatter    func(examples []string) string
)

// DefaultHeaderFormatter renders the section name on its own line followed
// by the docs wrapped at 80 columns.
func DefaultHeaderFormatter(name, docs string) string {
	var lines []string
	if name != "" {
		lines = append(lines, name)
	}
	if docs != "" {
		lines = append(lines, textutil.Wrap(docs, wrapWidth))
	}
	return strings.Join(lines, "\n")
}

// DefaultTypeFormatter renders "key: type | type (REQUIRED) (DEPRECATED)".
func DefaultTypeFormatter(key string, types []string, required, deprecated bool) string {
	s := key + ": " + strings.Join(types, " | ")
	if required {
		s += " (REQUIRED)"
	}
	if deprecated {
		s += " (DEPRECATED)"
	}
	return s
}

func DefaultDescriptionFormatter(description string) string {
	return textutil.Wrap(description, wrapWidth)
}

func DefaultDefaultFormatter(serialized string) string {
	return "Default: " + serialized
}

func DefaultExamplesFormatter(examples []string) string {
	return "Examples: " + strings.Join(examples, ", ")
}

// Config carries the TOML generator options.
type Config struct {
	// Paths are the TOML files to write; empty means text-only.
	Paths []string `default:"[]" desc:"The paths to the resulting TOML files" example:"config.example.toml"`
	// Mode filters fields uniformly across all nodes.
	Mode generators.Mode `default:"all" desc:"The mode to export for the configuration variables" choice:"all, only-optional, only-required"`
	// CommentDefaults comments out fields carrying their default value.
	// Required fields and null defaults are always commented.
	CommentDefaults bool `default:"true" desc:"Whether to comment out fields that carry their default value"`
	// SectionDepth bounds how deep nested settings become native sections;
	// deeper children flatten into dotted keys. Nil means unlimited.
	SectionDepth *int `default:"null" desc:"Maximum nesting depth rendered as TOML sections; deeper levels use dotted keys"`
	// Prefix wraps the whole output in one outer section per dot-separated
	// segment. It does not count towards SectionDepth.
	Prefix string `default:"''" desc:"Outer section prefix for all keys and sections" example:"tool.myapp"`

	Header      HeaderFormatter      `export:"-"`
	Type        TypeFormatter        `export:"-"`
	Description DescriptionFormatter `export:"-"`
	Default     DefaultFormatter     `export:"-"`
	Examples    ExamplesFormatter    `export:"-"`
}

// DefaultConfig returns the builtin configuration with every formatter
// enabled. Disable a formatter by setting it to nil afterwards.
func DefaultConfig() Config {
	return Config{
		Mode:            generators.ModeAll,
		CommentDefaults: true,
		Header:          DefaultHeaderFormatter,
		Type:            DefaultTypeFormatter,
		Description:     DefaultDescriptionFormatter,
		Default:         DefaultDefaultFormatter,
		Examples:        DefaultExamplesFormatter,
	}
}

// Generator renders commented TOML configuration templates.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	if cfg.Mode == "" {
		cfg.Mode = generators.ModeAll
	}
	return &Generator{cfg: cfg}
}

func (g *Generator) Name() string    { return "toml" }
func (g *Generator) Paths() []string { return g.cfg.Paths }

// Generate renders each node as its own TOML document text, concatenated.
func (g *Generator) Generate(nodes ...*schema.SettingsInfo) (string, error) {
	var out []string
	for _, node := range nodes {
		out = append(out, g.renderNode(node))
	}
	return strings.Join(out, "\n"), nil
}

func (g *Generator) renderNode(node *schema.SettingsInfo) string {
	w := &writer{}
	g.writeHeader(w, node.Name, node.Docs)

	sectionPath := ""
	if g.cfg.Prefix != "" {
		w.line("[" + g.cfg.Prefix + "]")
		sectionPath = g.cfg.Prefix
	}
	g.writeContents(w, node, 0, sectionPath)

	return w.text()
}

// writeContents emits a node's own fields, then each child either as a
// native section or flattened into dotted keys once SectionDepth is
// exceeded.
func (g *Generator) writeContents(w *writer, node *schema.SettingsInfo, depth int, sectionPath string) {
	for _, f := range node.Fields {
		if !g.cfg.Mode.Includes(f) {
			continue
		}
		g.writeField(w, f, "")
	}

	for _, child := range node.ChildSettings {
		childDepth := depth + 1
		childPath := child.FieldName
		if sectionPath != "" {
			childPath = sectionPath + "." + child.FieldName
		}

		if g.cfg.SectionDepth == nil || childDepth <= *g.cfg.SectionDepth {
			g.writeHeader(w, child.Name, child.Docs)
			w.line("[" + childPath + "]")
			g.writeContents(w, child, childDepth, childPath)
		} else {
			g.writeDotted(w, child, child.FieldName+".")
		}
	}
}

// writeDotted flattens a child into the current container using dotted
// keys. The dotted prefix grows by one segment per level regardless of
// SectionDepth.
func (g *Generator) writeDotted(w *writer, node *schema.SettingsInfo, prefix string) {
	g.writeHeader(w, node.Name, node.Docs)
	for _, f := range node.Fields {
		if !g.cfg.Mode.Includes(f) {
			continue
		}
		g.writeField(w, f, prefix)
	}
	for _, child := range node.ChildSettings {
		g.writeDotted(w, child, prefix+child.FieldName+".")
	}
}

func (g *Generator) writeHeader(w *writer, name, docs string) {
	if g.cfg.Header == nil {
		return
	}
	formatted := g.cfg.Header(name, docs)
	if formatted == "" {
		return
	}
	for _, line := range strings.Split(formatted, "\n") {
		w.comment(line)
	}
	w.blank()
}

func (g *Generator) writeField(w *writer, f *schema.FieldInfo, prefix string) {
	key := tomlKey(f)
	fullKey := prefix + key

	// Comment block. The type line shows the dotted key when flattened and
	// the declared name otherwise; the entry itself always uses the key.
	if g.cfg.Type != nil {
		display := f.Name
		if prefix != "" {
			display = fullKey
		}
		w.comment(g.cfg.Type(display, f.Types, f.IsRequired, f.Deprecated))
	}
	if g.cfg.Description != nil && f.Description != "" {
		for _, line := range strings.Split(g.cfg.Description(f.Description), "\n") {
			w.comment(line)
		}
	}
	if g.cfg.Default != nil && f.Default != "" && !f.IsRequired {
		w.comment(g.cfg.Default(f.Default))
	}
	if g.cfg.Examples != nil && f.HasExamples() {
		w.comment(g.cfg.Examples(f.Examples))
	}

	switch {
	case g.isActive(f):
		w.line(fullKey + " = " + tomlValue(g.activeValue(f)))
	case f.IsRequired || g.nullValued(f):
		w.comment(fullKey + " =")
	default:
		w.comment(fullKey + " = " + tomlValue(f.Default))
	}
	w.blank()
}

// isActive reports whether the field renders as a real uncommented entry:
// either an instance value, or a concrete default with CommentDefaults off.
func (g *Generator) isActive(f *schema.FieldInfo) bool {
	if f.HasValue {
		return f.Value != "null"
	}
	if f.IsRequired || f.Default == "null" {
		return false
	}
	return !g.cfg.CommentDefaults
}

func (g *Generator) activeValue(f *schema.FieldInfo) string {
	if f.HasValue {
		return f.Value
	}
	return f.Default
}

func (g *Generator) nullValued(f *schema.FieldInfo) bool {
	if f.HasValue {
		return f.Value == "null"
	}
	return f.Default == "null"
}

func tomlKey(f *schema.FieldInfo) string {
	return f.FullName()
}

// tomlValue renders a serialized value in TOML syntax: strings keep their
// canonical quoted form, arrays gain spacing, objects become inline tables.
func tomlValue(serialized string) string {
	v, err := schema.ParseSerialized(serialized)
	if err != nil {
		return serialized
	}
	return renderValue(v)
}

func renderValue(v any) string {
	switch v := v.(type) {
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = renderValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + " = " + renderValue(v[k])
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case string:
		return schema.Serialize(v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprint(v)
	}
}

// writer accumulates output lines, keeping blank lines single and comment
// tails trimmed.
type writer struct {
	lines []string
}

func (w *writer) line(s string) {
	w.lines = append(w.lines, s)
}

func (w *writer) comment(s string) {
	w.lines = append(w.lines, strings.TrimRight("# "+s, " "))
}

// blank appends a separator line unless the previous line is already blank.
func (w *writer) blank() {
	if len(w.lines) == 0 || w.lines[len(w.lines)-1] == "" {
		return
	}
	w.lines = append(w.lines, "")
}

// text joins the lines, dropping trailing blanks, with a final newline.
func (w *writer) text() string {
	lines := w.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
