// Package manifest loads settings trees from YAML files, so schemas can be
// exported without compiling Go code. A manifest declares the same shape
// the extractor produces: named settings with fields and nested children.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/azmeuk/settings-export/internal/rst"
	"github.com/azmeuk/settings-export/internal/schema"
)

const docWrapWidth = 80

// File is the top-level manifest document.
type File struct {
	Settings []Node `yaml:"settings"`
}

// Node declares one settings class.
type Node struct {
	Name      string  `yaml:"name"`
	FieldName string  `yaml:"field_name"`
	Doc       string  `yaml:"doc"`
	EnvPrefix string  `yaml:"env_prefix"`
	Fields    []Field `yaml:"fields"`
	Children  []Node  `yaml:"children"`
}

// Field declares one settings entry. Default and Examples stay raw YAML
// nodes so that an absent default can be told apart from an explicit null.
type Field struct {
	Name       string      `yaml:"name"`
	Type       string      `yaml:"type"`
	Types      []string    `yaml:"types"`
	Default    yaml.Node   `yaml:"default"`
	Required   bool        `yaml:"required"`
	Desc       string      `yaml:"desc"`
	Examples   []yaml.Node `yaml:"examples"`
	Aliases    []string    `yaml:"aliases"`
	Deprecated bool        `yaml:"deprecated"`
	Secret     bool        `yaml:"secret"`
	Exclude    bool        `yaml:"exclude"`
}

// ParseBytes decodes a manifest document into settings trees.
func ParseBytes(data []byte) ([]*schema.SettingsInfo, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid settings manifest: %w", err)
	}
	if len(f.Settings) == 0 {
		return nil, fmt.Errorf("settings manifest declares no settings")
	}

	nodes := make([]*schema.SettingsInfo, 0, len(f.Settings))
	for i := range f.Settings {
		node, err := buildNode(&f.Settings[i], "")
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Parse reads and decodes a manifest file.
func Parse(path string) ([]*schema.SettingsInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read settings manifest %s: %w", path, err)
	}
	nodes, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nodes, nil
}

func buildNode(n *Node, parentPrefix string) (*schema.SettingsInfo, error) {
	if n.Name == "" {
		return nil, fmt.Errorf("settings manifest entry is missing a name")
	}

	info := &schema.SettingsInfo{
		Name:      n.Name,
		FieldName: n.FieldName,
		Docs:      rst.ToText(n.Doc, docWrapWidth),
		EnvPrefix: parentPrefix + n.EnvPrefix,
	}
	if info.FieldName == "" {
		info.FieldName = schema.FieldNameOf(n.Name)
	}

	for i := range n.Fields {
		f, err := buildField(&n.Fields[i], n.Name)
		if err != nil {
			return nil, err
		}
		info.Fields = append(info.Fields, f)
	}

	for i := range n.Children {
		child := &n.Children[i]
		name := child.FieldName
		if name == "" {
			name = schema.FieldNameOf(child.Name)
		}
		// The field-name extension always applies; a child's own env_prefix
		// is appended after it, as with nested structs.
		sub, err := buildNode(child, info.EnvPrefix+strings.ToUpper(name)+"_")
		if err != nil {
			return nil, err
		}
		info.ChildSettings = append(info.ChildSettings, sub)
	}
	return info, nil
}

func buildField(f *Field, owner string) (*schema.FieldInfo, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("settings manifest %s declares a field without a name", owner)
	}

	info := &schema.FieldInfo{
		Name:        f.Name,
		Types:       f.Types,
		Aliases:     f.Aliases,
		Description: rst.Sanitize(f.Desc),
		Deprecated:  f.Deprecated,
		Excluded:    f.Exclude,
	}
	if len(info.Types) == 0 && f.Type != "" {
		info.Types = []string{f.Type}
	}
	if len(info.Types) == 0 {
		info.Types = []string{"any"}
	}

	hasDefault := !f.Default.IsZero()
	switch {
	case f.Required || !hasDefault:
		info.IsRequired = true
	default:
		serialized, err := serializeNode(&f.Default, f.Secret)
		if err != nil {
			return nil, fmt.Errorf("settings manifest %s.%s: invalid default: %w", owner, f.Name, err)
		}
		info.Default = serialized
	}

	for i := range f.Examples {
		serialized, err := serializeNode(&f.Examples[i], f.Secret)
		if err != nil {
			return nil, fmt.Errorf("settings manifest %s.%s: invalid example: %w", owner, f.Name, err)
		}
		info.Examples = append(info.Examples, serialized)
	}
	if len(info.Examples) == 0 && info.Default != "" {
		info.Examples = []string{info.Default}
	}
	return info, nil
}

func serializeNode(n *yaml.Node, secret bool) (string, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return "", err
	}
	if secret {
		if s, ok := v.(string); ok {
			return schema.Serialize(schema.Secret(s)), nil
		}
	}
	return schema.Serialize(v), nil
}
