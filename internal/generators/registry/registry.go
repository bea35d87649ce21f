// Package registry enumerates the built-in generators. The set is fixed at
// compile time; there is no plugin discovery.
package registry

import (
	"fmt"
	"sort"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/generators/dotenv"
	"github.com/azmeuk/settings-export/internal/generators/markdown"
	"github.com/azmeuk/settings-export/internal/generators/simple"
	"github.com/azmeuk/settings-export/internal/generators/toml"
	"github.com/azmeuk/settings-export/internal/schema"
)

// Configs groups one configuration section per generator, keyed in config
// files by the generator name.
type Configs struct {
	Dotenv   dotenv.Config   `alias:"dotenv" desc:"Settings for the .env file generator."`
	Markdown markdown.Config `alias:"markdown" desc:"Settings for the Markdown documentation generator."`
	Simple   simple.Config   `alias:"simple" desc:"Settings for the plain-text generator."`
	TOML     toml.Config     `alias:"toml" desc:"Settings for the TOML configuration file generator."`
}

// DefaultConfigs returns every generator's default configuration, formatter
// builtins included.
func DefaultConfigs() Configs {
	return Configs{
		Dotenv:   dotenv.DefaultConfig(),
		Markdown: markdown.DefaultConfig(),
		Simple:   simple.DefaultConfig(),
		TOML:     toml.DefaultConfig(),
	}
}

// Descriptor ties a generator name to its constructor and configuration
// type.
type Descriptor struct {
	Name   string
	Build  func(Configs) generators.Generator
	config func() any
}

// ConfigSchema describes the generator's own configuration struct, so the
// tool can document itself with its own extractor.
func (d Descriptor) ConfigSchema() (*schema.SettingsInfo, error) {
	node, err := schema.Describe(d.config())
	if err != nil {
		return nil, err
	}
	node.Name = d.Name
	return node, nil
}

var all = []Descriptor{
	{
		Name:   "dotenv",
		Build:  func(c Configs) generators.Generator { return dotenv.New(c.Dotenv) },
		config: func() any { return dotenv.Config{} },
	},
	{
		Name:   "markdown",
		Build:  func(c Configs) generators.Generator { return markdown.New(c.Markdown) },
		config: func() any { return markdown.Config{} },
	},
	{
		Name:   "simple",
		Build:  func(c Configs) generators.Generator { return simple.New(c.Simple) },
		config: func() any { return simple.Config{} },
	},
	{
		Name:   "toml",
		Build:  func(c Configs) generators.Generator { return toml.New(c.TOML) },
		config: func() any { return toml.Config{} },
	},
}

// All returns the descriptors in registration order.
func All() []Descriptor {
	out := make([]Descriptor, len(all))
	copy(out, all)
	return out
}

// Names returns the registered generator names, sorted.
func Names() []string {
	names := make([]string, 0, len(all))
	for _, d := range all {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a descriptor by name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range all {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Build instantiates the named generators, or all of them when names is
// empty.
func Build(cfgs Configs, names ...string) ([]generators.Generator, error) {
	if len(names) == 0 {
		out := make([]generators.Generator, 0, len(all))
		for _, d := range all {
			out = append(out, d.Build(cfgs))
		}
		return out, nil
	}
	out := make([]generators.Generator, 0, len(names))
	for _, name := range names {
		d, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown generator %q (available: %v)", name, Names())
		}
		out = append(out, d.Build(cfgs))
	}
	return out, nil
}
