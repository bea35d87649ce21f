// Package generators defines the contract every renderer implements and the
// filtering shared between them. Concrete renderers live in subpackages and
// are tied together by the registry package.
package generators

import (
	"strings"

	"github.com/azmeuk/settings-export/internal/schema"
)

// Mode filters which fields a render pass includes. It applies uniformly to
// every node in the tree.
type Mode string

const (
	ModeAll          Mode = "all"
	ModeOnlyOptional Mode = "only-optional"
	ModeOnlyRequired Mode = "only-required"
)

// Includes reports whether the mode keeps the given field.
func (m Mode) Includes(f *schema.FieldInfo) bool {
	switch m {
	case ModeOnlyOptional:
		return !f.IsRequired
	case ModeOnlyRequired:
		return f.IsRequired
	default:
		return true
	}
}

// Generator renders a settings tree into one textual artifact. Generate is
// pure: identical trees and configuration produce identical text.
type Generator interface {
	Name() string
	Generate(nodes ...*schema.SettingsInfo) (string, error)

	// Paths lists the output files this generator wants written. Empty
	// means text-only: nothing is written and the rendered text is the
	// whole result.
	Paths() []string
}

// EnvName computes a field's external environment variable name: the node
// prefix followed by the canonical field name uppercased.
func EnvName(node *schema.SettingsInfo, f *schema.FieldInfo) string {
	return node.EnvPrefix + strings.ToUpper(f.FullName())
}
