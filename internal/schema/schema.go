package schema

// FieldInfo describes one leaf configuration variable.
//
// Exactly one of IsRequired and a non-empty Default holds: serialized
// defaults are never the empty string (a defaulted string renders as `""`),
// so Default == "" means the field has no default.
type FieldInfo struct {
	Name        string   // declared identifier (snake_case)
	Types       []string // semantic type tags in declaration order
	Aliases     []string // alternate external names; first one wins
	IsRequired  bool
	Default     string // canonical serialized default, "" when required
	Description string
	Examples    []string // serialized example values
	Deprecated  bool

	// Excluded marks a field declared as excluded from export. Callers
	// decide whether to honor the mark; see DropExcluded.
	Excluded bool

	// Value carries the serialized live value when the tree was built from
	// an instance and the value differs from the declared default.
	Value    string
	HasValue bool

	// rawDefault keeps the unmasked serialized default for env loading.
	// Default itself carries the masked form for secret fields.
	rawDefault string
}

// FullName returns the canonical external name: the first alias when any
// alias exists, the declared name otherwise.
func (f *FieldInfo) FullName() string {
	if len(f.Aliases) > 0 {
		return f.Aliases[0]
	}
	return f.Name
}

// HasExamples reports whether the examples add information beyond the
// default: false when the example list is exactly [Default].
func (f *FieldInfo) HasExamples() bool {
	if len(f.Examples) == 0 {
		return false
	}
	if len(f.Examples) == 1 && f.Examples[0] == f.Default {
		return false
	}
	return true
}

// SettingsInfo is one settings node, possibly nested inside another.
type SettingsInfo struct {
	Name          string // display title
	FieldName     string // attribute name in the parent, "" for the root
	Docs          string
	EnvPrefix     string
	Fields        []*FieldInfo
	ChildSettings []*SettingsInfo
}

// DropExcluded removes every field marked Excluded from the tree.
func DropExcluded(node *SettingsInfo) {
	kept := node.Fields[:0]
	for _, f := range node.Fields {
		if !f.Excluded {
			kept = append(kept, f)
		}
	}
	node.Fields = kept
	for _, child := range node.ChildSettings {
		DropExcluded(child)
	}
}

// Titled lets a settings struct override its display title. Without it the
// struct type name is used.
type Titled interface {
	SettingsTitle() string
}

// Documented supplies the node documentation text.
//
// A doc inherited through embedding is filtered out: when the text equals,
// byte for byte, the doc of any embedded type, the node's Docs stays empty.
type Documented interface {
	SettingsDoc() string
}

// Prefixed supplies the node's own environment-variable prefix, prepended
// with the prefix accumulated from its ancestors.
type Prefixed interface {
	SettingsEnvPrefix() string
}

// Delimited overrides the delimiter inserted between a parent's prefix and
// a nested field name when descending into child settings. Default "_".
type Delimited interface {
	SettingsEnvDelimiter() string
}
