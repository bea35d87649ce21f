package schema

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/azmeuk/settings-export/internal/rst"
)

const docWrapWidth = 80

// Option configures an extraction call.
type Option func(*describeConfig)

type describeConfig struct {
	prefix          string
	includeExcluded bool
}

// WithEnvPrefix prepends an extra environment prefix to the root node.
func WithEnvPrefix(prefix string) Option {
	return func(c *describeConfig) { c.prefix = prefix }
}

// WithExcluded includes fields tagged `export:"-"` instead of skipping
// them.
func WithExcluded() Option {
	return func(c *describeConfig) { c.includeExcluded = true }
}

// Describe builds the settings tree for a struct type. The argument may be
// a struct value, a pointer to one, or a reflect.Type; only the type is
// inspected, so defaults come from struct tags alone.
func Describe(v any, opts ...Option) (*SettingsInfo, error) {
	cfg := applyOptions(opts)
	t, err := structType(v)
	if err != nil {
		return nil, err
	}
	return describe(t, reflect.Value{}, "", cfg.prefix, cfg)
}

// DescribeInstance builds the settings tree for a live instance, overlaying
// the instance's field values on the declared defaults. A value equal to
// its default collapses into the plain declared form.
func DescribeInstance(v any, opts ...Option) (*SettingsInfo, error) {
	cfg := applyOptions(opts)
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Describe(rv.Type(), opts...)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("settings must be a struct, got %s", rv.Kind())
	}
	return describe(rv.Type(), rv, "", cfg.prefix, cfg)
}

func applyOptions(opts []Option) describeConfig {
	var cfg describeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func structType(v any) (reflect.Type, error) {
	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("settings must be a struct, got %v", t)
	}
	return t, nil
}

func describe(t reflect.Type, val reflect.Value, field, inherited string, cfg describeConfig) (*SettingsInfo, error) {
	node := &SettingsInfo{
		Name:      titleOf(t),
		FieldName: field,
		Docs:      docsOf(t),
		EnvPrefix: inherited + prefixOf(t),
	}
	if err := collectFields(t, val, node, delimiterOf(t), cfg); err != nil {
		return nil, err
	}
	return node, nil
}

func collectFields(t reflect.Type, val reflect.Value, node *SettingsInfo, delim string, cfg describeConfig) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		ft := derefType(f.Type)

		// Embedded settings contribute their fields to this node. The
		// embedded type itself may be unexported; its exported fields still
		// flatten in.
		embedded := f.Anonymous && ft.Kind() == reflect.Struct && !isScalarStruct(ft)
		if !f.IsExported() && !embedded {
			continue
		}
		excluded := f.Tag.Get("export") == "-"
		if excluded && !cfg.includeExcluded {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}

		fv := fieldValue(val, i)

		if embedded {
			ev := derefValue(fv)
			// Values reached through an unexported embedded field cannot be
			// interfaced; fall back to the declared defaults.
			if ev.IsValid() && !ev.CanInterface() {
				ev = reflect.Value{}
			}
			if err := collectFields(ft, ev, node, delim, cfg); err != nil {
				return err
			}
			continue
		}

		name := fieldName(f.Name)

		// A field whose type is itself a settings struct is promoted to a
		// child node, never classified as a leaf. Optional (pointer)
		// children with no live value still recurse on declared defaults.
		if ft.Kind() == reflect.Struct && !isScalarStruct(ft) {
			childPrefix := node.EnvPrefix + strings.ToUpper(name) + delim
			child, err := describe(ft, derefValue(fv), name, childPrefix, cfg)
			if err != nil {
				return fmt.Errorf("field %s: %w", f.Name, err)
			}
			node.ChildSettings = append(node.ChildSettings, child)
			continue
		}

		info, err := leafField(f, fv, name)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		info.Excluded = excluded
		node.Fields = append(node.Fields, info)
	}
	return nil
}

func leafField(f reflect.StructField, fv reflect.Value, name string) (*FieldInfo, error) {
	info := &FieldInfo{
		Name:       name,
		Deprecated: isTrue(f.Tag.Get("deprecated")),
	}

	if tag, ok := f.Tag.Lookup("alias"); ok {
		info.Aliases = splitList(tag)
	}
	if tag, ok := f.Tag.Lookup("aliases"); ok {
		info.Aliases = append(info.Aliases, splitList(tag)...)
	}
	info.Aliases = dedup(info.Aliases)

	secret := isTrue(f.Tag.Get("secret")) || derefType(f.Type) == secretType

	if tag, ok := f.Tag.Lookup("choice"); ok {
		for _, choice := range splitList(tag) {
			v, err := parseUntyped(choice)
			if err != nil {
				return nil, fmt.Errorf("choice %q: %w", choice, err)
			}
			info.Types = append(info.Types, Serialize(v))
		}
		if f.Type.Kind() == reflect.Pointer {
			info.Types = append(info.Types, "null")
		}
		info.Types = dedup(info.Types)
	} else {
		info.Types = TypesOf(f.Type)
	}

	if tag, ok := f.Tag.Lookup("default"); ok {
		v, err := parseTyped(tag, f.Type)
		if err != nil {
			return nil, fmt.Errorf("default %q: %w", tag, err)
		}
		info.Default = serializeMasked(v, secret)
		raw := v
		if s, ok := v.(Secret); ok {
			raw = string(s)
		}
		info.rawDefault = Serialize(raw)
	} else {
		info.IsRequired = true
	}

	if desc := f.Tag.Get("desc"); desc != "" {
		info.Description = rst.Sanitize(desc)
	}

	if tag, ok := f.Tag.Lookup("example"); ok {
		for _, example := range splitList(tag) {
			v, err := parseUntyped(example)
			if err != nil {
				return nil, fmt.Errorf("example %q: %w", example, err)
			}
			info.Examples = append(info.Examples, serializeMasked(v, secret))
		}
	}
	if len(info.Examples) == 0 && info.Default != "" {
		info.Examples = []string{info.Default}
	}

	if fv.IsValid() {
		value := serializeMasked(fv.Interface(), secret)
		if info.IsRequired || value != info.Default {
			info.Value = value
			info.HasValue = true
		}
	}
	return info, nil
}

func serializeMasked(v any, secret bool) string {
	if secret {
		return MaskedValue
	}
	return Serialize(v)
}

// parseTyped parses a struct tag literal into the field's own type via YAML,
// so defaults come out with their declared Go type.
func parseTyped(raw string, t reflect.Type) (any, error) {
	target := reflect.New(t)
	if err := yaml.Unmarshal([]byte(raw), target.Interface()); err != nil {
		return nil, err
	}
	return target.Elem().Interface(), nil
}

func parseUntyped(raw string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// isScalarStruct reports whether a struct type renders as a single value
// (time.Time and friends) rather than a nested settings group.
func isScalarStruct(t reflect.Type) bool {
	_, ok := reflect.New(t).Interface().(fmt.Stringer)
	return ok
}

func titleOf(t reflect.Type) string {
	if titled, ok := reflect.New(t).Interface().(Titled); ok {
		return titled.SettingsTitle()
	}
	return t.Name()
}

// docsOf returns the node documentation, cleaned and wrapped. A doc text
// inherited from an embedded type is filtered out by exact string
// comparison against every embedded ancestor.
func docsOf(t reflect.Type) string {
	raw := rawDoc(t)
	if raw == "" {
		return ""
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		if rawDoc(derefType(f.Type)) == raw {
			return ""
		}
	}
	return rst.ToText(raw, docWrapWidth)
}

func rawDoc(t reflect.Type) string {
	if t.Kind() != reflect.Struct {
		return ""
	}
	if doc, ok := reflect.New(t).Interface().(Documented); ok {
		return doc.SettingsDoc()
	}
	return ""
}

func prefixOf(t reflect.Type) string {
	if p, ok := reflect.New(t).Interface().(Prefixed); ok {
		return p.SettingsEnvPrefix()
	}
	return ""
}

func delimiterOf(t reflect.Type) string {
	if d, ok := reflect.New(t).Interface().(Delimited); ok {
		return d.SettingsEnvDelimiter()
	}
	return "_"
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func derefValue(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func fieldValue(val reflect.Value, i int) reflect.Value {
	if !val.IsValid() {
		return reflect.Value{}
	}
	return val.Field(i)
}
