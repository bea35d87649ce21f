package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// MissingFieldsError aggregates every required field a settings struct could
// not be populated with, named by its external environment variable.
type MissingFieldsError struct {
	Settings string
	Fields   []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%d missing settings for %s: %s",
		len(e.Fields), e.Settings, strings.Join(e.Fields, ", "))
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	lookup func(string) (string, bool)
	prefix string
}

// WithLookup replaces the environment lookup, mainly for tests.
func WithLookup(lookup func(string) (string, bool)) LoadOption {
	return func(c *loadConfig) { c.lookup = lookup }
}

// WithLoadPrefix prepends an extra environment prefix while loading.
func WithLoadPrefix(prefix string) LoadOption {
	return func(c *loadConfig) { c.prefix = prefix }
}

// MatchName reports whether a decoded map key addresses a struct field,
// matching case-insensitively and against the snake_case field name.
func MatchName(mapKey, field string) bool {
	return strings.EqualFold(mapKey, field) || mapKey == fieldName(field)
}

// Load populates a settings struct from declared defaults overlaid with
// environment variables named by the extractor's rules. Required fields
// with no environment value aggregate into a MissingFieldsError; the
// remaining fields are still populated when that happens.
func Load(target any, opts ...LoadOption) error {
	cfg := loadConfig{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&cfg)
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("load target must be a non-nil pointer, got %T", target)
	}

	info, err := Describe(target, WithEnvPrefix(cfg.prefix))
	if err != nil {
		return err
	}

	values := make(map[string]any)
	var missing []string
	if err := gatherValues(info, values, cfg.lookup, &missing); err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		MatchName:        MatchName,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("decoding %s: %w", info.Name, err)
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Settings: info.Name, Fields: missing}
	}
	return nil
}

func gatherValues(node *SettingsInfo, into map[string]any, lookup func(string) (string, bool), missing *[]string) error {
	for _, f := range node.Fields {
		name := node.EnvPrefix + strings.ToUpper(f.FullName())
		if raw, ok := lookup(name); ok {
			v, err := parseUntyped(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			into[f.Name] = v
			continue
		}
		if f.Default == "" {
			*missing = append(*missing, name)
			continue
		}
		// Secret fields carry the masked placeholder in Default; loading
		// needs the real declared value.
		serialized := f.Default
		if f.rawDefault != "" {
			serialized = f.rawDefault
		}
		v, err := ParseSerialized(serialized)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		into[f.Name] = v
	}
	for _, child := range node.ChildSettings {
		sub := make(map[string]any)
		if err := gatherValues(child, sub, lookup, missing); err != nil {
			return err
		}
		into[child.FieldName] = sub
	}
	return nil
}

// ParseSerialized turns a canonical serialized value back into a plain Go
// value. Integral numbers come back as int64, not float64, so structured
// renderers keep them whole.
func ParseSerialized(serialized string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(serialized)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		f, _ := v.Float64()
		return f
	case []any:
		for i := range v {
			v[i] = normalizeNumbers(v[i])
		}
	case map[string]any:
		for k := range v {
			v[k] = normalizeNumbers(v[k])
		}
	}
	return v
}
