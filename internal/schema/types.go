package schema

import (
	"reflect"
)

var (
	secretType = reflect.TypeOf(Secret(""))
	pathType   = reflect.TypeOf(Path(""))
)

// TypesOf maps a declared field type to its ordered list of semantic type
// tags. Pointer types contribute a trailing "null" tag. Defined types that
// are not recognized primitives keep their bare type name as the tag, which
// is the escape hatch for domain value types (Path, Duration, ...).
//
// The mapping is idempotent: duplicates are removed in first-seen order.
func TypesOf(t reflect.Type) []string {
	var tags []string
	appendTags(t, &tags)
	return dedup(tags)
}

func appendTags(t reflect.Type, tags *[]string) {
	if t == nil {
		*tags = append(*tags, "null")
		return
	}

	if t.Kind() == reflect.Pointer {
		appendTags(t.Elem(), tags)
		*tags = append(*tags, "null")
		return
	}

	// Secret is a string as far as callers are concerned; only its
	// rendering is special.
	if t == secretType {
		*tags = append(*tags, "string")
		return
	}

	// Defined non-builtin types keep their own name.
	if t.PkgPath() != "" {
		*tags = append(*tags, t.Name())
		return
	}

	switch t.Kind() {
	case reflect.String:
		*tags = append(*tags, "string")
	case reflect.Bool:
		*tags = append(*tags, "boolean")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		*tags = append(*tags, "integer")
	case reflect.Float32, reflect.Float64:
		*tags = append(*tags, "number")
	case reflect.Slice, reflect.Array:
		*tags = append(*tags, "array")
	case reflect.Map, reflect.Struct:
		*tags = append(*tags, "object")
	case reflect.Interface:
		*tags = append(*tags, "any")
	default:
		*tags = append(*tags, t.Kind().String())
	}
}

func dedup(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
