package schema

import (
	"strings"
	"unicode"
)

// FieldNameOf converts an exported name to its snake_case field identifier.
// Acronym runs stay together: "HTTPTimeout" -> "http_timeout".
func FieldNameOf(name string) string {
	return fieldName(name)
}

// fieldName converts a Go struct field name to its declared snake_case
// identifier. Acronym runs stay together: "HTTPTimeout" -> "http_timeout".
func fieldName(name string) string {
	if name == "" {
		return ""
	}

	var result strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) {
					result.WriteRune('_')
				} else if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					result.WriteRune('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// splitList splits a comma-separated struct tag value, trimming whitespace
// and dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isTrue(s string) bool {
	return s == "true" || s == "1"
}
