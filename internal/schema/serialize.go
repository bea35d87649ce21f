package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Secret is a string whose content must never appear in generated output.
// It always serializes to the fixed masked placeholder.
type Secret string

// MaskedValue is the serialized form of every secret value.
const MaskedValue = `"**********"`

func (s Secret) String() string { return strings.Trim(MaskedValue, `"`) }

// Path is a filesystem path. It serializes as a quoted string and keeps
// "Path" as its type tag.
type Path string

func (p Path) String() string { return string(p) }

// Serialize converts any runtime value into its canonical compact textual
// form: JSON without extra whitespace, `null` for nil, lowercase booleans,
// masked secrets. It never fails; values that cannot be represented as JSON
// fall back to their quoted string form.
func Serialize(v any) string {
	return encodeJSON(jsonable(reflect.ValueOf(v)))
}

func encodeJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return strconv.Quote(fmt.Sprint(v))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// jsonable lowers a value to plain JSON-encodable data, masking secrets and
// stringifying paths anywhere in the structure.
func jsonable(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}

	switch rv.Type() {
	case secretType:
		return Secret("").String()
	case pathType:
		return rv.String()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return jsonable(rv.Elem())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = jsonable(rv.Index(i))
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = jsonable(iter.Value())
		}
		return out
	case reflect.Struct:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return rv.Interface()
	case reflect.String:
		return rv.String()
	default:
		return rv.Interface()
	}
}
