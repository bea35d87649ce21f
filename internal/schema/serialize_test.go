package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type version struct{ major, minor int }

func (v version) String() string { return "1.2" }

func TestSerialize(t *testing.T) {
	s := "pointed"

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"string", "value", `"value"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"float", 0.5, "0.5"},
		{"bool", true, "true"},
		{"nil", nil, "null"},
		{"nil pointer", (*string)(nil), "null"},
		{"pointer", &s, `"pointed"`},
		{"slice", []string{"a", "b"}, `["a","b"]`},
		{"empty slice", []string{}, "[]"},
		{"map", map[string]int{"a": 1}, `{"a":1}`},
		{"nested", []any{map[string]any{"k": []int{1, 2}}}, `[{"k":[1,2]}]`},
		{"secret is masked", Secret("hunter2"), MaskedValue},
		{"secret in slice is masked", []Secret{"a", "b"}, `["**********","**********"]`},
		{"path stays a plain string", Path("/tmp/data"), `"/tmp/data"`},
		{"stringer struct", version{1, 2}, `"1.2"`},
		{"html characters are not escaped", "a <b> & c", `"a <b> & c"`},
		{"non-ascii", "héllo", `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Serialize(tt.value))
		})
	}
}

func TestSerializeNeverEmpty(t *testing.T) {
	// Default == "" marks a required field, so no serialized value may be
	// the empty string.
	for _, v := range []any{nil, "", 0, false, []string(nil), map[string]string(nil)} {
		assert.NotEmpty(t, Serialize(v))
	}
}

func TestParseSerializedKeepsIntegersWhole(t *testing.T) {
	v, err := ParseSerialized("8000")
	assert.NoError(t, err)
	assert.Equal(t, int64(8000), v)

	v, err = ParseSerialized("0.5")
	assert.NoError(t, err)
	assert.Equal(t, 0.5, v)

	v, err = ParseSerialized(`{"port":8000}`)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"port": int64(8000)}, v)
}

func TestParseSerializedRoundTrip(t *testing.T) {
	for _, serialized := range []string{`"value"`, "42", "true", "null", `["a","b"]`} {
		v, err := ParseSerialized(serialized)
		assert.NoError(t, err)
		assert.Equal(t, serialized, Serialize(v))
	}
}
