package simple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azmeuk/settings-export/internal/generators"
	"github.com/azmeuk/settings-export/internal/schema"
)

func generate(t *testing.T, cfg Config, nodes ...*schema.SettingsInfo) string {
	t.Helper()
	text, err := New(cfg).Generate(nodes...)
	require.NoError(t, err)
	return text
}

func TestSimpleBasicOutput(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Docs: "Test settings.",
		Fields: []*schema.FieldInfo{
			{
				Name:        "field",
				Types:       []string{"string"},
				Default:     `"value"`,
				Description: "Field description",
				Examples:    []string{`"value"`},
			},
		},
	}

	expected := "Settings\n" +
		"========\n" +
		"\n" +
		"Test settings.\n" +
		"\n" +
		"`field`: ['string']\n" +
		"-------------------\n" +
		"\n" +
		"Field description\n" +
		"\n" +
		"Default: \"value\"\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), tree))
}

func TestSimpleEnvPrefix(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name:      "Settings",
		EnvPrefix: "APP_",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string"}, Default: `"value"`, Description: "A field"},
		},
	}

	expected := "Settings\n" +
		"========\n" +
		"\n" +
		"Environment Prefix: APP_\n" +
		"\n" +
		"`field`: ['string']\n" +
		"-------------------\n" +
		"\n" +
		"A field\n" +
		"\n" +
		"Default: \"value\"\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), tree))
}

func TestSimpleRequiredFieldHasNoDefaultLine(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string"}, IsRequired: true, Description: "Required field"},
		},
	}
	got := generate(t, DefaultConfig(), tree)
	assert.NotContains(t, got, "Default:")
}

func TestSimpleDeprecatedMarker(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string"}, Default: `"value"`, Deprecated: true},
		},
	}

	expected := "Settings\n" +
		"========\n" +
		"\n" +
		"`field` (⚠️ Deprecated): ['string']\n" +
		"-----------------------------------\n" +
		"Default: \"value\"\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), tree))
}

func TestSimpleExamples(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string"}, Default: `"default"`, Examples: []string{`"ex1"`, `"ex2"`}},
		},
	}

	expected := "Settings\n" +
		"========\n" +
		"\n" +
		"`field`: ['string']\n" +
		"-------------------\n" +
		"Default: \"default\"\n" +
		"Examples: \"ex1\", \"ex2\"\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), tree))
}

func TestSimpleVariousTypes(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "str_field", Types: []string{"string"}, Default: `"value"`},
			{Name: "int_field", Types: []string{"integer"}, Default: "42"},
			{Name: "bool_field", Types: []string{"boolean"}, Default: "true"},
			{Name: "list_field", Types: []string{"array"}, Default: "[]"},
		},
	}

	expected := "Settings\n" +
		"========\n" +
		"\n" +
		"`str_field`: ['string']\n" +
		"-----------------------\n" +
		"Default: \"value\"\n" +
		"\n" +
		"`int_field`: ['integer']\n" +
		"------------------------\n" +
		"Default: 42\n" +
		"\n" +
		"`bool_field`: ['boolean']\n" +
		"-------------------------\n" +
		"Default: true\n" +
		"\n" +
		"`list_field`: ['array']\n" +
		"-----------------------\n" +
		"Default: []\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), tree))
}

func TestSimpleAlias(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "internal_name", Aliases: []string{"external_name"}, Types: []string{"string"}, Default: `"value"`},
		},
	}

	got := generate(t, DefaultConfig(), tree)
	assert.Contains(t, got, "`external_name`: ['string']")
	assert.NotContains(t, got, "internal_name")
}

func TestSimpleNullableTypeList(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string", "null"}, Default: "null"},
		},
	}
	got := generate(t, DefaultConfig(), tree)
	assert.Contains(t, got, "`field`: ['string', 'null']")
}

func TestSimpleModeFilter(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "required", Types: []string{"string"}, IsRequired: true},
			{Name: "optional", Types: []string{"string"}, Default: `"v"`},
		},
	}

	got := generate(t, Config{Mode: generators.ModeOnlyRequired}, tree)
	assert.Contains(t, got, "`required`")
	assert.NotContains(t, got, "`optional`")
}

func TestSimpleDoesNotDescendIntoChildren(t *testing.T) {
	tree := &schema.SettingsInfo{
		Name: "Settings",
		Fields: []*schema.FieldInfo{
			{Name: "field", Types: []string{"string"}, Default: `"v"`},
		},
		ChildSettings: []*schema.SettingsInfo{
			{Name: "Database", FieldName: "database", Fields: []*schema.FieldInfo{
				{Name: "host", Types: []string{"string"}, Default: `"localhost"`},
			}},
		},
	}
	got := generate(t, DefaultConfig(), tree)
	assert.NotContains(t, got, "Database")
	assert.NotContains(t, got, "host")
}

func TestSimpleMultipleNodes(t *testing.T) {
	a := &schema.SettingsInfo{Name: "A", Fields: []*schema.FieldInfo{
		{Name: "f", Types: []string{"string"}, Default: `"v"`},
	}}
	b := &schema.SettingsInfo{Name: "B", Fields: []*schema.FieldInfo{
		{Name: "g", Types: []string{"string"}, IsRequired: true},
	}}

	expected := "A\n" +
		"=\n" +
		"\n" +
		"`f`: ['string']\n" +
		"---------------\n" +
		"Default: \"v\"\n" +
		"\n" +
		"B\n" +
		"=\n" +
		"\n" +
		"`g`: ['string']\n" +
		"---------------\n"
	assert.Equal(t, expected, generate(t, DefaultConfig(), a, b))
}
