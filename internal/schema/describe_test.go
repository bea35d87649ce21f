package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type databaseSettings struct {
	Host string `default:"localhost" desc:"Database host"`
	Port int    `default:"5432"`
}

func (databaseSettings) SettingsTitle() string { return "Database" }
func (databaseSettings) SettingsDoc() string   { return "Database config." }

type appSettings struct {
	Name     string `desc:"Service name"`
	Debug    bool   `default:"false"`
	APIKey   Secret `default:"hunter2"`
	Database databaseSettings
}

func (appSettings) SettingsEnvPrefix() string { return "APP_" }

func mustDescribe(t *testing.T, v any, opts ...Option) *SettingsInfo {
	t.Helper()
	node, err := Describe(v, opts...)
	require.NoError(t, err)
	return node
}

func fieldByName(t *testing.T, node *SettingsInfo, name string) *FieldInfo {
	t.Helper()
	for _, f := range node.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found", name)
	return nil
}

func TestDescribeBasics(t *testing.T) {
	node := mustDescribe(t, appSettings{})

	assert.Equal(t, "appSettings", node.Name)
	assert.Equal(t, "APP_", node.EnvPrefix)
	assert.Equal(t, "", node.FieldName)
	assert.Len(t, node.Fields, 3)

	name := fieldByName(t, node, "name")
	assert.True(t, name.IsRequired)
	assert.Empty(t, name.Default)
	assert.Equal(t, "Service name", name.Description)
	assert.Equal(t, []string{"string"}, name.Types)

	debug := fieldByName(t, node, "debug")
	assert.False(t, debug.IsRequired)
	assert.Equal(t, "false", debug.Default)
	assert.Equal(t, []string{"boolean"}, debug.Types)
}

func TestDescribeMasksSecrets(t *testing.T) {
	node := mustDescribe(t, appSettings{})

	key := fieldByName(t, node, "api_key")
	assert.Equal(t, MaskedValue, key.Default)
	assert.Equal(t, []string{"string"}, key.Types)
}

func TestDescribeNestedSettings(t *testing.T) {
	node := mustDescribe(t, appSettings{})

	require.Len(t, node.ChildSettings, 1)
	db := node.ChildSettings[0]
	assert.Equal(t, "Database", db.Name)
	assert.Equal(t, "database", db.FieldName)
	assert.Equal(t, "Database config.", db.Docs)
	assert.Equal(t, "APP_DATABASE_", db.EnvPrefix)

	host := fieldByName(t, db, "host")
	assert.Equal(t, `"localhost"`, host.Default)
	assert.Equal(t, "5432", fieldByName(t, db, "port").Default)
}

func TestDescribePointerChildUsesDeclaredDefaults(t *testing.T) {
	type settings struct {
		Database *databaseSettings
	}
	node := mustDescribe(t, settings{})

	require.Len(t, node.ChildSettings, 1)
	assert.Equal(t, `"localhost"`, fieldByName(t, node.ChildSettings[0], "host").Default)
}

func TestDescribeAcceptsValuePointerAndType(t *testing.T) {
	byValue := mustDescribe(t, appSettings{})
	byPointer := mustDescribe(t, &appSettings{})
	assert.Equal(t, byValue, byPointer)

	_, err := Describe(42)
	assert.Error(t, err)
}

func TestDescribeAliases(t *testing.T) {
	type settings struct {
		InternalName string `alias:"EXTERNAL_NAME" default:"'v'"`
		Multi        string `aliases:"first, second" default:"'v'"`
	}
	node := mustDescribe(t, settings{})

	f := fieldByName(t, node, "internal_name")
	assert.Equal(t, []string{"EXTERNAL_NAME"}, f.Aliases)
	assert.Equal(t, "EXTERNAL_NAME", f.FullName())

	multi := fieldByName(t, node, "multi")
	assert.Equal(t, []string{"first", "second"}, multi.Aliases)
	assert.Equal(t, "first", multi.FullName())
}

func TestDescribeChoiceTags(t *testing.T) {
	type settings struct {
		Level    string  `choice:"debug, info, warning" default:"info"`
		Optional *string `choice:"a, b"`
	}
	node := mustDescribe(t, settings{})

	level := fieldByName(t, node, "level")
	assert.Equal(t, []string{`"debug"`, `"info"`, `"warning"`}, level.Types)
	assert.Equal(t, `"info"`, level.Default)

	optional := fieldByName(t, node, "optional")
	assert.Equal(t, []string{`"a"`, `"b"`, "null"}, optional.Types)
	assert.True(t, optional.IsRequired)
}

func TestDescribeExamples(t *testing.T) {
	type settings struct {
		WithExamples    string `default:"'def'" example:"ex1, ex2"`
		WithoutExamples string `default:"'def'"`
		Port            int    `default:"8000" example:"8080, 9000"`
	}
	node := mustDescribe(t, settings{})

	withEx := fieldByName(t, node, "with_examples")
	assert.Equal(t, []string{`"ex1"`, `"ex2"`}, withEx.Examples)
	assert.True(t, withEx.HasExamples())

	// Examples fall back to the default and then add no information.
	withoutEx := fieldByName(t, node, "without_examples")
	assert.Equal(t, []string{`"def"`}, withoutEx.Examples)
	assert.False(t, withoutEx.HasExamples())

	port := fieldByName(t, node, "port")
	assert.Equal(t, []string{"8080", "9000"}, port.Examples)
}

func TestDescribeDeprecated(t *testing.T) {
	type settings struct {
		Old string `default:"'v'" deprecated:"true"`
		New string `default:"'v'"`
	}
	node := mustDescribe(t, settings{})

	assert.True(t, fieldByName(t, node, "old").Deprecated)
	assert.False(t, fieldByName(t, node, "new").Deprecated)
}

func TestDescribeSkipsExcludedAndUnexported(t *testing.T) {
	type settings struct {
		Kept     string `default:"'v'"`
		Excluded string `export:"-" default:"'v'"`
		hidden   string
	}
	node := mustDescribe(t, settings{})
	require.Len(t, node.Fields, 1)
	assert.Equal(t, "kept", node.Fields[0].Name)

	node = mustDescribe(t, settings{}, WithExcluded())
	require.Len(t, node.Fields, 2)
	assert.False(t, fieldByName(t, node, "kept").Excluded)
	assert.True(t, fieldByName(t, node, "excluded").Excluded)
}

func TestDropExcluded(t *testing.T) {
	node := &SettingsInfo{
		Fields: []*FieldInfo{
			{Name: "kept"},
			{Name: "hidden", Excluded: true},
		},
		ChildSettings: []*SettingsInfo{
			{Fields: []*FieldInfo{{Name: "secret_key", Excluded: true}}},
		},
	}

	DropExcluded(node)

	require.Len(t, node.Fields, 1)
	assert.Equal(t, "kept", node.Fields[0].Name)
	assert.Empty(t, node.ChildSettings[0].Fields)
}

func TestDescribeEmbeddedStructsFlatten(t *testing.T) {
	type base struct {
		Timeout int `default:"30"`
	}
	type settings struct {
		base
		Name string `default:"'svc'"`
	}
	node := mustDescribe(t, settings{})

	assert.Len(t, node.ChildSettings, 0)
	require.Len(t, node.Fields, 2)
	assert.Equal(t, "timeout", node.Fields[0].Name)
	assert.Equal(t, "name", node.Fields[1].Name)
}

func TestDescribeInstanceUnexportedEmbedded(t *testing.T) {
	type base struct {
		Timeout int `default:"30"`
	}
	type settings struct {
		base
		Name string `default:"'svc'"`
	}
	node, err := DescribeInstance(settings{base: base{Timeout: 60}, Name: "other"})
	require.NoError(t, err)

	require.Len(t, node.Fields, 2)

	// The embedded value is unreachable through reflection, so its fields
	// keep the declared defaults without an overlay.
	timeout := fieldByName(t, node, "timeout")
	assert.Equal(t, "30", timeout.Default)
	assert.False(t, timeout.HasValue)

	name := fieldByName(t, node, "name")
	assert.True(t, name.HasValue)
	assert.Equal(t, `"other"`, name.Value)
}

func TestDescribeScalarStructsStayLeaves(t *testing.T) {
	type settings struct {
		StartedAt time.Time
	}
	node := mustDescribe(t, settings{})

	assert.Empty(t, node.ChildSettings)
	require.Len(t, node.Fields, 1)
	assert.Equal(t, []string{"Time"}, node.Fields[0].Types)
}

func TestDescribeEnvDelimiter(t *testing.T) {
	node := mustDescribe(t, delimitedSettings{})

	require.Len(t, node.ChildSettings, 1)
	assert.Equal(t, "APP__DATABASE__", node.ChildSettings[0].EnvPrefix)
}

func TestDescribeWithEnvPrefixOption(t *testing.T) {
	node := mustDescribe(t, appSettings{}, WithEnvPrefix("X_"))
	assert.Equal(t, "X_APP_", node.EnvPrefix)
}

func TestDescribeSanitizesDescriptions(t *testing.T) {
	// The tag needs an interpreted string literal: double backticks cannot
	// appear inside a raw one.
	type settings struct {
		Field string "default:\"'v'\" desc:\"Use ``code`` here\""
	}
	node := mustDescribe(t, settings{})
	assert.Equal(t, "Use code here", node.Fields[0].Description)

	roled := mustDescribe(t, struct {
		Field string "default:\"'v'\" desc:\"See :ref:`thing` and ``code``\""
	}{})
	assert.Equal(t, "See thing and code", roled.Fields[0].Description)
}

func TestDescribeInheritedDocIsDropped(t *testing.T) {
	parent := mustDescribe(t, inheritingSettings{})
	assert.Empty(t, parent.Docs)

	own := mustDescribe(t, overridingSettings{})
	assert.Equal(t, "Its own doc.", own.Docs)
}

func TestDescribeInstanceOverlaysValues(t *testing.T) {
	s := &appSettings{
		Name:     "svc",
		Debug:    true,
		APIKey:   "hunter2",
		Database: databaseSettings{Host: "localhost", Port: 5432},
	}
	node, err := DescribeInstance(s)
	require.NoError(t, err)

	name := fieldByName(t, node, "name")
	assert.True(t, name.HasValue)
	assert.Equal(t, `"svc"`, name.Value)

	debug := fieldByName(t, node, "debug")
	assert.True(t, debug.HasValue)
	assert.Equal(t, "true", debug.Value)

	// Values equal to the declared default collapse.
	host := fieldByName(t, node.ChildSettings[0], "host")
	assert.False(t, host.HasValue)
}

func TestDescribeInstanceNilPointerFallsBack(t *testing.T) {
	node, err := DescribeInstance((*appSettings)(nil))
	require.NoError(t, err)
	assert.False(t, fieldByName(t, node, "debug").HasValue)
}

type documentedBase struct {
	Timeout int `default:"30"`
}

func (documentedBase) SettingsDoc() string { return "Base doc." }

type inheritingSettings struct {
	documentedBase
}

func (inheritingSettings) SettingsDoc() string { return "Base doc." }

type overridingSettings struct {
	documentedBase
}

func (overridingSettings) SettingsDoc() string { return "Its own doc." }

type delimitedSettings struct {
	Database databaseSettings
}

func (delimitedSettings) SettingsEnvPrefix() string    { return "APP__" }
func (delimitedSettings) SettingsEnvDelimiter() string { return "__" }
