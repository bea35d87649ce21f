// Package settings holds the tool's own configuration, read from a
// settings-export.yml file with environment overrides. The struct carries
// the extractor's tags so the tool can document itself with its own
// generators.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/azmeuk/settings-export/internal/generators/registry"
	"github.com/azmeuk/settings-export/internal/schema"
)

const (
	configName = "settings-export"
	envPrefix  = "SETTINGS_EXPORT"
)

// RelativeTo controls how absolute paths appearing in rendered values are
// shortened.
type RelativeTo struct {
	// ReplaceAbsPaths rewrites absolute paths under the project directory
	// as paths relative to it.
	ReplaceAbsPaths bool `default:"true" desc:"Replace absolute project paths with relative ones in rendered values"`
	// Alias replaces the project directory itself.
	Alias string `default:"'<project_dir>'" desc:"Placeholder shown instead of the project directory path"`
}

// Settings configures an export run.
type Settings struct {
	// DefaultSettings names the manifests exported when the command line
	// passes none, as "manifest.yml" or "manifest.yml:Name" references.
	DefaultSettings []string `default:"[]" desc:"Settings references exported by default" example:"settings.yml:Settings"`
	// ProjectDir is the directory the tool treats as the project root.
	ProjectDir string `default:"'.'" desc:"The project directory"`
	// RootDir anchors relative generator paths. Defaults to ProjectDir.
	RootDir string `default:"''" desc:"Directory relative generator paths are resolved against (defaults to the project directory)"`
	// RespectExclude keeps fields tagged as excluded out of every export.
	RespectExclude bool `default:"true" desc:"Respect fields excluded from export"`

	RelativeTo RelativeTo       `desc:"How absolute paths are shortened in rendered values."`
	Generators registry.Configs `desc:"Per-generator configuration sections."`
}

// SettingsTitle implements schema.Titled.
func (Settings) SettingsTitle() string { return "Settings Export" }

// SettingsEnvPrefix implements schema.Prefixed.
func (Settings) SettingsEnvPrefix() string { return envPrefix + "_" }

// SettingsEnvDelimiter implements schema.Delimited.
func (Settings) SettingsEnvDelimiter() string { return "__" }

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{
		ProjectDir:     ".",
		RespectExclude: true,
		RelativeTo: RelativeTo{
			ReplaceAbsPaths: true,
			Alias:           "<project_dir>",
		},
		Generators: registry.DefaultConfigs(),
	}
}

// Load reads settings-export.yml from the search directories and overlays
// SETTINGS_EXPORT__* environment variables. A missing config file is not an
// error; the defaults apply.
func Load(searchDirs ...string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, dir := range searchDirs {
		if dir != "" && dir != "." {
			v.AddConfigPath(dir)
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s.yml: %w", configName, err)
		}
	}

	s := Default()
	if err := v.Unmarshal(s, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.MatchName = schema.MatchName
	}); err != nil {
		return nil, fmt.Errorf("invalid %s.yml: %w", configName, err)
	}

	if s.ProjectDir == "" {
		s.ProjectDir = "."
	}
	if s.RootDir == "" {
		s.RootDir = s.ProjectDir
	}
	return s, nil
}

// ResolveDirs makes ProjectDir and RootDir absolute.
func (s *Settings) ResolveDirs() error {
	abs, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return fmt.Errorf("cannot resolve project directory %s: %w", s.ProjectDir, err)
	}
	s.ProjectDir = abs

	if s.RootDir == "" {
		s.RootDir = s.ProjectDir
	}
	abs, err = filepath.Abs(s.RootDir)
	if err != nil {
		return fmt.Errorf("cannot resolve root directory %s: %w", s.RootDir, err)
	}
	s.RootDir = abs

	if _, err := os.Stat(s.ProjectDir); err != nil {
		return fmt.Errorf("project directory %s: %w", s.ProjectDir, err)
	}
	return nil
}
