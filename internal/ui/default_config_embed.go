package ui

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kvfold/internal/view"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     ConfigFile
	embeddedConfigErr  error
)

// ConfigFile is the layout of a configuration file.
type ConfigFile struct {
	UI Config `yaml:"ui"`
}

// Config holds the viewer settings.
type Config struct {
	Theme      ThemeSelectionConfig   `yaml:"theme,omitempty"`
	Fullscreen *bool                  `yaml:"fullscreen,omitempty"`
	Fold       FoldConfig             `yaml:"fold,omitempty"`
	Themes     map[string]ThemeConfig `yaml:"themes,omitempty"`
}

// ThemeSelectionConfig holds theme selection configuration.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty"`
}

// FoldConfig sets the depths down to which containers start expanded.
type FoldConfig struct {
	ObjectDepth *int `yaml:"objectDepth,omitempty"`
	ArrayDepth  *int `yaml:"arrayDepth,omitempty"`
}

// Depths returns the configured fold depths, defaulting unset ones.
func (f FoldConfig) Depths() (objectDepth, arrayDepth int) {
	objectDepth, arrayDepth = view.DefaultObjectDepth, view.DefaultArrayDepth
	if f.ObjectDepth != nil {
		objectDepth = *f.ObjectDepth
	}
	if f.ArrayDepth != nil {
		arrayDepth = *f.ArrayDepth
	}
	return objectDepth, arrayDepth
}

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// EmbeddedDefaultConfig parses and returns the embedded default configuration.
// This is used as the single source of truth for default settings and themes.
func EmbeddedDefaultConfig() (ConfigFile, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		cfg, err := ParseConfig(embeddedDefaultConfig)
		if err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		embeddedConfig = cfg
	})
	return embeddedConfig, embeddedConfigErr
}

// ParseConfig decodes a configuration file.
func ParseConfig(data []byte) (ConfigFile, error) {
	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ConfigFile{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the configuration file at path.
func LoadConfigFile(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}
