// Package config holds the runtime configuration for an embedding host:
// log level, namespace boot layouts and the mount table.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quarkos-dev/quark"
	"github.com/quarkos-dev/quark/internal/util"
	"gopkg.in/yaml.v3"
)

// NamespaceDef names a namespace and its boot layout.
type NamespaceDef struct {
	Name  string          `yaml:"name" json:"name"`
	Nodes []quark.NodeDef `yaml:"nodes,omitempty" json:"nodes,omitempty"`
}

// MountDef grafts the Target namespace's root into the From namespace at At.
type MountDef struct {
	From   string `yaml:"from" json:"from"`
	At     string `yaml:"at" json:"at"`
	Target string `yaml:"target" json:"target"`
}

// Config contains the resolved runtime configuration.
type Config struct {
	LogLvl     util.LogLevel  // Log verbosity (Default info)
	Namespaces []NamespaceDef // Namespaces to build at startup (Default one empty "system")
	Mounts     []MountDef     // Mount table applied after all namespaces exist
}

// ConfigOverride uses pointer and slice fields to distinguish between unset
// and zero values when loading partial configuration.
type ConfigOverride struct {
	LogLevel   *string        `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Namespaces []NamespaceDef `yaml:"namespaces,omitempty" json:"namespaces,omitempty"`
	Mounts     []MountDef     `yaml:"mounts,omitempty" json:"mounts,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:     util.InfoLevel,
		Namespaces: []NamespaceDef{{Name: DefaultNamespace}},
	}
}

// Merge applies set values from override onto this Config. Namespace and
// mount lists replace wholesale rather than merging element-wise.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLevel != nil {
		if lvl, ok := ParseLogLevel(*override.LogLevel); ok {
			c.LogLvl = lvl
		}
	}
	if override.Namespaces != nil {
		c.Namespaces = override.Namespaces
	}
	if override.Mounts != nil {
		c.Mounts = override.Mounts
	}
}

// LoadOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewFromFile creates a new Config by merging file overrides with defaults.
func NewFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}
