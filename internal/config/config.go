package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sled-mountain/internal/mountain"
)

type Config struct {
	Preset    string          `yaml:"preset"`
	Mountain  mountain.Config `yaml:"mountain"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	StatePath string          `yaml:"state_path"`
}

type ViewerConfig struct {
	Scale    int `yaml:"scale"`
	TPS      int `yaml:"tps"`
	HUDWidth int `yaml:"hud_width"`
}

// Load reads a YAML config. An empty path yields the defaults. Mountain
// fields left out of the file keep the values of the selected preset.
func Load(path string) (*Config, error) {
	return LoadPreset(path, "")
}

// LoadPreset is Load with the preset forced to preset when it is not empty.
// The file's mountain keys still apply on top of the forced preset.
func LoadPreset(path, preset string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if preset == "" {
		preset = head.Preset
	}
	cfg := Default()
	if preset != "" {
		base, ok := mountain.Preset(preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg.Mountain = base
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if preset != "" {
		cfg.Preset = preset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills zero viewer settings with defaults and checks the mountain
// constants.
func (c *Config) Validate() error {
	defaults := Default()
	if c.Viewer.Scale <= 0 {
		c.Viewer.Scale = defaults.Viewer.Scale
	}
	if c.Viewer.TPS <= 0 {
		c.Viewer.TPS = defaults.Viewer.TPS
	}
	if c.Viewer.HUDWidth < 0 {
		c.Viewer.HUDWidth = 0
	}
	if c.StatePath == "" {
		c.StatePath = defaults.StatePath
	}
	if err := c.Mountain.Validate(); err != nil {
		return fmt.Errorf("mountain: %w", err)
	}
	return nil
}
