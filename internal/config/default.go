package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"sled-mountain/internal/mountain"
)

// DefaultStatePath is where the run state lives unless configured otherwise.
const DefaultStatePath = "sled-state.yaml"

// Default returns a configuration that runs the standard mountain.
func Default() Config {
	return Config{
		Preset:   "default",
		Mountain: mountain.DefaultConfig(),
		Viewer: ViewerConfig{
			Scale:    4,
			TPS:      30,
			HUDWidth: 240,
		},
		StatePath: DefaultStatePath,
	}
}

// WriteDefault writes the default configuration to the provided path.
func WriteDefault(path string) error {
	cfg := Default()

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}
