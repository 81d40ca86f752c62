package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"sled-mountain/internal/config"
	"sled-mountain/internal/mountain"
)

// Config holds the command-line settings of the viewer.
type Config struct {
	Seed       string
	Preset     string
	ConfigPath string
	Scale      int
	TPS        int
	Fresh      bool
	Sets       Overrides
}

// NewConfig returns the flag defaults.
func NewConfig() *Config {
	return &Config{Sets: Overrides{}}
}

// Bind registers the flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Seed, "seed", c.Seed, "mountain seed (empty uses the saved run seed)")
	fs.StringVar(&c.Preset, "preset", c.Preset, "mountain preset: "+strings.Join(mountain.Presets(), ", "))
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a YAML config file")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per tile (0 keeps the config value)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "rider ticks per second (0 keeps the config value)")
	fs.BoolVar(&c.Fresh, "fresh", c.Fresh, "mint a new seed instead of reusing the saved one")
	if c.Sets == nil {
		c.Sets = Overrides{}
	}
	fs.Var(c.Sets, "set", "mountain override key=value (repeatable)")
}

// Resolve loads the config file and layers the flags on top of it.
func (c *Config) Resolve() (*config.Config, error) {
	cfg, err := config.LoadPreset(c.ConfigPath, c.Preset)
	if err != nil {
		return nil, err
	}
	cfg.Mountain = mountain.ApplyMap(cfg.Mountain, c.Sets)
	if c.Scale > 0 {
		cfg.Viewer.Scale = c.Scale
	}
	if c.TPS > 0 {
		cfg.Viewer.TPS = c.TPS
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides collects repeated key=value flags.
type Overrides map[string]string

func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o[k])
	}
	return strings.Join(parts, ",")
}

func (o Overrides) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", v)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}
