package mountain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sled-mountain/pkg/core"
)

// ErrInvalidConfig marks construction constants that cannot produce a valid
// mountain.
var ErrInvalidConfig = errors.New("invalid mountain config")

// maxColorBuckets keeps the display palette within a uint8 index.
const maxColorBuckets = 32

// Config holds the construction-time constants of a mountain. They are fixed
// per game version and never edited during a run.
type Config struct {
	TotalLayers       int     `yaml:"total_layers"`
	BaseCircumference int     `yaml:"base_circumference"`
	LayerHeight       int     `yaml:"layer_height"`
	TileSize          int     `yaml:"tile_size"`
	ShrinkFactor      float64 `yaml:"shrink_factor"`

	RockCoeff     float64 `yaml:"rock_coeff"`
	IceCoeff      float64 `yaml:"ice_coeff"`
	ColorBuckets  int     `yaml:"color_buckets"`
	VariantCount  int     `yaml:"variant_count"`
	VariantOffset float64 `yaml:"variant_offset"`

	RampStartColumn  int `yaml:"ramp_start_column"`
	RampStride       int `yaml:"ramp_stride"`
	RampStrideJitter int `yaml:"ramp_stride_jitter"`
	RampColumns      int `yaml:"ramp_columns"`
	RampRows         int `yaml:"ramp_rows"`

	TreeBase       int `yaml:"tree_base"`
	TreeDecay      int `yaml:"tree_decay"`
	ObstacleBase   int `yaml:"obstacle_base"`
	ObstacleGrowth int `yaml:"obstacle_growth"`

	Sampler core.SamplerKind `yaml:"sampler"`
}

// DefaultConfig returns the standard mountain.
func DefaultConfig() Config {
	return Config{
		TotalLayers:       10,
		BaseCircumference: 4000,
		LayerHeight:       200,
		TileSize:          32,
		ShrinkFactor:      0.6,

		RockCoeff:     0.012,
		IceCoeff:      0.02,
		ColorBuckets:  5,
		VariantCount:  4,
		VariantOffset: 1000,

		RampStartColumn:  3,
		RampStride:       10,
		RampStrideJitter: 8,
		RampColumns:      3,
		RampRows:         2,

		TreeBase:       30,
		TreeDecay:      3,
		ObstacleBase:   2,
		ObstacleGrowth: 2,

		Sampler: core.SamplerTrig,
	}
}

// Circumference returns the wrap length in pixels of layer i.
func (c Config) Circumference(i int) int {
	if c.TotalLayers <= 0 {
		return 0
	}
	v := float64(c.BaseCircumference) * (1 - float64(i)/float64(c.TotalLayers)*c.ShrinkFactor)
	return int(math.Floor(v + 1e-9))
}

// Heights returns the vertical band owned by layer i.
func (c Config) Heights(i int) HeightRange {
	return HeightRange{Min: i * c.LayerHeight, Max: (i + 1) * c.LayerHeight}
}

// GridWidth returns the number of tile columns of layer i.
func (c Config) GridWidth(i int) int {
	return ceilDiv(c.Circumference(i), c.TileSize)
}

// GridHeight returns the number of tile rows in every layer.
func (c Config) GridHeight() int {
	return ceilDiv(c.LayerHeight, c.TileSize)
}

// TreeCount returns how many trees the obstacle pass tries to place on layer i.
func (c Config) TreeCount(i int) int {
	n := c.TreeBase - i*c.TreeDecay
	if n < 0 {
		return 0
	}
	return n
}

// ObstacleCount returns how many rock obstacles the obstacle pass tries to
// place on layer i.
func (c Config) ObstacleCount(i int) int {
	n := c.ObstacleBase + i*c.ObstacleGrowth
	if n < 0 {
		return 0
	}
	return n
}

// Validate checks the constructor preconditions.
func (c Config) Validate() error {
	if c.TotalLayers <= 0 {
		return invalid("total_layers must be positive")
	}
	if c.BaseCircumference <= 0 {
		return invalid("base_circumference must be positive")
	}
	if c.LayerHeight <= 0 {
		return invalid("layer_height must be positive")
	}
	if c.TileSize <= 0 {
		return invalid("tile_size must be positive")
	}
	if !(c.ShrinkFactor > 0 && c.ShrinkFactor <= 1) {
		return invalid("shrink_factor must be in (0, 1]")
	}
	if c.RockCoeff < 0 || c.IceCoeff < 0 || math.IsNaN(c.RockCoeff) || math.IsNaN(c.IceCoeff) {
		return invalid("rock_coeff and ice_coeff cannot be negative")
	}
	if c.ColorBuckets <= 0 || c.ColorBuckets > maxColorBuckets {
		return invalid(fmt.Sprintf("color_buckets must be in [1, %d]", maxColorBuckets))
	}
	if c.VariantCount <= 0 {
		return invalid("variant_count must be positive")
	}
	if c.RampStartColumn < 0 {
		return invalid("ramp_start_column cannot be negative")
	}
	if c.RampStride <= 0 {
		return invalid("ramp_stride must be positive")
	}
	if c.RampStrideJitter < 0 {
		return invalid("ramp_stride_jitter cannot be negative")
	}
	if c.RampColumns <= 0 || c.RampRows <= 0 {
		return invalid("ramp patch dimensions must be positive")
	}
	if c.TreeBase < 0 || c.TreeDecay < 0 || c.ObstacleBase < 0 || c.ObstacleGrowth < 0 {
		return invalid("tree and obstacle counts cannot be negative")
	}
	if _, err := core.ParseSamplerKind(string(c.Sampler)); err != nil {
		return invalid(err.Error())
	}
	prev := c.Circumference(0)
	for i := 1; i < c.TotalLayers; i++ {
		next := c.Circumference(i)
		if next >= prev {
			return invalid(fmt.Sprintf("circumference of layer %d (%d) does not shrink below layer %d (%d)", i, next, i-1, prev))
		}
		prev = next
	}
	if prev <= 0 {
		return invalid("top layer circumference must be positive")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

// FromMap builds a config from flag-style key/value pairs. A "preset" key
// selects the base config; unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if name, ok := cfg["preset"]; ok {
		if preset, found := Preset(name); found {
			c = preset
		}
	}
	return ApplyMap(c, cfg)
}

// ApplyMap overrides fields of base from flag-style key/value pairs.
func ApplyMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	setInt := func(key string, dst *int, min int) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= min {
			*dst = parsed
		}
	}
	setFloat := func(key string, dst *float64) {
		v, ok := cfg[key]
		if !ok {
			return
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}

	setInt("total_layers", &c.TotalLayers, 1)
	setInt("base_circumference", &c.BaseCircumference, 1)
	setInt("layer_height", &c.LayerHeight, 1)
	setInt("tile_size", &c.TileSize, 1)
	setFloat("shrink_factor", &c.ShrinkFactor)
	setFloat("rock_coeff", &c.RockCoeff)
	setFloat("ice_coeff", &c.IceCoeff)
	setInt("color_buckets", &c.ColorBuckets, 1)
	setInt("variant_count", &c.VariantCount, 1)
	setFloat("variant_offset", &c.VariantOffset)
	setInt("ramp_start_column", &c.RampStartColumn, 0)
	setInt("ramp_stride", &c.RampStride, 1)
	setInt("ramp_stride_jitter", &c.RampStrideJitter, 0)
	setInt("ramp_columns", &c.RampColumns, 1)
	setInt("ramp_rows", &c.RampRows, 1)
	setInt("tree_base", &c.TreeBase, 0)
	setInt("tree_decay", &c.TreeDecay, 0)
	setInt("obstacle_base", &c.ObstacleBase, 0)
	setInt("obstacle_growth", &c.ObstacleGrowth, 0)

	if v, ok := cfg["sampler"]; ok {
		if kind, err := core.ParseSamplerKind(strings.TrimSpace(v)); err == nil {
			c.Sampler = kind
		}
	}
	return c
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
