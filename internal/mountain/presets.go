package mountain

import "sort"

var presets = map[string]func() Config{
	"default": DefaultConfig,
	"alpine": func() Config {
		c := DefaultConfig()
		c.TotalLayers = 14
		c.BaseCircumference = 5600
		c.ShrinkFactor = 0.7
		c.RockCoeff = 0.01
		c.IceCoeff = 0.03
		c.TreeBase = 36
		c.ObstacleGrowth = 3
		return c
	},
	"bunny-hill": func() Config {
		c := DefaultConfig()
		c.TotalLayers = 5
		c.BaseCircumference = 2400
		c.ShrinkFactor = 0.4
		c.RockCoeff = 0.01
		c.IceCoeff = 0.01
		c.TreeBase = 12
		c.TreeDecay = 2
		c.ObstacleBase = 0
		c.ObstacleGrowth = 1
		return c
	},
}

// Preset returns the named config.
func Preset(name string) (Config, bool) {
	build, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return build(), true
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
