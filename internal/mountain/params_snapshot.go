package mountain

import (
	"strconv"

	"sled-mountain/internal/core"
)

// Parameters reports the construction constants and per-mountain totals for
// the HUD.
func (v *View) Parameters() core.ParameterSnapshot {
	cfg := v.m.cfg
	var ramps, trees, obstacles int
	for _, l := range v.m.layers {
		ramps += l.ramps
		trees += l.trees
		obstacles += l.obstacles
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Mountain",
			Params: []core.Parameter{
				stringParam("seed", "Seed", v.m.seed),
				stringParam("sampler", "Sampler", string(cfg.Sampler)),
				intParam("total_layers", "Layers", cfg.TotalLayers),
				intParam("base_circumference", "Base circumference", cfg.BaseCircumference),
				floatParam("shrink_factor", "Shrink factor", cfg.ShrinkFactor),
				intParam("layer_height", "Layer height", cfg.LayerHeight),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				floatParam("rock_coeff", "Rock coefficient", cfg.RockCoeff),
				floatParam("ice_coeff", "Ice coefficient", cfg.IceCoeff),
				intParam("ramp_stride", "Ramp stride", cfg.RampStride),
				intParam("tree_base", "Tree base", cfg.TreeBase),
				intParam("obstacle_growth", "Obstacle growth", cfg.ObstacleGrowth),
			},
		},
		{
			Name:    "Placed",
			Summary: "Totals across all layers",
			Params: []core.Parameter{
				intParam("ramp_patches", "Ramp patches", ramps),
				intParam("trees", "Trees", trees),
				intParam("obstacles", "Obstacles", obstacles),
			},
		},
	}}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}
