package mountain

import (
	"math"

	"sled-mountain/pkg/core"
)

// classify decides the terrain type and cosmetics of the tile at (col, row) on
// the given layer. layer must be in [0, cfg.TotalLayers).
func classify(s core.Sampler, cfg Config, col, row, layer int) Tile {
	rockChance := float64(cfg.TotalLayers-layer) * cfg.RockCoeff
	iceChance := float64(layer) * cfg.IceCoeff

	r := s.At(float64(col), float64(row), float64(layer))
	typ := TileSnow
	switch {
	case r < rockChance:
		typ = TileRock
	case r < rockChance+iceChance:
		typ = TileIce
	}

	v := s.At(float64(col)+cfg.VariantOffset, float64(row)+cfg.VariantOffset, float64(layer))
	variant := int(math.Floor(v * float64(cfg.VariantCount)))
	if variant >= cfg.VariantCount {
		variant = cfg.VariantCount - 1
	}

	return Tile{
		Type:     typ,
		Altitude: layer*cfg.LayerHeight + row*cfg.TileSize,
		Color:    colorBucket(cfg, layer),
		Variant:  variant,
	}
}

// colorBucket maps a layer onto its cosmetic bucket; higher layers land in
// higher (whiter) buckets.
func colorBucket(cfg Config, layer int) int {
	return int(math.Floor(float64(layer) / float64(cfg.TotalLayers) * float64(cfg.ColorBuckets)))
}
