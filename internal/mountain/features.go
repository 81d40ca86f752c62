package mountain

import (
	"math"

	"sled-mountain/internal/core"
	pkgcore "sled-mountain/pkg/core"
)

// Salts keep each placer's sample stream apart from the classifier's.
const (
	rampRowSalt     = 101
	rampStrideSalt  = 211
	treeColSalt     = 307
	treeRowSalt     = 401
	obstacleColSalt = 503
	obstacleRowSalt = 601
)

// placeRamps stamps ramp patches along the layer at seed-jittered intervals.
// Ramps overwrite whatever the classifier wrote. It returns the number of
// patches stamped.
func placeRamps(grid *core.Grid[Tile], s pkgcore.Sampler, cfg Config, layer int) int {
	patches := 0
	col := cfg.RampStartColumn
	for col < grid.W {
		row := 0
		if span := grid.H - cfg.RampRows + 1; span > 1 {
			row = int(math.Floor(s.At(float64(col), rampRowSalt, float64(layer)) * float64(span)))
			if row >= span {
				row = span - 1
			}
		}
		for dc := 0; dc < cfg.RampColumns; dc++ {
			for dr := 0; dr < cfg.RampRows; dr++ {
				tile, ok := grid.At(col+dc, row+dr)
				if !ok {
					continue
				}
				tile.Type = TileRamp
				grid.Set(col+dc, row+dr, tile)
			}
		}
		patches++

		advance := cfg.RampStride + int(math.Floor(s.At(float64(col), rampStrideSalt, float64(layer))*float64(cfg.RampStrideJitter)))
		if advance < 1 {
			advance = 1
		}
		col += advance
	}
	return patches
}

// placeObstacles scatters trees (fewer higher up) and rock obstacles (more
// higher up). A unit only lands on a tile that is still plain snow, so ramps,
// ice, rock and earlier units are never replaced.
func placeObstacles(grid *core.Grid[Tile], s pkgcore.Sampler, cfg Config, layer int) (trees, obstacles int) {
	trees = scatter(grid, s, layer, cfg.TreeCount(layer), treeColSalt, treeRowSalt, TileTree)
	obstacles = scatter(grid, s, layer, cfg.ObstacleCount(layer), obstacleColSalt, obstacleRowSalt, TileObstacle)
	return trees, obstacles
}

func scatter(grid *core.Grid[Tile], s pkgcore.Sampler, layer, count int, colSalt, rowSalt float64, typ TileType) int {
	placed := 0
	for i := 0; i < count; i++ {
		col := int(math.Floor(s.At(float64(i), colSalt, float64(layer)) * float64(grid.W)))
		row := int(math.Floor(s.At(rowSalt, float64(i), float64(layer)) * float64(grid.H)))
		tile, ok := grid.At(col, row)
		if !ok || tile.Type != TileSnow {
			continue
		}
		tile.Type = typ
		grid.Set(col, row, tile)
		placed++
	}
	return placed
}
