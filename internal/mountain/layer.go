package mountain

import (
	"sled-mountain/internal/core"
	pkgcore "sled-mountain/pkg/core"
)

// HeightRange is the half-open vertical band [Min, Max) owned by a layer.
type HeightRange struct {
	Min int
	Max int
}

// Contains reports whether y falls inside the band.
func (r HeightRange) Contains(y float64) bool {
	return y >= float64(r.Min) && y < float64(r.Max)
}

// Layer is one horizontal band of the mountain: a cylinder of tiles that
// wraps left to right. Layers are read-only once built.
type Layer struct {
	index         int
	circumference int
	heights       HeightRange
	tileSize      int
	grid          *core.Grid[Tile]

	ramps     int
	trees     int
	obstacles int
}

// buildLayer allocates, classifies and decorates a single layer.
func buildLayer(s pkgcore.Sampler, cfg Config, index, circumference int, heights HeightRange) *Layer {
	w := ceilDiv(circumference, cfg.TileSize)
	h := ceilDiv(heights.Max-heights.Min, cfg.TileSize)
	grid := core.NewGrid[Tile](w, h)
	for row := 0; row < grid.H; row++ {
		for col := 0; col < grid.W; col++ {
			grid.Set(col, row, classify(s, cfg, col, row, index))
		}
	}

	l := &Layer{
		index:         index,
		circumference: circumference,
		heights:       heights,
		tileSize:      cfg.TileSize,
		grid:          grid,
	}
	l.ramps = placeRamps(grid, s, cfg, index)
	l.trees, l.obstacles = placeObstacles(grid, s, cfg, index)
	return l
}

// Index is the layer's position, 0 being the lowest and widest.
func (l *Layer) Index() int { return l.index }

// Circumference is the horizontal wrap length in pixels.
func (l *Layer) Circumference() int { return l.circumference }

// HeightRange is the vertical band owned by the layer.
func (l *Layer) HeightRange() HeightRange { return l.heights }

// Width is the number of tile columns.
func (l *Layer) Width() int { return l.grid.W }

// Height is the number of tile rows.
func (l *Layer) Height() int { return l.grid.H }

// TileSize is the edge length of a tile in pixels.
func (l *Layer) TileSize() int { return l.tileSize }

// TileAt returns the tile at grid coordinates. Columns wrap; rows outside the
// layer report false.
func (l *Layer) TileAt(col, row int) (Tile, bool) {
	return l.grid.At(col, row)
}

// Tiles returns a row-major copy of the layer's tiles.
func (l *Layer) Tiles() []Tile {
	return append([]Tile(nil), l.grid.Cells()...)
}

// Count returns how many tiles of the given type the layer holds.
func (l *Layer) Count(t TileType) int {
	n := 0
	for _, tile := range l.grid.Cells() {
		if tile.Type == t {
			n++
		}
	}
	return n
}

// RampPatches is the number of ramp patches stamped on the layer.
func (l *Layer) RampPatches() int { return l.ramps }

// PlacedTrees is the number of trees the obstacle pass managed to place.
func (l *Layer) PlacedTrees() int { return l.trees }

// PlacedObstacles is the number of rock obstacles the obstacle pass managed
// to place.
func (l *Layer) PlacedObstacles() int { return l.obstacles }
