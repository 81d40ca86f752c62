package mountain

import (
	"image/color"
	"math"

	"sled-mountain/internal/core"
)

// SkyIndex is the palette index of cells outside every layer.
const SkyIndex uint8 = 0

var (
	skyColor   = color.RGBA{R: 24, G: 30, B: 48, A: 255}
	summitTint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// View composes every layer of a mountain into one grid of palette indices,
// one cell per tile. The highest layer sits at the top and each layer is
// centred on the widest one, so the cone tapers towards the summit.
type View struct {
	m            *Mountain
	size         core.Size
	rowsPerLayer int
	offsets      []int

	cells    []uint8
	palette  []color.RGBA
	ramps    []float32
	hazards  []float32
	ice      []float32
	altitude []float32
}

// NewView renders m into a composite view.
func NewView(m *Mountain) *View {
	layers := m.Layers()
	width := 0
	for _, l := range layers {
		if l.Width() > width {
			width = l.Width()
		}
	}
	rows := m.cfg.GridHeight()
	v := &View{
		m:            m,
		size:         core.Size{W: width, H: rows * len(layers)},
		rowsPerLayer: rows,
		offsets:      make([]int, len(layers)),
		palette:      buildPalette(m.cfg.ColorBuckets),
	}
	total := v.size.W * v.size.H
	v.cells = make([]uint8, total)
	v.ramps = make([]float32, total)
	v.hazards = make([]float32, total)
	v.ice = make([]float32, total)
	v.altitude = make([]float32, total)

	top := float32(m.cfg.TotalLayers * m.cfg.LayerHeight)
	for _, l := range layers {
		off := (width - l.Width()) / 2
		v.offsets[l.index] = off
		for row := 0; row < l.Height(); row++ {
			vy := v.viewRow(l.index, row)
			for col := 0; col < l.Width(); col++ {
				tile, _ := l.TileAt(col, row)
				idx := vy*width + off + col
				v.cells[idx] = encodeDisplayValue(tile, m.cfg.ColorBuckets)
				v.altitude[idx] = float32(tile.Altitude) / top
				switch {
				case tile.Type == TileRamp:
					v.ramps[idx] = 1
				case tile.Type.Hazard():
					v.hazards[idx] = 1
				case tile.Type == TileIce:
					v.ice[idx] = 1
				}
			}
		}
	}
	return v
}

// Name identifies the scene.
func (v *View) Name() string { return "mountain" }

// Size is the composite grid size in tiles.
func (v *View) Size() core.Size { return v.size }

// Cells returns the palette indices in row-major order.
func (v *View) Cells() []uint8 { return v.cells }

// Palette maps cell values to colors.
func (v *View) Palette() []color.RGBA { return v.palette }

// Mountain returns the model behind the view.
func (v *View) Mountain() *Mountain { return v.m }

// RampMask is 1 on ramp cells.
func (v *View) RampMask() []float32 { return v.ramps }

// HazardMask is 1 on trees and obstacles.
func (v *View) HazardMask() []float32 { return v.hazards }

// IceMask is 1 on ice cells.
func (v *View) IceMask() []float32 { return v.ice }

// AltitudeField is each cell's altitude normalized to the mountain's height,
// 0 for sky.
func (v *View) AltitudeField() []float32 { return v.altitude }

// Locate maps a world position on a layer to its view cell.
func (v *View) Locate(x, y float64, layer int) (int, int, bool) {
	l, ok := v.m.Layer(layer)
	if !ok || !finite(x) || !finite(y) {
		return 0, 0, false
	}
	ts := float64(l.tileSize)
	relY := y - float64(l.heights.Min)
	if relY < 0 || relY >= float64(l.Height())*ts {
		return 0, 0, false
	}
	c := float64(l.circumference)
	wx := math.Mod(x, c)
	if wx < 0 {
		wx += c
	}
	col := int(math.Floor(wx / ts))
	if col >= l.Width() {
		col = l.Width() - 1
	}
	row := int(math.Floor(relY / ts))
	return v.offsets[layer] + col, v.viewRow(layer, row), true
}

func (v *View) viewRow(layer, row int) int {
	fromTop := len(v.offsets) - 1 - layer
	return fromTop*v.rowsPerLayer + (v.rowsPerLayer - 1 - row)
}

func encodeDisplayValue(tile Tile, buckets int) uint8 {
	bucket := tile.Color
	if bucket < 0 {
		bucket = 0
	}
	if bucket >= buckets {
		bucket = buckets - 1
	}
	return uint8(1 + int(tile.Type)*buckets + bucket)
}

func buildPalette(buckets int) []color.RGBA {
	palette := make([]color.RGBA, 1+TileTypeCount*buckets)
	palette[SkyIndex] = skyColor
	for t := 0; t < TileTypeCount; t++ {
		base := tileColor(TileType(t))
		for b := 0; b < buckets; b++ {
			weight := 0.0
			if buckets > 1 {
				weight = 0.45 * float64(b) / float64(buckets-1)
			}
			palette[1+t*buckets+b] = blendColors(base, summitTint, weight)
		}
	}
	return palette
}

func tileColor(t TileType) color.RGBA {
	switch t {
	case TileSnow:
		return color.RGBA{R: 226, G: 232, B: 242, A: 255}
	case TileIce:
		return color.RGBA{R: 140, G: 195, B: 235, A: 255}
	case TileRock:
		return color.RGBA{R: 118, G: 114, B: 122, A: 255}
	case TileTree:
		return color.RGBA{R: 40, G: 100, B: 55, A: 255}
	case TileRamp:
		return color.RGBA{R: 210, G: 160, B: 90, A: 255}
	case TileObstacle:
		return color.RGBA{R: 88, G: 76, B: 70, A: 255}
	default:
		return skyColor
	}
}

func blendColors(base, overlay color.RGBA, overlayWeight float64) color.RGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	w := overlayWeight
	inv := 1 - w
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*w + 0.5)
	}
	return color.RGBA{
		R: mix(base.R, overlay.R),
		G: mix(base.G, overlay.G),
		B: mix(base.B, overlay.B),
		A: mix(base.A, overlay.A),
	}
}
