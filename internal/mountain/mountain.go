package mountain

import (
	"fmt"
	"log"
	"math"
	"strings"

	"sled-mountain/pkg/core"
)

// DefaultSeed is used when a caller supplies an empty or blank seed.
const DefaultSeed = "prototype"

// TransitionMargin is how far inside the target band a transition places the
// rider, so the same boundary is not crossed again on the next tick.
const TransitionMargin = 10

// Mountain is the full stack of layers generated from one seed. It is built
// once per run and only read afterwards, so concurrent readers need no
// locking.
type Mountain struct {
	seed    string
	cfg     Config
	sampler core.Sampler
	layers  []*Layer
}

// Option customizes construction.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger logs a summary line per generated layer.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NormalizeSeed replaces blank seeds with DefaultSeed. Non-blank seeds are
// kept verbatim.
func NormalizeSeed(seed string) string {
	if strings.TrimSpace(seed) == "" {
		return DefaultSeed
	}
	return seed
}

// New builds every layer of the mountain for the seed. Errors are reserved
// for invalid construction constants and wrap ErrInvalidConfig.
func New(seed string, cfg Config, opts ...Option) (*Mountain, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kind, err := core.ParseSamplerKind(string(cfg.Sampler))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Sampler = kind

	seed = NormalizeSeed(seed)
	m := &Mountain{
		seed:    seed,
		cfg:     cfg,
		sampler: core.NewSampler(seed, kind),
		layers:  make([]*Layer, 0, cfg.TotalLayers),
	}
	for i := 0; i < cfg.TotalLayers; i++ {
		l := buildLayer(m.sampler, cfg, i, cfg.Circumference(i), cfg.Heights(i))
		m.layers = append(m.layers, l)
		if o.logger != nil {
			o.logger.Printf("layer %d: circumference=%d grid=%dx%d ramps=%d trees=%d obstacles=%d",
				i, l.circumference, l.Width(), l.Height(), l.ramps, l.trees, l.obstacles)
		}
	}
	return m, nil
}

// Seed returns the normalized seed the mountain was built from.
func (m *Mountain) Seed() string { return m.seed }

// Sampler returns the seeded sampler every layer was built from.
func (m *Mountain) Sampler() core.Sampler { return m.sampler }

// Config returns the construction constants.
func (m *Mountain) Config() Config { return m.cfg }

// Layers returns the layers from lowest to highest in a fresh slice.
func (m *Mountain) Layers() []*Layer {
	return append([]*Layer(nil), m.layers...)
}

// Layer returns the layer at index, or false when the index is out of range.
func (m *Mountain) Layer(index int) (*Layer, bool) {
	if index < 0 || index >= len(m.layers) {
		return nil, false
	}
	return m.layers[index], true
}

// TileAt returns the tile covering world position (x, y) on the given layer.
// x wraps around the layer's circumference; y is absolute and must fall
// within the layer's rows. Anything else reports false.
func (m *Mountain) TileAt(x, y float64, layer int) (Tile, bool) {
	l, ok := m.Layer(layer)
	if !ok || !finite(x) || !finite(y) {
		return Tile{}, false
	}
	ts := float64(l.tileSize)
	relY := y - float64(l.heights.Min)
	if relY < 0 || relY >= float64(l.Height())*ts {
		return Tile{}, false
	}
	row := int(math.Floor(relY / ts))

	c := float64(l.circumference)
	wx := math.Mod(x, c)
	if wx < 0 {
		wx += c
	}
	if wx >= c {
		wx = 0
	}
	col := int(math.Floor(wx / ts))
	return l.TileAt(col, row)
}

// LayerIndexForY returns the layer whose band contains y. Positions below
// the mountain clamp to layer 0 and positions above it clamp to the top
// layer.
func (m *Mountain) LayerIndexForY(y float64) int {
	for i, l := range m.layers {
		if l.heights.Contains(y) {
			return i
		}
	}
	if n := len(m.layers); n > 0 && y >= float64(m.layers[n-1].heights.Max) {
		return n - 1
	}
	return 0
}

// TransitionToLayer remaps a position crossing from one layer into another.
// x is rescaled by the circumference ratio so the angular position around
// the mountain is kept; y snaps TransitionMargin pixels inside the target
// band. Invalid indices leave the position unchanged.
func (m *Mountain) TransitionToLayer(x, y float64, from, to int) (float64, float64) {
	src, ok := m.Layer(from)
	if !ok {
		return x, y
	}
	dst, ok := m.Layer(to)
	if !ok || from == to {
		return x, y
	}
	newX := x * float64(dst.circumference) / float64(src.circumference)
	if to > from {
		return newX, float64(dst.heights.Min + TransitionMargin)
	}
	return newX, float64(dst.heights.Max - TransitionMargin)
}

// LayerStats summarizes one layer's tile composition.
type LayerStats struct {
	Index         int
	Circumference int
	Width         int
	Height        int
	Counts        [TileTypeCount]int
}

// Stats returns per-layer tile counts from lowest to highest.
func (m *Mountain) Stats() []LayerStats {
	stats := make([]LayerStats, 0, len(m.layers))
	for _, l := range m.layers {
		s := LayerStats{
			Index:         l.index,
			Circumference: l.circumference,
			Width:         l.Width(),
			Height:        l.Height(),
		}
		for _, tile := range l.grid.Cells() {
			if tile.Type.Valid() {
				s.Counts[tile.Type]++
			}
		}
		stats = append(stats, s)
	}
	return stats
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
