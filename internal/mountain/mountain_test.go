package mountain

import (
	"bytes"
	"errors"
	"log"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"

	"sled-mountain/internal/core"
	pkgcore "sled-mountain/pkg/core"
)

func mustNew(t *testing.T, seed string, cfg Config) *Mountain {
	t.Helper()
	m, err := New(seed, cfg)
	if err != nil {
		t.Fatalf("New(%q): %v", seed, err)
	}
	return m
}

func TestEndToEndDefaultMountain(t *testing.T) {
	m := mustNew(t, "test", DefaultConfig())

	if got := len(m.Layers()); got != 10 {
		t.Fatalf("len(Layers()) = %d, want 10", got)
	}
	bottom, _ := m.Layer(0)
	top, _ := m.Layer(9)
	if bottom.Circumference() <= top.Circumference() {
		t.Fatalf("layer 0 circumference %d should exceed layer 9 circumference %d", bottom.Circumference(), top.Circumference())
	}
	for y, want := range map[float64]int{50: 0, 250: 1, 450: 2} {
		if got := m.LayerIndexForY(y); got != want {
			t.Fatalf("LayerIndexForY(%v) = %d, want %d", y, got, want)
		}
	}
}

func TestNewDeterministic(t *testing.T) {
	for _, kind := range []pkgcore.SamplerKind{pkgcore.SamplerTrig, pkgcore.SamplerHash} {
		cfg := DefaultConfig()
		cfg.Sampler = kind
		a := mustNew(t, "determinism", cfg)
		b := mustNew(t, "determinism", cfg)
		for i, la := range a.Layers() {
			lb, _ := b.Layer(i)
			if !slices.Equal(la.Tiles(), lb.Tiles()) {
				t.Fatalf("%s: layer %d differs between identical builds", kind, i)
			}
		}
		for x := -200.0; x < 600; x += 17 {
			ta, okA := a.TileAt(x, 1234, 6)
			tb, okB := b.TileAt(x, 1234, 6)
			if okA != okB || ta != tb {
				t.Fatalf("%s: TileAt(%v,1234,6) differs: %+v/%v vs %+v/%v", kind, x, ta, okA, tb, okB)
			}
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	a := mustNew(t, "alpha", DefaultConfig())
	b := mustNew(t, "bravo", DefaultConfig())
	differs := false
	for layer := 0; layer < 10 && !differs; layer++ {
		la, _ := a.Layer(layer)
		lb, _ := b.Layer(layer)
		for i, tile := range la.Tiles() {
			if lb.Tiles()[i].Type != tile.Type {
				differs = true
				break
			}
		}
	}
	if !differs {
		t.Fatal("different seeds produced identical tile types everywhere")
	}
}

func TestBlankSeedUsesDefault(t *testing.T) {
	m := mustNew(t, "   ", DefaultConfig())
	if m.Seed() != DefaultSeed {
		t.Fatalf("Seed() = %q, want %q", m.Seed(), DefaultSeed)
	}
	kept := mustNew(t, " padded ", DefaultConfig())
	if kept.Seed() != " padded " {
		t.Fatalf("non-blank seed should be kept verbatim, got %q", kept.Seed())
	}
}

func TestLayerGeometry(t *testing.T) {
	cfg := DefaultConfig()
	m := mustNew(t, "geometry", cfg)
	layers := m.Layers()
	for i, l := range layers {
		if l.Index() != i {
			t.Fatalf("layer %d reports index %d", i, l.Index())
		}
		if want := (l.Circumference() + cfg.TileSize - 1) / cfg.TileSize; l.Width() != want {
			t.Fatalf("layer %d width = %d, want %d", i, l.Width(), want)
		}
		if want := (cfg.LayerHeight + cfg.TileSize - 1) / cfg.TileSize; l.Height() != want {
			t.Fatalf("layer %d height = %d, want %d", i, l.Height(), want)
		}
		if i == 0 && l.HeightRange().Min != 0 {
			t.Fatalf("lowest layer starts at %d, want 0", l.HeightRange().Min)
		}
		if i+1 < len(layers) {
			next := layers[i+1]
			if l.Circumference() <= next.Circumference() {
				t.Fatalf("circumference not strictly decreasing at layer %d: %d <= %d", i, l.Circumference(), next.Circumference())
			}
			if l.HeightRange().Max != next.HeightRange().Min {
				t.Fatalf("height gap between layers %d and %d: %d != %d", i, i+1, l.HeightRange().Max, next.HeightRange().Min)
			}
		}
	}
	last := layers[len(layers)-1]
	if got := last.HeightRange().Max; got != cfg.TotalLayers*cfg.LayerHeight {
		t.Fatalf("top of mountain = %d, want %d", got, cfg.TotalLayers*cfg.LayerHeight)
	}
}

func TestTileAtWrapsHorizontally(t *testing.T) {
	m := mustNew(t, "wrap", DefaultConfig())
	for _, l := range m.Layers() {
		c := float64(l.Circumference())
		ts := float64(l.TileSize())
		y := float64(l.HeightRange().Min) + ts*1.5
		for col := 0; col < l.Width(); col++ {
			x := float64(col) * ts
			base, ok := m.TileAt(x, y, l.Index())
			if !ok {
				t.Fatalf("layer %d: TileAt(%v,%v) missing", l.Index(), x, y)
			}
			for _, shifted := range []float64{x + c, x - c, x + 3*c} {
				got, ok := m.TileAt(shifted, y, l.Index())
				if !ok || got != base {
					t.Fatalf("layer %d: TileAt(%v) = %+v, want %+v (same as x=%v)", l.Index(), shifted, got, base, x)
				}
			}
			wrapped, _ := l.TileAt(col+l.Width(), 1)
			direct, _ := l.TileAt(col, 1)
			if wrapped != direct {
				t.Fatalf("layer %d: column %d differs from column %d", l.Index(), col+l.Width(), col)
			}
		}
	}
}

func TestTileAtNegativeXWrapsToFarEdge(t *testing.T) {
	m := mustNew(t, "negative", DefaultConfig())
	l, _ := m.Layer(3)
	y := float64(l.HeightRange().Min) + 1
	got, ok := m.TileAt(-1, y, 3)
	if !ok {
		t.Fatal("negative x should wrap, not be absent")
	}
	want, _ := m.TileAt(float64(l.Circumference())-1, y, 3)
	if got != want {
		t.Fatalf("TileAt(-1) = %+v, want %+v", got, want)
	}
}

func TestTileAtAbsentCases(t *testing.T) {
	m := mustNew(t, "absent", DefaultConfig())
	l, _ := m.Layer(2)
	inside := float64(l.HeightRange().Min) + 5
	rows := float64(l.Height() * l.TileSize())

	tests := []struct {
		name  string
		x, y  float64
		layer int
	}{
		{name: "negative layer", x: 0, y: inside, layer: -1},
		{name: "layer past top", x: 0, y: inside, layer: 10},
		{name: "below layer rows", x: 0, y: float64(l.HeightRange().Min) - 1, layer: 2},
		{name: "above layer rows", x: 0, y: float64(l.HeightRange().Min) + rows, layer: 2},
		{name: "nan x", x: math.NaN(), y: inside, layer: 2},
		{name: "infinite y", x: 0, y: math.Inf(1), layer: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tile, ok := m.TileAt(tt.x, tt.y, tt.layer); ok {
				t.Fatalf("expected no tile, got %+v", tile)
			}
		})
	}
}

func TestTileAtAltitudeMatchesRow(t *testing.T) {
	m := mustNew(t, "altitude", DefaultConfig())
	for _, l := range m.Layers() {
		for row := 0; row < l.Height(); row++ {
			y := float64(l.HeightRange().Min + row*l.TileSize())
			tile, ok := m.TileAt(0, y, l.Index())
			if !ok {
				t.Fatalf("layer %d row %d missing", l.Index(), row)
			}
			if want := l.Index()*200 + row*32; tile.Altitude != want {
				t.Fatalf("layer %d row %d altitude = %d, want %d", l.Index(), row, tile.Altitude, want)
			}
		}
	}
}

func TestLayerIndexForYContainment(t *testing.T) {
	m := mustNew(t, "contain", DefaultConfig())
	for i, l := range m.Layers() {
		r := l.HeightRange()
		if got := m.LayerIndexForY(float64(r.Min)); got != i {
			t.Fatalf("LayerIndexForY(%d) = %d, want %d", r.Min, got, i)
		}
		if got := m.LayerIndexForY(float64(r.Max - 1)); got != i {
			t.Fatalf("LayerIndexForY(%d) = %d, want %d", r.Max-1, got, i)
		}
	}
	if got := m.LayerIndexForY(-100); got != 0 {
		t.Fatalf("LayerIndexForY(-100) = %d, want 0", got)
	}
	if got := m.LayerIndexForY(1e12); got != 9 {
		t.Fatalf("LayerIndexForY(1e12) = %d, want 9", got)
	}
	if got := m.LayerIndexForY(2000); got != 9 {
		t.Fatalf("LayerIndexForY(top edge) = %d, want 9", got)
	}
}

func TestTransitionToLayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalLayers = 2
	cfg.BaseCircumference = 2000
	cfg.ShrinkFactor = 1
	m := mustNew(t, "transition", cfg)

	l0, _ := m.Layer(0)
	l1, _ := m.Layer(1)
	if l0.Circumference() != 2000 || l1.Circumference() != 1000 {
		t.Fatalf("circumferences = %d/%d, want 2000/1000", l0.Circumference(), l1.Circumference())
	}

	x, y := m.TransitionToLayer(500, 199, 0, 1)
	if x != 250 {
		t.Fatalf("climbing x = %v, want 250", x)
	}
	if y != 210 {
		t.Fatalf("climbing y = %v, want 210", y)
	}

	x, y = m.TransitionToLayer(250, 201, 1, 0)
	if x != 500 {
		t.Fatalf("descending x = %v, want 500", x)
	}
	if y != 190 {
		t.Fatalf("descending y = %v, want 190", y)
	}

	for _, pair := range [][2]int{{-1, 0}, {0, 2}, {5, 7}} {
		x, y := m.TransitionToLayer(123, 45, pair[0], pair[1])
		if x != 123 || y != 45 {
			t.Fatalf("invalid transition %v moved to (%v,%v)", pair, x, y)
		}
	}
}

func TestObstaclePassNeverClobbers(t *testing.T) {
	for _, seed := range []string{"test", "clobber", "a", "zz-top"} {
		m := mustNew(t, seed, DefaultConfig())
		cfg := m.Config()
		for _, l := range m.Layers() {
			pre := core.NewGrid[Tile](l.Width(), l.Height())
			for row := 0; row < pre.H; row++ {
				for col := 0; col < pre.W; col++ {
					pre.Set(col, row, classify(m.sampler, cfg, col, row, l.Index()))
				}
			}
			placeRamps(pre, m.sampler, cfg, l.Index())

			for i, before := range pre.Cells() {
				after := l.grid.Cells()[i]
				if before.Type != TileSnow && after.Type != before.Type {
					t.Fatalf("seed %q layer %d cell %d: %s overwritten by %s", seed, l.Index(), i, before.Type, after.Type)
				}
				if after.Type != before.Type && !after.Type.Hazard() {
					t.Fatalf("seed %q layer %d cell %d: unexpected change %s -> %s", seed, l.Index(), i, before.Type, after.Type)
				}
			}
		}
	}
}

func TestVegetationThinsAndHazardsGrowWithAltitude(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TreeCount(0) <= cfg.TreeCount(9) {
		t.Fatalf("tree count should fall with altitude: %d vs %d", cfg.TreeCount(0), cfg.TreeCount(9))
	}
	if cfg.ObstacleCount(0) >= cfg.ObstacleCount(9) {
		t.Fatalf("obstacle count should rise with altitude: %d vs %d", cfg.ObstacleCount(0), cfg.ObstacleCount(9))
	}
	if cfg.TreeCount(100) != 0 {
		t.Fatalf("tree count should clamp at zero, got %d", cfg.TreeCount(100))
	}

	m := mustNew(t, "forest", cfg)
	bottom, _ := m.Layer(0)
	top, _ := m.Layer(9)
	if bottom.Count(TileTree) <= top.Count(TileTree) {
		t.Fatalf("expected more trees low on the mountain: %d vs %d", bottom.Count(TileTree), top.Count(TileTree))
	}
	if bottom.Count(TileObstacle) >= top.Count(TileObstacle) {
		t.Fatalf("expected more obstacles high on the mountain: %d vs %d", bottom.Count(TileObstacle), top.Count(TileObstacle))
	}
	if bottom.Count(TileTree) != bottom.PlacedTrees() {
		t.Fatalf("placed trees %d disagree with count %d", bottom.PlacedTrees(), bottom.Count(TileTree))
	}
}

func TestRampsStampedAcrossLayer(t *testing.T) {
	m := mustNew(t, "ramps", DefaultConfig())
	for _, l := range m.Layers() {
		if l.RampPatches() == 0 {
			t.Fatalf("layer %d has no ramp patches", l.Index())
		}
		if l.Count(TileRamp) == 0 {
			t.Fatalf("layer %d has no ramp tiles", l.Index())
		}
	}

	cfg := DefaultConfig()
	cfg.RampStartColumn = 1 << 20
	flat := mustNew(t, "ramps", cfg)
	for _, l := range flat.Layers() {
		if n := l.Count(TileRamp); n != 0 {
			t.Fatalf("ramps disabled but layer %d has %d ramp tiles", l.Index(), n)
		}
	}
}

func TestStatsCountEveryTile(t *testing.T) {
	m := mustNew(t, "stats", DefaultConfig())
	for _, s := range m.Stats() {
		total := 0
		for _, n := range s.Counts {
			total += n
		}
		if total != s.Width*s.Height {
			t.Fatalf("layer %d counts %d tiles, want %d", s.Index, total, s.Width*s.Height)
		}
	}
}

func TestConcurrentReaders(t *testing.T) {
	m := mustNew(t, "concurrent", DefaultConfig())
	want := make([]Tile, 0, 64)
	for x := 0; x < 64; x++ {
		tile, _ := m.TileAt(float64(x*32), 10, 0)
		want = append(want, tile)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := 0; x < 64; x++ {
				if tile, _ := m.TileAt(float64(x*32), 10, 0); tile != want[x] {
					errs <- "concurrent read disagreed"
					return
				}
				m.LayerIndexForY(float64(x * 40))
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalLayers = 0
	if _, err := New("x", cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestWithLoggerSummarizesLayers(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	if _, err := New("logged", DefaultConfig(), WithLogger(logger)); err != nil {
		t.Fatalf("New: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 summary lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "layer 0: circumference=4000") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}
