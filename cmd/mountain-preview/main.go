package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sled-mountain/internal/app"
	"sled-mountain/internal/mountain"
	"sled-mountain/internal/render"
)

var glyphs = [mountain.TileTypeCount]rune{
	mountain.TileSnow:     '.',
	mountain.TileIce:      '~',
	mountain.TileRock:     '^',
	mountain.TileTree:     'T',
	mountain.TileRamp:     '/',
	mountain.TileObstacle: '#',
}

func main() {
	flags := app.NewConfig()
	flags.Bind(flag.CommandLine)
	layer := flag.Int("layer", -1, "layer to print (-1 prints every layer, summit first)")
	width := flag.Int("width", 120, "maximum columns per row")
	plain := flag.Bool("plain", false, "disable colors")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	m, err := mountain.New(flags.Seed, cfg.Mountain)
	if err != nil {
		log.Fatalf("build mountain: %v", err)
	}

	styles := newStyles(m, *plain)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fmt.Println(title.Render(header(m)))

	layers := m.Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		if *layer >= 0 && i != *layer {
			continue
		}
		l := layers[i]
		fmt.Printf("layer %d  y=[%d,%d)  circumference=%d\n", i, l.HeightRange().Min, l.HeightRange().Max, l.Circumference())
		fmt.Println(renderLayer(m, i, *width, styles))
	}
}

func header(m *mountain.Mountain) string {
	s := m.Sampler()
	return fmt.Sprintf("seed %q (hash %d), %d layers, sampler %s", m.Seed(), s.Hash(), len(m.Layers()), s.Kind())
}

// tileStyles holds one style per tile type and color bucket.
type tileStyles struct {
	plain   bool
	buckets int
	styles  []lipgloss.Style
}

func newStyles(m *mountain.Mountain, plain bool) tileStyles {
	view := mountain.NewView(m)
	palette := view.Palette()
	s := tileStyles{plain: plain, buckets: m.Config().ColorBuckets}
	if plain {
		return s
	}
	s.styles = make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		s.styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(c)))
	}
	return s
}

func (s tileStyles) render(tile mountain.Tile) string {
	glyph := string(glyphs[tile.Type])
	if s.plain {
		return glyph
	}
	return s.styles[1+int(tile.Type)*s.buckets+tile.Color].Render(glyph)
}

// renderLayer prints a layer through TileAt, top row first. Columns beyond
// maxCols are cut. Each column is sampled at its left edge, which always lies
// inside the circumference even when the last column is partial.
func renderLayer(m *mountain.Mountain, index, maxCols int, styles tileStyles) string {
	l, ok := m.Layer(index)
	if !ok {
		return ""
	}
	cols := l.Width()
	if maxCols > 0 && cols > maxCols {
		cols = maxCols
	}
	ts := float64(l.TileSize())
	var b strings.Builder
	for row := l.Height() - 1; row >= 0; row-- {
		y := float64(l.HeightRange().Min) + (float64(row)+0.5)*ts
		for col := 0; col < cols; col++ {
			tile, ok := m.TileAt(float64(col)*ts, y, index)
			if !ok {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(styles.render(tile))
		}
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
