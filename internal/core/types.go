package core

import "image/color"

// Size describes the dimensions of a cell grid.
type Size struct {
	W int
	H int
}

// Scene is the minimal contract the viewer needs to draw a grid of palette
// indices.
type Scene interface {
	Name() string
	Size() Size
	Cells() []uint8
	Palette() []color.RGBA
}
