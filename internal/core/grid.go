package core

// Grid stores a 2D grid of cells in row-major order. Columns wrap around like
// the surface of a cylinder; rows are bounded.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// WrapX applies cylindrical wrapping to a column index.
func (g *Grid[T]) WrapX(x int) int {
	return (x%g.W + g.W) % g.W
}

// RowInBounds reports whether y addresses an existing row.
func (g *Grid[T]) RowInBounds(y int) bool {
	return y >= 0 && y < g.H
}

// At returns the cell at (x, y) with x wrapped. Rows outside the grid report
// false.
func (g *Grid[T]) At(x, y int) (T, bool) {
	if !g.RowInBounds(y) {
		var zero T
		return zero, false
	}
	return g.data[g.Index(g.WrapX(x), y)], true
}

// Set writes the cell at (x, y) with x wrapped. It reports false and leaves
// the grid untouched when y is out of range.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if !g.RowInBounds(y) {
		return false
	}
	g.data[g.Index(g.WrapX(x), y)] = v
	return true
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}
