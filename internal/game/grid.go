package game

import "math"

// RowHeightFactor is the vertical center-to-center distance between adjacent
// rows, in bubble radii. With the half-radius horizontal stagger this gives
// every cell the same 2r center distance to all six neighbors.
var RowHeightFactor = math.Sqrt(3)

// Cell addresses one slot of the staggered hexagonal lattice.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is the staggered hexagonal lattice of bubble slots. Even rows hold
// Cols cells, odd rows Cols-1. Cells are stored row-major in a flat slice;
// the trailing slot of each odd row is never used.
type Grid struct {
	Rows         int
	Cols         int
	BubbleRadius float64

	cells []*Bubble
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int, bubbleRadius float64) *Grid {
	return &Grid{
		Rows:         rows,
		Cols:         cols,
		BubbleRadius: bubbleRadius,
		cells:        make([]*Bubble, rows*cols),
	}
}

// ColsInRow returns the number of usable columns in a row. Odd rows are one
// cell short, which is what staggers the packing.
func (g *Grid) ColsInRow(row int) int {
	if row%2 == 0 {
		return g.Cols
	}
	return g.Cols - 1
}

// IsValid reports whether (row, col) addresses a real cell, respecting the
// row-dependent column count.
func (g *Grid) IsValid(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.ColsInRow(row)
}

// GridToPixel returns the pixel center of a lattice cell. Odd rows are
// shifted right by one radius.
func (g *Grid) GridToPixel(row, col int) (x, y float64) {
	r := g.BubbleRadius
	x = float64(col)*2*r + float64(row%2)*r + r
	y = float64(row)*r*RowHeightFactor + r
	return x, y
}

// PixelToGrid maps a continuous point to the nearest lattice cell by
// rounding. The result is not guaranteed valid (or even in bounds); the
// caller must re-validate with IsValid.
func (g *Grid) PixelToGrid(x, y float64) (row, col int) {
	r := g.BubbleRadius
	row = int(math.Round((y - r) / (r * RowHeightFactor)))
	// Column rounding depends on the parity of the row just computed.
	offset := 0.0
	if row%2 != 0 && row >= 0 {
		offset = r
	}
	col = int(math.Round((x - r - offset) / (2 * r)))
	return row, col
}

// Adjacency offset tables. The up/down columns differ between even rows
// (stagger 0) and odd rows (stagger +r).
var (
	evenRowOffsets = [6][2]int{{0, -1}, {0, 1}, {-1, -1}, {-1, 0}, {1, -1}, {1, 0}}
	oddRowOffsets  = [6][2]int{{0, -1}, {0, 1}, {-1, 0}, {-1, 1}, {1, 0}, {1, 1}}
)

// Adjacent returns the valid neighbors of a cell. Interior cells have six;
// boundary cells fewer.
func (g *Grid) Adjacent(row, col int) []Cell {
	offsets := &evenRowOffsets
	if row%2 != 0 {
		offsets = &oddRowOffsets
	}
	neighbors := make([]Cell, 0, 6)
	for _, o := range offsets {
		nr, nc := row+o[0], col+o[1]
		if g.IsValid(nr, nc) {
			neighbors = append(neighbors, Cell{Row: nr, Col: nc})
		}
	}
	return neighbors
}

// At returns the bubble at a cell, or nil if the cell is empty or invalid.
func (g *Grid) At(row, col int) *Bubble {
	if !g.IsValid(row, col) {
		return nil
	}
	return g.cells[row*g.Cols+col]
}

// Place inserts a bubble at a cell. Returns false if the cell is invalid or
// occupied; the grid never holds two bubbles in one slot.
func (g *Grid) Place(row, col int, b *Bubble) bool {
	if !g.IsValid(row, col) || g.cells[row*g.Cols+col] != nil {
		return false
	}
	b.Row, b.Col = row, col
	b.X, b.Y = g.GridToPixel(row, col)
	g.cells[row*g.Cols+col] = b
	return true
}

// Remove clears a cell and returns the bubble that occupied it, if any.
func (g *Grid) Remove(row, col int) *Bubble {
	if !g.IsValid(row, col) {
		return nil
	}
	b := g.cells[row*g.Cols+col]
	g.cells[row*g.Cols+col] = nil
	if b != nil {
		b.Row, b.Col = NoCell, NoCell
	}
	return b
}

// Bubbles returns all grid-resident bubbles, row-major order.
func (g *Grid) Bubbles() []*Bubble {
	out := make([]*Bubble, 0, len(g.cells))
	for _, b := range g.cells {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.cells {
		if b != nil {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no bubbles remain.
func (g *Grid) IsEmpty() bool {
	return g.Count() == 0
}

// ColorsPresent returns the distinct colors currently on the grid, in
// palette order.
func (g *Grid) ColorsPresent() []BubbleColor {
	var present [PaletteSize]bool
	for _, b := range g.cells {
		if b != nil {
			present[b.Color] = true
		}
	}
	colors := make([]BubbleColor, 0, PaletteSize)
	for c := 0; c < PaletteSize; c++ {
		if present[c] {
			colors = append(colors, BubbleColor(c))
		}
	}
	return colors
}

// FieldWidth is the playfield width in pixels.
func (g *Grid) FieldWidth() float64 {
	return float64(g.Cols) * 2 * g.BubbleRadius
}

// FieldHeight is the playfield height in pixels, including the shooter area
// below the lattice.
func (g *Grid) FieldHeight() float64 {
	return float64(g.Rows)*g.BubbleRadius*RowHeightFactor + 4*g.BubbleRadius
}
