package game

// BubbleColor identifies one entry of the fixed color palette.
type BubbleColor int

const (
	ColorRed BubbleColor = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorOrange

	// PaletteSize is the number of distinct bubble colors.
	PaletteSize = 6
)

// NoCell is the sentinel row/col for a bubble that is not grid-resident
// (the shooter bubble and in-flight projectiles).
const NoCell = -1

// Hex returns the display color for rendering and API responses.
func (c BubbleColor) Hex() string {
	switch c {
	case ColorRed:
		return "#ff3e3e"
	case ColorYellow:
		return "#ffd23e"
	case ColorGreen:
		return "#53ff45"
	case ColorBlue:
		return "#3e9bff"
	case ColorPurple:
		return "#b44dff"
	case ColorOrange:
		return "#ff953e"
	default:
		return "#ffffff"
	}
}

// String returns a human-readable color name for logs and events.
func (c BubbleColor) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// Bubble is a colored game piece. Grid-resident bubbles carry their slot in
// Row/Col; a free bubble (shooter, in flight) uses NoCell for both.
type Bubble struct {
	X, Y      float64
	Color     BubbleColor
	Radius    float64
	Row, Col  int
	IsPopping bool
}

// NewGridBubble creates a bubble placed at a lattice cell, with its pixel
// position derived from the cell.
func NewGridBubble(g *Grid, row, col int, color BubbleColor) *Bubble {
	x, y := g.GridToPixel(row, col)
	return &Bubble{
		X:      x,
		Y:      y,
		Color:  color,
		Radius: g.BubbleRadius,
		Row:    row,
		Col:    col,
	}
}

// NewFreeBubble creates a bubble that is not yet placed in the grid.
func NewFreeBubble(x, y, radius float64, color BubbleColor) *Bubble {
	return &Bubble{
		X:      x,
		Y:      y,
		Color:  color,
		Radius: radius,
		Row:    NoCell,
		Col:    NoCell,
	}
}
