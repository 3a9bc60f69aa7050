package game

import (
	"math"
	"testing"
)

// place is a test helper that fills a cell with a fresh bubble.
func place(t *testing.T, g *Grid, row, col int, color BubbleColor) {
	t.Helper()
	if !g.Place(row, col, NewGridBubble(g, row, col, color)) {
		t.Fatalf("Place(%d, %d) failed", row, col)
	}
}

// TestColsInRow tests the staggered row widths
func TestColsInRow(t *testing.T) {
	g := NewGrid(12, 8, 20)

	if g.ColsInRow(0) != 8 {
		t.Errorf("Expected 8 cols in row 0, got %d", g.ColsInRow(0))
	}
	if g.ColsInRow(1) != 7 {
		t.Errorf("Expected 7 cols in row 1, got %d", g.ColsInRow(1))
	}
	if g.ColsInRow(2) != 8 {
		t.Errorf("Expected 8 cols in row 2, got %d", g.ColsInRow(2))
	}
}

// TestIsValid tests cell address validation including the short odd rows
func TestIsValid(t *testing.T) {
	g := NewGrid(12, 8, 20)

	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{0, 7, true},
		{0, 8, false},
		{1, 6, true},
		{1, 7, false}, // odd rows hold one less
		{11, 0, true},
		{12, 0, false},
		{-1, 0, false},
		{0, -1, false},
	}

	for _, c := range cases {
		if got := g.IsValid(c.row, c.col); got != c.want {
			t.Errorf("IsValid(%d, %d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
}

// TestPixelRoundTrip tests that every cell center maps back to its own cell
func TestPixelRoundTrip(t *testing.T) {
	g := NewGrid(12, 8, 20)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.ColsInRow(row); col++ {
			x, y := g.GridToPixel(row, col)
			r, c := g.PixelToGrid(x, y)
			if r != row || c != col {
				t.Errorf("Round trip (%d, %d) -> (%.1f, %.1f) -> (%d, %d)", row, col, x, y, r, c)
			}
		}
	}
}

// TestPixelRoundTripWithJitter tests round trips from slightly off-center points
func TestPixelRoundTripWithJitter(t *testing.T) {
	g := NewGrid(12, 8, 20)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.ColsInRow(row); col++ {
			x, y := g.GridToPixel(row, col)
			r, c := g.PixelToGrid(x+3, y-3)
			if r != row || c != col {
				t.Errorf("Jittered round trip (%d, %d) mapped to (%d, %d)", row, col, r, c)
			}
		}
	}
}

// TestNeighborDistance tests that all adjacent cells sit exactly 2r apart
func TestNeighborDistance(t *testing.T) {
	g := NewGrid(12, 8, 20)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.ColsInRow(row); col++ {
			x1, y1 := g.GridToPixel(row, col)
			for _, n := range g.Adjacent(row, col) {
				x2, y2 := g.GridToPixel(n.Row, n.Col)
				d := math.Hypot(x2-x1, y2-y1)
				if math.Abs(d-2*g.BubbleRadius) > 1e-9 {
					t.Errorf("Distance (%d,%d)-(%d,%d) = %.6f, want %.6f",
						row, col, n.Row, n.Col, d, 2*g.BubbleRadius)
				}
			}
		}
	}
}

// TestAdjacentSymmetry tests that the neighbor relation is symmetric
func TestAdjacentSymmetry(t *testing.T) {
	g := NewGrid(12, 8, 20)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.ColsInRow(row); col++ {
			for _, n := range g.Adjacent(row, col) {
				back := false
				for _, m := range g.Adjacent(n.Row, n.Col) {
					if m.Row == row && m.Col == col {
						back = true
						break
					}
				}
				if !back {
					t.Errorf("(%d,%d) lists (%d,%d) as neighbor but not vice versa",
						row, col, n.Row, n.Col)
				}
			}
		}
	}
}

// TestAdjacentInteriorCount tests that interior cells have six neighbors
func TestAdjacentInteriorCount(t *testing.T) {
	g := NewGrid(12, 8, 20)

	if n := len(g.Adjacent(5, 3)); n != 6 {
		t.Errorf("Interior even-row cell has %d neighbors, want 6", n)
	}
	if n := len(g.Adjacent(4, 3)); n != 6 {
		t.Errorf("Interior even-row cell has %d neighbors, want 6", n)
	}
	// Corner cell has far fewer
	if n := len(g.Adjacent(0, 0)); n >= 6 {
		t.Errorf("Corner cell has %d neighbors, want fewer than 6", n)
	}
}

// TestPlaceRejectsOccupied tests the one-bubble-per-cell invariant
func TestPlaceRejectsOccupied(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 0, ColorRed)
	if g.Place(0, 0, NewGridBubble(g, 0, 0, ColorBlue)) {
		t.Error("Place should reject an occupied cell")
	}
	if g.At(0, 0).Color != ColorRed {
		t.Error("Occupant should be unchanged after rejected Place")
	}
}

// TestPlaceRejectsInvalid tests placement outside the lattice
func TestPlaceRejectsInvalid(t *testing.T) {
	g := NewGrid(12, 8, 20)

	if g.Place(1, 7, NewGridBubble(g, 1, 0, ColorRed)) {
		t.Error("Place should reject the unused trailing slot of an odd row")
	}
	if g.Place(-1, 0, NewGridBubble(g, 0, 0, ColorRed)) {
		t.Error("Place should reject a negative row")
	}
}

// TestRemove tests removal and the NoCell sentinel
func TestRemove(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 2, 3, ColorGreen)
	b := g.Remove(2, 3)
	if b == nil {
		t.Fatal("Remove returned nil for an occupied cell")
	}
	if b.Row != NoCell || b.Col != NoCell {
		t.Errorf("Removed bubble should carry NoCell, got (%d, %d)", b.Row, b.Col)
	}
	if g.At(2, 3) != nil {
		t.Error("Cell should be empty after Remove")
	}
	if g.Remove(2, 3) != nil {
		t.Error("Removing an empty cell should return nil")
	}
}

// TestCountAndIsEmpty tests occupancy bookkeeping
func TestCountAndIsEmpty(t *testing.T) {
	g := NewGrid(12, 8, 20)

	if !g.IsEmpty() {
		t.Error("New grid should be empty")
	}
	place(t, g, 0, 0, ColorRed)
	place(t, g, 1, 1, ColorBlue)
	if g.Count() != 2 {
		t.Errorf("Expected count 2, got %d", g.Count())
	}
	if g.IsEmpty() {
		t.Error("Grid with bubbles should not be empty")
	}
}

// TestColorsPresent tests the distinct color inventory
func TestColorsPresent(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 0, ColorBlue)
	place(t, g, 0, 1, ColorBlue)
	place(t, g, 0, 2, ColorRed)

	colors := g.ColorsPresent()
	if len(colors) != 2 {
		t.Fatalf("Expected 2 distinct colors, got %d", len(colors))
	}
	if colors[0] != ColorRed || colors[1] != ColorBlue {
		t.Errorf("Expected [red blue] in palette order, got %v", colors)
	}
}
