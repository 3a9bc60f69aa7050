package game

import "testing"

// TestChooseTargetPrefersSameColor tests attachment next to a matching bubble
func TestChooseTargetPrefersSameColor(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 0, ColorRed)
	place(t, g, 0, 4, ColorBlue)

	cell := ChooseTarget(g, ColorRed)

	// The bottom-up scan reaches row 1 before row 0, and (1,0) touches the
	// red bubble at (0,0)
	if cell.Row != 1 || cell.Col != 0 {
		t.Errorf("Expected target (1, 0), got (%d, %d)", cell.Row, cell.Col)
	}
	if g.At(cell.Row, cell.Col) != nil {
		t.Error("Target cell must be empty")
	}
}

// TestChooseTargetFallbackAnyColor tests attachment when no color match exists
func TestChooseTargetFallbackAnyColor(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 4, ColorBlue)

	cell := ChooseTarget(g, ColorRed)

	// No red on the board; lowest-then-leftmost empty neighbor of (0,4) wins
	if cell.Row != 1 || cell.Col != 3 {
		t.Errorf("Expected fallback target (1, 3), got (%d, %d)", cell.Row, cell.Col)
	}
}

// TestChooseTargetEmptyGrid tests the ceiling center default
func TestChooseTargetEmptyGrid(t *testing.T) {
	g := NewGrid(12, 8, 20)

	cell := ChooseTarget(g, ColorGreen)
	if cell.Row != 0 || cell.Col != g.Cols/2 {
		t.Errorf("Expected ceiling center (0, %d), got (%d, %d)", g.Cols/2, cell.Row, cell.Col)
	}
}

// TestChooseTargetDeterministic tests that repeated calls agree
func TestChooseTargetDeterministic(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 2, ColorGreen)
	place(t, g, 1, 2, ColorGreen)
	place(t, g, 0, 5, ColorGreen)

	first := ChooseTarget(g, ColorGreen)
	for i := 0; i < 10; i++ {
		if got := ChooseTarget(g, ColorGreen); got != first {
			t.Fatalf("ChooseTarget flapped: %v then %v", first, got)
		}
	}
}
