package game

import "testing"

// TestFindColorMatchChain tests that a connected same-color chain is found whole
func TestFindColorMatchChain(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 0, ColorRed)
	place(t, g, 0, 1, ColorRed)
	place(t, g, 0, 2, ColorRed)
	place(t, g, 0, 3, ColorBlue)

	match := g.FindColorMatch(0, 1)
	if len(match) != 3 {
		t.Fatalf("Expected match of 3, got %d", len(match))
	}
	for _, c := range match {
		if g.At(c.Row, c.Col).Color != ColorRed {
			t.Errorf("Match contains non-red cell (%d, %d)", c.Row, c.Col)
		}
	}
}

// TestFindColorMatchPair tests that a two-bubble group is reported as size 2
func TestFindColorMatchPair(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 0, ColorGreen)
	place(t, g, 0, 1, ColorGreen)
	place(t, g, 0, 2, ColorRed)

	match := g.FindColorMatch(0, 0)
	if len(match) != 2 {
		t.Errorf("Expected match of 2, got %d", len(match))
	}
	if len(match) >= MinMatchSize {
		t.Error("A pair must stay below the pop threshold")
	}
}

// TestFindColorMatchAcrossRows tests matching through staggered adjacency
func TestFindColorMatchAcrossRows(t *testing.T) {
	g := NewGrid(12, 8, 20)

	// (0,1) and (1,0)/(1,1) are neighbors across the stagger
	place(t, g, 0, 1, ColorPurple)
	place(t, g, 1, 0, ColorPurple)
	place(t, g, 1, 1, ColorPurple)

	match := g.FindColorMatch(0, 1)
	if len(match) != 3 {
		t.Errorf("Expected cross-row match of 3, got %d", len(match))
	}
}

// TestFindColorMatchEmptyCell tests the nil result for an empty origin
func TestFindColorMatchEmptyCell(t *testing.T) {
	g := NewGrid(12, 8, 20)

	if match := g.FindColorMatch(5, 5); match != nil {
		t.Errorf("Expected nil match for empty cell, got %v", match)
	}
}

// TestFindFloatingAfterBridgeRemoval tests orphan detection when support is cut
func TestFindFloatingAfterBridgeRemoval(t *testing.T) {
	g := NewGrid(12, 8, 20)

	// Vertical chain anchored at the ceiling: (0,0) - (1,0) - (2,0)
	place(t, g, 0, 0, ColorRed)
	place(t, g, 1, 0, ColorBlue)
	place(t, g, 2, 0, ColorGreen)

	if floating := g.FindFloating(); len(floating) != 0 {
		t.Fatalf("Anchored chain should have no floating cells, got %v", floating)
	}

	// Cut the bridge
	g.Remove(1, 0)

	floating := g.FindFloating()
	if len(floating) != 1 {
		t.Fatalf("Expected 1 floating cell, got %d", len(floating))
	}
	if floating[0].Row != 2 || floating[0].Col != 0 {
		t.Errorf("Expected floating cell (2, 0), got (%d, %d)", floating[0].Row, floating[0].Col)
	}
}

// TestFindFloatingCluster tests that a whole disconnected cluster is reported
func TestFindFloatingCluster(t *testing.T) {
	g := NewGrid(12, 8, 20)

	place(t, g, 0, 3, ColorRed)

	// Cluster with no path to row 0
	place(t, g, 4, 2, ColorBlue)
	place(t, g, 4, 3, ColorBlue)
	place(t, g, 5, 2, ColorGreen)

	floating := g.FindFloating()
	if len(floating) != 3 {
		t.Errorf("Expected 3 floating cells, got %d", len(floating))
	}
}

// TestFindFloatingCeilingAlwaysSupported tests that row 0 bubbles never float
func TestFindFloatingCeilingAlwaysSupported(t *testing.T) {
	g := NewGrid(12, 8, 20)

	for col := 0; col < g.ColsInRow(0); col++ {
		place(t, g, 0, col, ColorOrange)
	}

	if floating := g.FindFloating(); len(floating) != 0 {
		t.Errorf("Ceiling row cells should be supported, got %v floating", floating)
	}
}
