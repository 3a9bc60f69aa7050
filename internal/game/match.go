package game

// MinMatchSize is the smallest connected same-color group that pops.
const MinMatchSize = 3

// FindColorMatch returns the connected set of bubbles sharing the color of
// the bubble at (row, col), including that bubble. Breadth-first with an
// explicit work queue so deep chains on large grids never touch the call
// stack. Returns nil if the cell is empty.
func (g *Grid) FindColorMatch(row, col int) []Cell {
	origin := g.At(row, col)
	if origin == nil {
		return nil
	}
	color := origin.Color

	visited := make(map[Cell]bool, 16)
	start := Cell{Row: row, Col: col}
	visited[start] = true

	queue := make([]Cell, 0, 16)
	queue = append(queue, start)
	match := make([]Cell, 0, 16)

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		match = append(match, cell)

		for _, n := range g.Adjacent(cell.Row, cell.Col) {
			if visited[n] {
				continue
			}
			b := g.At(n.Row, n.Col)
			if b == nil || b.Color != color {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	return match
}

// FindFloating returns every occupied cell with no adjacency path back to an
// occupied cell in the ceiling row. A single flood from all row-0 anchors
// marks the supported set; everything else is floating.
func (g *Grid) FindFloating() []Cell {
	supported := make(map[Cell]bool, g.Count())
	queue := make([]Cell, 0, g.Count())

	for col := 0; col < g.ColsInRow(0); col++ {
		if g.At(0, col) != nil {
			anchor := Cell{Row: 0, Col: col}
			supported[anchor] = true
			queue = append(queue, anchor)
		}
	}

	for head := 0; head < len(queue); head++ {
		cell := queue[head]
		for _, n := range g.Adjacent(cell.Row, cell.Col) {
			if supported[n] || g.At(n.Row, n.Col) == nil {
				continue
			}
			supported[n] = true
			queue = append(queue, n)
		}
	}

	floating := make([]Cell, 0)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.ColsInRow(row); col++ {
			if g.At(row, col) != nil && !supported[Cell{Row: row, Col: col}] {
				floating = append(floating, Cell{Row: row, Col: col})
			}
		}
	}
	return floating
}
