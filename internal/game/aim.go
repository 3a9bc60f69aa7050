package game

// ChooseTarget picks the cell the auto-aimer shoots at for the given color:
// the empty valid cell adjacent to at least one same-colored bubble, closest
// to the shooter (highest row index wins, then lowest column). When no
// same-color attachment exists it settles for any cell adjacent to a bubble,
// and on an empty grid it aims at the ceiling center. Scan order is the
// tie-break; keep it stable or replays diverge.
func ChooseTarget(g *Grid, color BubbleColor) Cell {
	if cell, ok := findAttachment(g, color, true); ok {
		return cell
	}
	if cell, ok := findAttachment(g, color, false); ok {
		return cell
	}
	return Cell{Row: 0, Col: g.Cols / 2}
}

// findAttachment scans rows bottom-up for an empty cell with an occupied
// neighbor, optionally requiring a color match.
func findAttachment(g *Grid, color BubbleColor, matchColor bool) (Cell, bool) {
	for row := g.Rows - 1; row >= 0; row-- {
		for col := 0; col < g.ColsInRow(row); col++ {
			if g.At(row, col) != nil {
				continue
			}
			for _, n := range g.Adjacent(row, col) {
				b := g.At(n.Row, n.Col)
				if b == nil {
					continue
				}
				if !matchColor || b.Color == color {
					return Cell{Row: row, Col: col}, true
				}
			}
		}
	}
	return Cell{}, false
}
