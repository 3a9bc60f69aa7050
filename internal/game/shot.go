package game

import "math"

// ShotState tracks the projectile lifecycle within one turn.
type ShotState int

const (
	ShotIdle ShotState = iota
	ShotFlying
	ShotResolved
)

// Shot is the transient in-flight projectile. At most one exists at a time
// and the turn controller owns it exclusively.
type Shot struct {
	X, Y   float64
	VX, VY float64
	Color  BubbleColor
	Radius float64
	State  ShotState
}

// NewShot aims a projectile from origin toward target at the given speed
// (pixels per tick). Returns nil for malformed targets: non-finite
// coordinates, zero distance from the origin, or a target that does not
// point strictly upward. A level or downward shot can never reach a bubble
// or the ceiling, so it would fly (and wall-bounce) forever.
func NewShot(originX, originY, targetX, targetY, speed, radius float64, color BubbleColor) *Shot {
	if math.IsNaN(targetX) || math.IsNaN(targetY) || math.IsInf(targetX, 0) || math.IsInf(targetY, 0) {
		return nil
	}
	dx := targetX - originX
	dy := targetY - originY
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 || dy >= 0 {
		return nil
	}
	return &Shot{
		X:      originX,
		Y:      originY,
		VX:     dx / d * speed,
		VY:     dy / d * speed,
		Color:  color,
		Radius: radius,
		State:  ShotFlying,
	}
}

// Step advances the projectile one tick against the grid. Side walls reflect
// the horizontal velocity and clamp the position back inside the field.
// Contact with any placed bubble (center distance under 2r) or the ceiling
// resolves the shot; on bubble contact the projectile is backed up by one
// tick's displacement so the resolved position is just-touching rather than
// overlapping. Returns true once the shot is resolved.
func (s *Shot) Step(g *Grid) bool {
	if s.State != ShotFlying {
		return true
	}

	s.X += s.VX
	s.Y += s.VY

	r := s.Radius
	if s.X < r {
		s.X = r
		s.VX = -s.VX
	}
	if s.X > g.FieldWidth()-r {
		s.X = g.FieldWidth() - r
		s.VX = -s.VX
	}

	for _, b := range g.Bubbles() {
		dx := b.X - s.X
		dy := b.Y - s.Y
		if math.Sqrt(dx*dx+dy*dy) < 2*r {
			s.X -= s.VX
			s.Y -= s.VY
			s.State = ShotResolved
			return true
		}
	}

	if s.Y <= r {
		s.Y = r
		s.State = ShotResolved
		return true
	}

	return false
}

// SnapCell picks the lattice cell a resolved shot should occupy: the nearest
// cell to the collision point plus its immediate neighbors are candidates,
// and the empty valid candidate whose lattice center is closest wins.
// ok is false when every candidate is occupied or invalid; the caller
// discards the shot in that case, by policy rather than as an error.
func (s *Shot) SnapCell(g *Grid) (cell Cell, ok bool) {
	row, col := g.PixelToGrid(s.X, s.Y)

	candidates := make([]Cell, 0, 7)
	if g.IsValid(row, col) {
		candidates = append(candidates, Cell{Row: row, Col: col})
	}
	// Neighbor candidates need a valid anchor even when the rounded cell
	// itself is out of bounds.
	anchorRow, anchorCol := row, col
	if !g.IsValid(anchorRow, anchorCol) {
		anchorRow, anchorCol = clampCell(g, row, col)
	}
	candidates = append(candidates, g.Adjacent(anchorRow, anchorCol)...)
	if g.IsValid(anchorRow, anchorCol) && (anchorRow != row || anchorCol != col) {
		candidates = append(candidates, Cell{Row: anchorRow, Col: anchorCol})
	}

	bestDist := math.MaxFloat64
	found := false
	for _, c := range candidates {
		if g.At(c.Row, c.Col) != nil {
			continue
		}
		x, y := g.GridToPixel(c.Row, c.Col)
		dx := x - s.X
		dy := y - s.Y
		d := math.Sqrt(dx*dx + dy*dy)
		if d < bestDist {
			bestDist = d
			cell = c
			found = true
		}
	}
	return cell, found
}

// clampCell pulls an out-of-bounds cell address to the nearest valid cell.
func clampCell(g *Grid, row, col int) (int, int) {
	if row < 0 {
		row = 0
	}
	if row >= g.Rows {
		row = g.Rows - 1
	}
	if col < 0 {
		col = 0
	}
	if max := g.ColsInRow(row) - 1; col > max {
		col = max
	}
	return row, col
}
