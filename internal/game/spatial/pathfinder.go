package spatial

import "math"

// Point is a position in playfield pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Circle is a circular obstacle (a placed bubble).
type Circle struct {
	X, Y float64
	R    float64
}

// Bounds is the playfield rectangle the search must stay inside.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// PathConfig tunes the sampled-space search.
type PathConfig struct {
	StepSize      float64 // distance covered by one expansion step
	Directions    int     // fixed angles sampled per node
	MaxIterations int     // expansion cap before falling back
	NodeTolerance float64 // two points closer than this on both axes are one node
	MovingRadius  float64 // radius of the traveling bubble
	Margin        float64 // extra clearance kept from obstacles
	GoalRadius    float64 // success distance from the goal
}

// DefaultPathConfig returns the search parameters tuned for per-turn
// real-time use: the worst case is MaxIterations × Directions candidate
// evaluations.
func DefaultPathConfig(bubbleRadius float64) PathConfig {
	return PathConfig{
		StepSize:      bubbleRadius,
		Directions:    16,
		MaxIterations: 500,
		NodeTolerance: 10,
		MovingRadius:  bubbleRadius,
		Margin:        1.5,
		GoalRadius:    2 * bubbleRadius,
	}
}

// pathNode lives in a flat arena; Parent is an arena index, -1 for the root.
// Index-based back-links keep reconstruction cycle-free and allocation-cheap.
type pathNode struct {
	x, y    float64
	g, h, f float64
	parent  int
}

// Pathfinder runs heuristic best-first search over a sampled continuous
// space. It is not safe for concurrent use; the engine owns one instance and
// calls it from the tick goroutine only.
type Pathfinder struct {
	cfg   PathConfig
	nodes []pathNode
	open  []int
	dirX  []float64
	dirY  []float64
}

// NewPathfinder creates a pathfinder with precomputed direction vectors.
func NewPathfinder(cfg PathConfig) *Pathfinder {
	if cfg.Directions < 4 {
		cfg.Directions = 4
	}
	p := &Pathfinder{
		cfg:  cfg,
		dirX: make([]float64, cfg.Directions),
		dirY: make([]float64, cfg.Directions),
	}
	for i := 0; i < cfg.Directions; i++ {
		angle := 2 * math.Pi * float64(i) / float64(cfg.Directions)
		p.dirX[i] = math.Cos(angle)
		p.dirY[i] = math.Sin(angle)
	}
	return p
}

// FindPath returns a trajectory from start toward goal avoiding the given
// obstacles. The result always has at least two points: if the search
// exhausts its iteration budget it degrades to the direct two-point path
// rather than failing.
func (p *Pathfinder) FindPath(start, goal Point, obstacles []Circle, bounds Bounds) []Point {
	p.nodes = p.nodes[:0]
	p.open = p.open[:0]

	p.nodes = append(p.nodes, pathNode{
		x:      start.X,
		y:      start.Y,
		h:      dist(start.X, start.Y, goal.X, goal.Y),
		f:      dist(start.X, start.Y, goal.X, goal.Y),
		parent: -1,
	})
	p.open = append(p.open, 0)

	for iter := 0; iter < p.cfg.MaxIterations && len(p.open) > 0; iter++ {
		currentIdx := p.popLowestF()
		current := p.nodes[currentIdx]

		if dist(current.x, current.y, goal.X, goal.Y) <= p.cfg.GoalRadius {
			return p.reconstruct(currentIdx, goal)
		}

		for d := 0; d < p.cfg.Directions; d++ {
			nx := current.x + p.dirX[d]*p.cfg.StepSize
			ny := current.y + p.dirY[d]*p.cfg.StepSize

			// Wall handling: clamp X back into bounds. This approximates the
			// projectile's reflection without simulating the full billiard
			// path.
			if nx < bounds.MinX {
				nx = bounds.MinX
			}
			if nx > bounds.MaxX {
				nx = bounds.MaxX
			}
			if ny < bounds.MinY || ny > bounds.MaxY {
				continue
			}
			if p.blocked(nx, ny, obstacles) {
				continue
			}
			if p.seen(nx, ny) {
				continue
			}

			g := current.g + dist(current.x, current.y, nx, ny)
			h := dist(nx, ny, goal.X, goal.Y)
			p.nodes = append(p.nodes, pathNode{
				x:      nx,
				y:      ny,
				g:      g,
				h:      h,
				f:      g + h,
				parent: currentIdx,
			})
			p.open = append(p.open, len(p.nodes)-1)
		}
	}

	// Budget exhausted: direct fallback. Never returns an empty path.
	return []Point{start, goal}
}

// popLowestF removes and returns the open node with the lowest f. Ties go to
// the earliest-inserted node, which keeps runs reproducible.
func (p *Pathfinder) popLowestF() int {
	best := 0
	for i := 1; i < len(p.open); i++ {
		if p.nodes[p.open[i]].f < p.nodes[p.open[best]].f {
			best = i
		}
	}
	idx := p.open[best]
	p.open = append(p.open[:best], p.open[best+1:]...)
	return idx
}

// blocked reports whether a point sits too close to any obstacle.
func (p *Pathfinder) blocked(x, y float64, obstacles []Circle) bool {
	for _, o := range obstacles {
		clearance := o.R + p.cfg.MovingRadius + p.cfg.Margin
		if dist(x, y, o.X, o.Y) < clearance {
			return true
		}
	}
	return false
}

// seen reports whether a point is within NodeTolerance of any node already
// in the arena. The continuous sampling never reproduces identical floats,
// so spatial proximity is the dedup criterion, not equality.
func (p *Pathfinder) seen(x, y float64) bool {
	tol := p.cfg.NodeTolerance
	for i := range p.nodes {
		if math.Abs(p.nodes[i].x-x) < tol && math.Abs(p.nodes[i].y-y) < tol {
			return true
		}
	}
	return false
}

// reconstruct walks parent links from the success node back to the root and
// reverses, appending the exact goal as the final waypoint.
func (p *Pathfinder) reconstruct(idx int, goal Point) []Point {
	count := 0
	for i := idx; i != -1; i = p.nodes[i].parent {
		count++
	}
	path := make([]Point, count, count+1)
	for i := idx; i != -1; i = p.nodes[i].parent {
		count--
		path[count] = Point{X: p.nodes[i].x, Y: p.nodes[i].y}
	}
	last := path[len(path)-1]
	if dist(last.X, last.Y, goal.X, goal.Y) > 1e-9 {
		path = append(path, goal)
	}
	return path
}

func dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
