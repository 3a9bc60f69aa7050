package game

import (
	"sync/atomic"
	"time"

	"bubble-pop/internal/game/spatial"
)

// ResourceLimits defines hard caps on snapshot contents. The board size
// bounds bubbles naturally; the path cap guards against a pathological
// search result inflating every broadcast frame.
type ResourceLimits struct {
	MaxBubbles    int // Hard cap on bubbles per snapshot
	MaxPathPoints int // Hard cap on aim path waypoints per snapshot
}

// LimitsForBoard sizes the snapshot caps for a given board.
func LimitsForBoard(rows, cols int) ResourceLimits {
	return ResourceLimits{
		MaxBubbles:    rows * cols,
		MaxPathPoints: 64,
	}
}

// BubbleSnapshot is an immutable copy of a grid bubble for rendering.
// Uses value types (not pointers) to ensure immutability.
type BubbleSnapshot struct {
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Color     string  `json:"color"`
	IsPopping bool    `json:"isPopping,omitempty"`
}

// ShotSnapshot is an immutable copy of the in-flight projectile.
type ShotSnapshot struct {
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	VX    float64 `json:"vx,omitempty"`
	VY    float64 `json:"vy,omitempty"`
	Color string  `json:"color"`
}

// GameSnapshot is a complete immutable session state for rendering and API
// reads. All slices are pre-allocated and capped.
type GameSnapshot struct {
	Sequence   uint64    // Monotonic sequence for ordering
	Timestamp  time.Time // When snapshot was created
	TickNumber uint64    // Game tick this represents
	RNGSeed    int64     // Seed for deterministic replay

	Bubbles []BubbleSnapshot
	AimPath []spatial.Point

	Shot    ShotSnapshot
	HasShot bool

	CurrentColor string
	NextColor    string

	Score          int
	Level          int
	ShotsTaken     int
	ShotsUntilDrop int
	BubbleCount    int
	Status         Status

	AIMode      bool
	PathVisible bool
	Paused      bool
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer.
type SnapshotPool struct {
	snapshots [3]GameSnapshot // Triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices.
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = GameSnapshot{
			Bubbles: make([]BubbleSnapshot, 0, limits.MaxBubbles),
			AimPath: make([]spatial.Point, 0, limits.MaxPathPoints),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the game
// tick). Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *GameSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	snap.Bubbles = snap.Bubbles[:0]
	snap.AimPath = snap.AimPath[:0]
	snap.HasShot = false
	snap.Shot = ShotSnapshot{}

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer side, called from
// the API and the renderer). The returned snapshot must be treated as
// read-only.
func (p *SnapshotPool) AcquireRead() *GameSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// Limits returns the pool's resource limits.
func (p *SnapshotPool) Limits() ResourceLimits {
	return p.limits
}
