package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"bubble-pop/internal/game/spatial"
	"bubble-pop/internal/level"
)

// Status is the session state machine: Playing until a terminal state is
// reached; terminal states hold until an explicit Reset or AdvanceLevel.
type Status int

const (
	StatusPlaying Status = iota
	StatusLevelComplete
	StatusGameOver
)

// String returns the wire name of a status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusLevelComplete:
		return "level_complete"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Stats is the per-turn summary pushed to the presentation layer.
type Stats struct {
	Score          int    `json:"score"`
	Level          int    `json:"level"`
	ShotsTaken     int    `json:"shots"`
	ShotsUntilDrop int    `json:"shotsUntilDrop"`
	BubbleCount    int    `json:"bubbleCount"`
	Status         string `json:"status"`
}

// EngineConfig wires the engine. Zero values fall back to sane defaults.
type EngineConfig struct {
	Rows         int
	Cols         int
	BubbleRadius float64
	ColorCount   int

	ShotsPerDrop    int
	ProjectileSpeed float64
	TickRate        int

	BasePoints    int
	FloatingBonus int

	PopDelayTicks    int
	AIShotDelayTicks int

	GameOverRow int

	Search spatial.PathConfig

	Levels *level.Set // nil = embedded defaults
	Seed   int64      // 0 = time-based
}

func (c *EngineConfig) applyDefaults() {
	if c.Rows == 0 {
		c.Rows = 12
	}
	if c.Cols == 0 {
		c.Cols = 8
	}
	if c.BubbleRadius == 0 {
		c.BubbleRadius = 20
	}
	if c.ColorCount < 3 || c.ColorCount > PaletteSize {
		c.ColorCount = PaletteSize
	}
	if c.ShotsPerDrop == 0 {
		c.ShotsPerDrop = 6
	}
	if c.ProjectileSpeed == 0 {
		c.ProjectileSpeed = 25
	}
	if c.TickRate == 0 {
		c.TickRate = 30
	}
	if c.BasePoints == 0 {
		c.BasePoints = 10
	}
	if c.FloatingBonus == 0 {
		c.FloatingBonus = 2 * c.BasePoints
	}
	if c.AIShotDelayTicks == 0 {
		c.AIShotDelayTicks = c.TickRate
	}
	if c.GameOverRow <= 0 || c.GameOverRow >= c.Rows {
		c.GameOverRow = c.Rows - 1
	}
	if c.Search.Directions == 0 {
		c.Search = spatial.DefaultPathConfig(c.BubbleRadius)
	}
	if c.Levels == nil {
		c.Levels = level.DefaultSet()
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
}

// pendingPop is the scheduled second phase of a two-phase removal: the match
// set is marked popping at placement and removed when dueTick arrives. It is
// keyed to the turn that created it and cancelled wholesale on reset, so a
// reset during the delay window can never clear bubbles of the next session.
type pendingPop struct {
	turnID  uint64
	dueTick int64
	cells   []Cell
}

// Engine owns the whole game session: grid, pending bubbles, score and
// status. All mutation happens on the single tick goroutine or under the
// mutex; ordering is guaranteed by the tick sequence alone.
type Engine struct {
	mu  sync.RWMutex
	cfg EngineConfig

	grid    *Grid
	shot    *Shot
	current BubbleColor
	next    BubbleColor

	score          int
	level          int
	shotsTaken     int
	shotsUntilDrop int
	status         Status

	aiMode      bool
	pathVisible bool
	paused      bool

	aimCell Cell
	aimPath []spatial.Point

	pending   *pendingPop
	aiShotDue int64 // tick deadline for the next auto shot; 0 = none pending
	turnID    uint64

	pathfinder *spatial.Pathfinder

	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	tickCount int64

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	// Snapshot system for lock-free render separation
	snapshotPool *SnapshotPool

	// Event sourcing for replay and debugging
	eventLog *EventLog

	// Event callbacks
	onStatsUpdate  func(Stats)
	onStatusChange func(Status)
}

// NewEngine creates a game engine with a fresh level-1 board.
func NewEngine(cfg EngineConfig) *Engine {
	cfg.applyDefaults()

	e := &Engine{
		cfg:          cfg,
		level:        1,
		status:       StatusPlaying,
		pathfinder:   spatial.NewPathfinder(cfg.Search),
		stopChan:     make(chan struct{}),
		rng:          rand.New(rand.NewSource(cfg.Seed)),
		rngSeed:      cfg.Seed,
		snapshotPool: NewSnapshotPool(LimitsForBoard(cfg.Rows, cfg.Cols)),
		eventLog:     NewEventLog(),
	}

	e.setupBoard()
	e.produceSnapshot()
	return e
}

// Start begins the game loop
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🎮 Game engine started at %d TPS (%dx%d board, %d colors)",
		e.cfg.TickRate, e.cfg.Rows, e.cfg.Cols, e.cfg.ColorCount)
}

// Stop tears the session down: the tick loop ends and the pending pop and
// auto-shot deadlines are cleared so nothing fires after shutdown.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}

	e.running = false
	if e.ticker != nil {
		e.ticker.Stop()
	}
	close(e.stopChan)

	e.pending = nil
	e.aiShotDue = 0
	e.shot = nil
	log.Println("🛑 Game engine stopped")
}

// tick is called at TickRate times per second
func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tickCount++
	deltaTime := 1.0 / float64(e.cfg.TickRate)

	// Log tick event with RNG seed for deterministic replay
	e.eventLog.EmitSimple(EventTypeTick, uint64(e.tickCount), SourceSession,
		TickPayload{
			RNGSeed:     e.rngSeed,
			BubbleCount: e.grid.Count(),
			DeltaTimeNs: int64(deltaTime * 1e9),
		})

	// Advance RNG seed deterministically for next tick
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	if e.paused {
		e.produceSnapshot()
		return
	}

	if e.shot != nil && e.shot.State == ShotFlying {
		if e.shot.Step(e.grid) {
			e.resolveShot()
		}
	}

	if e.pending != nil && e.tickCount >= e.pending.dueTick {
		p := e.pending
		e.pending = nil
		e.executePop(p.turnID, p.cells)
	}

	// Auto mode fires through a single pending deadline: nothing is
	// dispatched while a shot is in flight or a pop delay is outstanding.
	if e.aiMode && e.status == StatusPlaying && e.shot == nil && e.pending == nil &&
		e.aiShotDue > 0 && e.tickCount >= e.aiShotDue {
		e.aiShotDue = 0
		e.dispatchShot(nil, SourceAuto)
	}

	e.produceSnapshot()
}

// Shoot fires the current bubble. A nil target uses the auto-aimer's pick.
// Returns false when the shot is rejected: session terminal or paused, a
// shot already in flight, a pop delay outstanding, or a malformed target.
func (e *Engine) Shoot(target *spatial.Point, source string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatchShot(target, source)
}

// HandlePointerInput forwards a manual aim/shoot intent at field pixel
// coordinates. Ignored under the same guard conditions as Shoot.
func (e *Engine) HandlePointerInput(x, y float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dispatchShot(&spatial.Point{X: x, Y: y}, SourcePointer)
}

// dispatchShot runs steps 1-2 of the turn sequence. Caller holds the mutex.
func (e *Engine) dispatchShot(target *spatial.Point, source string) bool {
	if e.status != StatusPlaying || e.paused || e.shot != nil || e.pending != nil {
		return false
	}

	if target == nil {
		x, y := e.grid.GridToPixel(e.aimCell.Row, e.aimCell.Col)
		target = &spatial.Point{X: x, Y: y}
	}

	ox, oy := e.shooterOrigin()
	shot := NewShot(ox, oy, target.X, target.Y, e.cfg.ProjectileSpeed, e.cfg.BubbleRadius, e.current)
	if shot == nil {
		// Malformed targets are rejected before any state changes, so they
		// never consume the drop counter.
		log.Printf("⚠️ Shot not dispatched: malformed target (%.1f, %.1f)", target.X, target.Y)
		return false
	}

	// Forced drop fires on the shot after ShotsPerDrop clean shots: the
	// counter is checked before this shot consumes it.
	if e.shotsUntilDrop == 0 {
		e.forceDrop()
		e.shotsUntilDrop = e.cfg.ShotsPerDrop
		if e.checkGameOver() {
			return false
		}
	}
	e.shotsUntilDrop--

	e.turnID++
	e.shot = shot
	e.shotsTaken++

	e.eventLog.EmitSimple(EventTypeShotFired, uint64(e.tickCount), source,
		ShotFiredPayload{
			TurnID:  e.turnID,
			Color:   e.current.String(),
			TargetX: target.X,
			TargetY: target.Y,
			Auto:    source == SourceAuto,
		})
	return true
}

// resolveShot snaps a resolved projectile into the grid and starts match
// resolution. Caller holds the mutex.
func (e *Engine) resolveShot() {
	shot := e.shot
	e.shot = nil

	cell, ok := shot.SnapCell(e.grid)
	if !ok {
		// Dense-grid edge case: no empty candidate near the collision
		// point. The shot is consumed with no grid change.
		log.Printf("🫧 Shot discarded: no free cell near (%.1f, %.1f)", shot.X, shot.Y)
		e.eventLog.EmitSimple(EventTypeShotDiscarded, uint64(e.tickCount), SourceSession,
			ShotDiscardedPayload{TurnID: e.turnID, X: shot.X, Y: shot.Y})
		e.finishTurn()
		return
	}

	bubble := NewGridBubble(e.grid, cell.Row, cell.Col, shot.Color)
	e.grid.Place(cell.Row, cell.Col, bubble)

	e.eventLog.EmitSimple(EventTypeBubblePlaced, uint64(e.tickCount), SourceSession,
		BubblePlacedPayload{TurnID: e.turnID, Row: cell.Row, Col: cell.Col, Color: shot.Color.String()})

	match := e.grid.FindColorMatch(cell.Row, cell.Col)
	if len(match) < MinMatchSize {
		e.finishTurn()
		return
	}

	// Two-phase removal: mark now, remove when the delay elapses. During
	// the window the cells are a visual-only transient and further shots
	// are rejected.
	for _, c := range match {
		if b := e.grid.At(c.Row, c.Col); b != nil {
			b.IsPopping = true
		}
	}

	if e.cfg.PopDelayTicks <= 0 {
		e.executePop(e.turnID, match)
		return
	}
	e.pending = &pendingPop{
		turnID:  e.turnID,
		dueTick: e.tickCount + int64(e.cfg.PopDelayTicks),
		cells:   match,
	}
}

// executePop removes a marked match set, then removes whatever the updated
// grid reports as floating. Pop first, floating second; the order is fixed.
// Caller holds the mutex.
func (e *Engine) executePop(turnID uint64, cells []Cell) {
	for _, c := range cells {
		e.grid.Remove(c.Row, c.Col)
	}
	points := len(cells) * e.cfg.BasePoints * e.level
	e.score += points

	log.Printf("💥 Popped %d bubbles for %d points (score %d)", len(cells), points, e.score)
	e.eventLog.EmitSimple(EventTypeMatchPopped, uint64(e.tickCount), SourceSession,
		MatchPoppedPayload{TurnID: turnID, Cells: cells, Points: points})

	floating := e.grid.FindFloating()
	if len(floating) > 0 {
		for _, c := range floating {
			e.grid.Remove(c.Row, c.Col)
		}
		bonus := len(floating) * e.cfg.FloatingBonus * e.level
		e.score += bonus

		log.Printf("🫧 Dropped %d floating bubbles for %d bonus points", len(floating), bonus)
		e.eventLog.EmitSimple(EventTypeFloatingDropped, uint64(e.tickCount), SourceSession,
			FloatingDroppedPayload{TurnID: turnID, Cells: floating, Points: bonus})
	}

	e.finishTurn()
}

// finishTurn runs steps 3-4 of the turn sequence: terminal checks, respawn,
// aim recompute, auto-shot scheduling. Caller holds the mutex.
func (e *Engine) finishTurn() {
	if e.grid.IsEmpty() {
		e.changeStatus(StatusLevelComplete)
		e.aimPath = nil
		e.emitStats()
		return
	}
	if e.checkGameOver() {
		e.emitStats()
		return
	}

	e.current = e.next
	e.next = e.drawColor()
	e.recomputeAim()

	if e.aiMode {
		e.aiShotDue = e.tickCount + int64(e.cfg.AIShotDelayTicks)
	}
	e.emitStats()
}

// checkGameOver transitions to GameOver when any bubble sits at or below
// the bottom threshold row. Caller holds the mutex.
func (e *Engine) checkGameOver() bool {
	if e.status != StatusPlaying {
		return e.status == StatusGameOver
	}
	for row := e.cfg.GameOverRow; row < e.grid.Rows; row++ {
		for col := 0; col < e.grid.ColsInRow(row); col++ {
			if e.grid.At(row, col) != nil {
				e.changeStatus(StatusGameOver)
				return true
			}
		}
	}
	return false
}

// forceDrop shifts every row down by one and spawns a fresh partially-random
// ceiling row. Bubbles shifted to a column the narrower row lacks are pulled
// one cell left; bubbles that would leave the board are discarded and the
// game-over check right after the drop ends the session. Caller holds the
// mutex.
func (e *Engine) forceDrop() {
	g := e.grid
	shifted := make([]*Bubble, g.Rows*g.Cols)
	discarded := 0

	for row := g.Rows - 1; row >= 0; row-- {
		for col := 0; col < g.ColsInRow(row); col++ {
			b := g.At(row, col)
			if b == nil {
				continue
			}
			nr := row + 1
			if nr >= g.Rows {
				discarded++
				continue
			}
			nc := col
			if nc >= g.ColsInRow(nr) {
				nc = g.ColsInRow(nr) - 1
			}
			if shifted[nr*g.Cols+nc] != nil {
				discarded++
				continue
			}
			b.Row, b.Col = nr, nc
			b.X, b.Y = g.GridToPixel(nr, nc)
			shifted[nr*g.Cols+nc] = b
		}
	}
	g.cells = shifted

	// Fresh ceiling row drawn from the colors still in play.
	colors := g.ColorsPresent()
	spawned := 0
	for col := 0; col < g.ColsInRow(0); col++ {
		var color BubbleColor
		if len(colors) > 0 {
			color = colors[e.rng.Intn(len(colors))]
		} else {
			color = BubbleColor(e.rng.Intn(e.cfg.ColorCount))
		}
		g.Place(0, col, NewGridBubble(g, 0, col, color))
		spawned++
	}

	log.Printf("⬇️ Forced drop: new ceiling row of %d, %d bubbles discarded", spawned, discarded)
	e.eventLog.EmitSimple(EventTypeForcedDrop, uint64(e.tickCount), SourceSession,
		ForcedDropPayload{NewCeilingCount: spawned, Discarded: discarded})
}

// drawColor picks the next spawn color, preferring colors still on the grid
// and falling back to the full palette when the board is empty. Caller holds
// the mutex.
func (e *Engine) drawColor() BubbleColor {
	colors := e.grid.ColorsPresent()
	if len(colors) == 0 {
		return BubbleColor(e.rng.Intn(e.cfg.ColorCount))
	}
	return colors[e.rng.Intn(len(colors))]
}

// recomputeAim re-runs target selection and the path search for the current
// bubble color. Caller holds the mutex.
func (e *Engine) recomputeAim() {
	e.aimCell = ChooseTarget(e.grid, e.current)
	gx, gy := e.grid.GridToPixel(e.aimCell.Row, e.aimCell.Col)
	ox, oy := e.shooterOrigin()

	bubbles := e.grid.Bubbles()
	obstacles := make([]spatial.Circle, 0, len(bubbles))
	for _, b := range bubbles {
		obstacles = append(obstacles, spatial.Circle{X: b.X, Y: b.Y, R: b.Radius})
	}

	r := e.cfg.BubbleRadius
	e.aimPath = e.pathfinder.FindPath(
		spatial.Point{X: ox, Y: oy},
		spatial.Point{X: gx, Y: gy},
		obstacles,
		spatial.Bounds{MinX: r, MaxX: e.grid.FieldWidth() - r, MinY: r, MaxY: e.grid.FieldHeight() - r},
	)
}

// shooterOrigin is the launch position at the bottom center of the field.
func (e *Engine) shooterOrigin() (float64, float64) {
	return e.grid.FieldWidth() / 2, e.grid.FieldHeight() - e.cfg.BubbleRadius
}

// setupBoard builds a fresh grid for the current level, from a preset layout
// when one exists and from a seeded random fill past the preset list.
// Caller holds the mutex (or runs before the loop starts).
func (e *Engine) setupBoard() {
	e.grid = NewGrid(e.cfg.Rows, e.cfg.Cols, e.cfg.BubbleRadius)

	if layout, ok := e.cfg.Levels.Layout(e.level); ok {
		for row := 0; row < e.grid.Rows && row < len(layout.Rows); row++ {
			for col := 0; col < e.grid.ColsInRow(row); col++ {
				if ci := layout.CellColor(row, col); ci != level.Empty {
					e.grid.Place(row, col, NewGridBubble(e.grid, row, col, BubbleColor(ci)))
				}
			}
		}
	} else {
		// Generated level: fill grows with the level number but always
		// leaves room to play.
		fillRows := 3 + e.level
		if max := e.cfg.Rows / 2; fillRows > max {
			fillRows = max
		}
		for row := 0; row < fillRows; row++ {
			for col := 0; col < e.grid.ColsInRow(row); col++ {
				color := BubbleColor(e.rng.Intn(e.cfg.ColorCount))
				e.grid.Place(row, col, NewGridBubble(e.grid, row, col, color))
			}
		}
	}

	e.current = e.drawColor()
	e.next = e.drawColor()
	e.shotsUntilDrop = e.cfg.ShotsPerDrop
	e.shotsTaken = 0
	e.recomputeAim()
	if e.aiMode {
		e.aiShotDue = e.tickCount + int64(e.cfg.AIShotDelayTicks)
	}
}

// Reset reinitializes the session: score and level back to 1, fresh board,
// pending pop and auto-shot deadlines cancelled.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = nil
	e.aiShotDue = 0
	e.shot = nil
	e.score = 0
	e.level = 1
	e.setupBoard()
	e.changeStatus(StatusPlaying)

	log.Println("🔄 Session reset")
	e.eventLog.EmitSimple(EventTypeReset, uint64(e.tickCount), SourceAPI, nil)
	e.emitStats()
}

// AdvanceLevel increments the level and deals a fresh board, keeping the
// score. Pending work is cancelled the same way Reset cancels it.
func (e *Engine) AdvanceLevel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = nil
	e.aiShotDue = 0
	e.shot = nil
	e.level++
	e.setupBoard()
	e.changeStatus(StatusPlaying)

	log.Printf("⭐ Advanced to level %d", e.level)
	e.eventLog.EmitSimple(EventTypeLevelAdvance, uint64(e.tickCount), SourceAPI,
		StatusChangePayload{Status: e.status.String(), Score: e.score, Level: e.level})
	e.emitStats()
}

// SetAIMode toggles automatic target selection and shot dispatch.
func (e *Engine) SetAIMode(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.aiMode == enabled {
		return
	}
	e.aiMode = enabled
	if enabled && e.status == StatusPlaying && e.shot == nil && e.pending == nil {
		e.aiShotDue = e.tickCount + int64(e.cfg.AIShotDelayTicks)
	} else if !enabled {
		e.aiShotDue = 0
	}
	log.Printf("🤖 AI mode: %v", enabled)
}

// SetPathVisible toggles aim path visualization. Pure state flip; the
// renderer consumes the flag from snapshots.
func (e *Engine) SetPathVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pathVisible = visible
}

// SetPaused pauses or resumes the simulation. Shots are rejected while
// paused; in-flight state freezes in place.
func (e *Engine) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.paused = paused
}

// changeStatus transitions the session status, emitting the status-change
// event and callback only on real transitions. Caller holds the mutex.
func (e *Engine) changeStatus(st Status) {
	if e.status == st {
		return
	}
	e.status = st

	log.Printf("🚦 Status: %s (score %d, level %d)", st, e.score, e.level)
	e.eventLog.EmitSimple(EventTypeStatusChange, uint64(e.tickCount), SourceSession,
		StatusChangePayload{Status: st.String(), Score: e.score, Level: e.level})

	if e.onStatusChange != nil {
		go e.onStatusChange(st)
	}
}

// emitStats fires the per-turn stats callback. Caller holds the mutex.
func (e *Engine) emitStats() {
	if e.onStatsUpdate == nil {
		return
	}
	go e.onStatsUpdate(Stats{
		Score:          e.score,
		Level:          e.level,
		ShotsTaken:     e.shotsTaken,
		ShotsUntilDrop: e.shotsUntilDrop,
		BubbleCount:    e.grid.Count(),
		Status:         e.status.String(),
	})
}

// SetCallbacks sets the outbound event callbacks.
func (e *Engine) SetCallbacks(onStatsUpdate func(Stats), onStatusChange func(Status)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStatsUpdate = onStatsUpdate
	e.onStatusChange = onStatusChange
}

// GetStats returns the current session stats.
func (e *Engine) GetStats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Score:          e.score,
		Level:          e.level,
		ShotsTaken:     e.shotsTaken,
		ShotsUntilDrop: e.shotsUntilDrop,
		BubbleCount:    e.grid.Count(),
		Status:         e.status.String(),
	}
}

// GetSnapshot returns the latest immutable snapshot for lock-free reads.
// This is the preferred method for the API and the renderer.
func (e *Engine) GetSnapshot() *GameSnapshot {
	return e.snapshotPool.AcquireRead()
}

// produceSnapshot creates an immutable snapshot of the current state.
// Called at the end of each tick. Caller holds the mutex.
func (e *Engine) produceSnapshot() {
	snap := e.snapshotPool.AcquireWrite()
	limits := e.snapshotPool.Limits()

	snap.TickNumber = uint64(e.tickCount)
	snap.RNGSeed = e.rngSeed

	for _, b := range e.grid.Bubbles() {
		if len(snap.Bubbles) >= limits.MaxBubbles {
			break
		}
		snap.Bubbles = append(snap.Bubbles, BubbleSnapshot{
			X:         b.X,
			Y:         b.Y,
			Row:       b.Row,
			Col:       b.Col,
			Color:     b.Color.Hex(),
			IsPopping: b.IsPopping,
		})
	}

	for _, p := range e.aimPath {
		if len(snap.AimPath) >= limits.MaxPathPoints {
			break
		}
		snap.AimPath = append(snap.AimPath, p)
	}

	if e.shot != nil {
		snap.HasShot = true
		snap.Shot = ShotSnapshot{
			X:     e.shot.X,
			Y:     e.shot.Y,
			VX:    e.shot.VX,
			VY:    e.shot.VY,
			Color: e.shot.Color.Hex(),
		}
	}

	snap.CurrentColor = e.current.Hex()
	snap.NextColor = e.next.Hex()
	snap.Score = e.score
	snap.Level = e.level
	snap.ShotsTaken = e.shotsTaken
	snap.ShotsUntilDrop = e.shotsUntilDrop
	snap.BubbleCount = e.grid.Count()
	snap.Status = e.status
	snap.AIMode = e.aiMode
	snap.PathVisible = e.pathVisible
	snap.Paused = e.paused

	e.snapshotPool.PublishWrite()
}

// FieldSize returns the playfield dimensions in pixels.
func (e *Engine) FieldSize() (width, height float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.FieldWidth(), e.grid.FieldHeight()
}

// Grid returns the live grid. For tests and same-goroutine inspection only;
// concurrent access must go through GetSnapshot.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// StartEventLog initializes the event logging system
func (e *Engine) StartEventLog(filePath string) error {
	return e.eventLog.Start(filePath)
}

// StopEventLog gracefully stops the event logging system
func (e *Engine) StopEventLog() {
	e.eventLog.Stop()
}

// GetEventLogStats returns event log statistics for monitoring
func (e *Engine) GetEventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// Tick advances the simulation one step synchronously. Intended for tests
// and headless turn-by-turn driving; the running loop calls the same path.
func (e *Engine) Tick() {
	e.tick()
}
