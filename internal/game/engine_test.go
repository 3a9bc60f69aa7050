package game

import (
	"math"
	"testing"
	"time"

	"bubble-pop/internal/game/spatial"
	"bubble-pop/internal/level"
)

// testLevels builds a single-layout set so tests control the board exactly.
func testLevels(rows ...string) *level.Set {
	return &level.Set{Levels: []level.Layout{{Name: "test", Rows: rows}}}
}

// driveUntil ticks the engine synchronously until the condition holds.
// Snapshots refresh once per tick, so the condition is checked after each.
func driveUntil(t *testing.T, e *Engine, maxTicks int, cond func() bool) {
	t.Helper()
	for i := 0; i < maxTicks; i++ {
		e.Tick()
		if cond() {
			return
		}
	}
	t.Fatalf("Condition not reached within %d ticks", maxTicks)
}

// shotResolved reports whether no projectile is in flight.
func shotResolved(e *Engine) func() bool {
	return func() bool { return !e.GetSnapshot().HasShot }
}

// TestNewEngineDefaults tests construction with the embedded level set
func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1})

	stats := e.GetStats()
	if stats.Level != 1 {
		t.Errorf("Expected level 1, got %d", stats.Level)
	}
	if stats.Status != "playing" {
		t.Errorf("Expected status playing, got %s", stats.Status)
	}
	if stats.BubbleCount == 0 {
		t.Error("Level 1 board should not be empty")
	}
	if stats.ShotsUntilDrop != 6 {
		t.Errorf("Expected 6 shots until drop, got %d", stats.ShotsUntilDrop)
	}

	snap := e.GetSnapshot()
	if snap.CurrentColor == "" || snap.NextColor == "" {
		t.Error("Current and next colors must be dealt at construction")
	}
}

// TestShootGuards tests rejection while a shot is in flight and while paused
func TestShootGuards(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, Levels: testLevels("R.......")})

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("First shot should dispatch")
	}
	if e.Shoot(nil, SourceAPI) {
		t.Error("Second shot must be rejected while one is in flight")
	}

	driveUntil(t, e, 200, shotResolved(e))

	e.SetPaused(true)
	if e.Shoot(nil, SourceAPI) {
		t.Error("Shot must be rejected while paused")
	}
	e.SetPaused(false)
	if !e.Shoot(nil, SourceAPI) {
		t.Error("Shot should dispatch again after unpausing")
	}
}

// TestShootMalformedTarget tests rejection of NaN and zero-distance targets
func TestShootMalformedTarget(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, Levels: testLevels("R.......")})

	before := e.GetStats()

	if e.Shoot(&spatial.Point{X: math.NaN(), Y: 100}, SourceAPI) {
		t.Error("NaN target must be rejected")
	}

	ox, oy := e.shooterOrigin()
	if e.HandlePointerInput(ox, oy) {
		t.Error("Pointer at the shooter origin must be rejected")
	}

	after := e.GetStats()
	if after.ShotsTaken != before.ShotsTaken {
		t.Error("Rejected shots must not count as taken")
	}
	if after.ShotsUntilDrop != before.ShotsUntilDrop {
		t.Error("Rejected shots must not consume the drop counter")
	}
}

// TestShootRejectsNonUpwardTarget tests that aims at or below the shooter
// row are rejected at dispatch instead of launching a shot that can never
// resolve and blocks the session
func TestShootRejectsNonUpwardTarget(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, Levels: testLevels("R.......")})

	ox, oy := e.shooterOrigin()
	if e.HandlePointerInput(ox+1, oy+50) {
		t.Error("Pointer below the shooter row must be rejected")
	}
	if e.HandlePointerInput(ox+100, oy) {
		t.Error("Exactly horizontal pointer must be rejected")
	}
	if e.Shoot(&spatial.Point{X: ox - 40, Y: oy + 10}, SourceAPI) {
		t.Error("API target below the shooter row must be rejected")
	}

	for i := 0; i < 50; i++ {
		e.Tick()
	}
	if e.GetSnapshot().HasShot {
		t.Fatal("No projectile should be in flight after rejected dispatches")
	}

	if !e.Shoot(nil, SourceAPI) {
		t.Error("A valid shot must still dispatch after rejected aims")
	}
}

// TestForcedDropAfterCleanShots tests the drop firing on the shot after the
// counter reaches zero
func TestForcedDropAfterCleanShots(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:         1,
		ShotsPerDrop: 1,
		Levels:       testLevels("R......."),
	})

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("First shot should dispatch")
	}
	driveUntil(t, e, 200, shotResolved(e))

	if got := e.GetStats().ShotsUntilDrop; got != 0 {
		t.Fatalf("Expected drop counter 0 after one clean shot, got %d", got)
	}
	countBefore := e.Grid().Count()

	// The next dispatch triggers the drop before the shot launches
	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Second shot should dispatch")
	}

	g := e.Grid()
	for col := 0; col < g.ColsInRow(0); col++ {
		if g.At(0, col) == nil {
			t.Errorf("Ceiling cell (0, %d) should be filled after the forced drop", col)
		}
	}
	if g.At(0, 0) != nil && g.At(1, 0) == nil {
		t.Error("The original ceiling bubble should have shifted to row 1")
	}
	wantCount := countBefore + g.ColsInRow(0)
	if g.Count() != wantCount {
		t.Errorf("Expected %d bubbles after drop, got %d", wantCount, g.Count())
	}
}

// TestGameOverAtThresholdRow tests the terminal transition and the shot lockout
func TestGameOverAtThresholdRow(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:        1,
		GameOverRow: 2,
		Levels: testLevels(
			"R.......",
			"G",
			"P.......",
		),
	})

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch while still playing")
	}
	driveUntil(t, e, 200, func() bool { return e.GetStats().Status == "game_over" })

	if e.Shoot(nil, SourceAPI) {
		t.Error("Shots must be rejected after game over")
	}
	if e.HandlePointerInput(100, 100) {
		t.Error("Pointer shots must be rejected after game over")
	}
}

// TestLevelCompleteWithScoring tests a full shoot-pop-clear turn end to end
func TestLevelCompleteWithScoring(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:   1,
		Levels: testLevels("...RR..."),
	})

	// Only red is on the board, so the dealt color is red and the auto-aim
	// attaches next to the pair. The placement completes a 3-match, the pair
	// pops, and the board empties.
	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}
	driveUntil(t, e, 200, func() bool { return e.GetStats().Status == "level_complete" })

	stats := e.GetStats()
	if stats.BubbleCount != 0 {
		t.Errorf("Expected empty board, got %d bubbles", stats.BubbleCount)
	}
	if stats.Score != 3*10*1 {
		t.Errorf("Expected score 30 for a 3-match at level 1, got %d", stats.Score)
	}

	if e.Shoot(nil, SourceAPI) {
		t.Error("Shots must be rejected after level complete")
	}

	e.AdvanceLevel()
	stats = e.GetStats()
	if stats.Level != 2 {
		t.Errorf("Expected level 2 after advance, got %d", stats.Level)
	}
	if stats.Status != "playing" {
		t.Errorf("Expected status playing after advance, got %s", stats.Status)
	}
	if stats.Score != 30 {
		t.Errorf("Advance must keep the score, got %d", stats.Score)
	}
}

// TestClusterPopScoring tests a full turn against a 2x2 cluster: the placed
// bubble joins all four, and the pop pays per bubble at the level multiplier
func TestClusterPopScoring(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed: 1,
		Levels: testLevels(
			"..RR....",
			"..RR",
		),
	})

	// Red is the only color on the board, so the dealt color is red and
	// every empty attachment cell borders the cluster.
	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}
	driveUntil(t, e, 200, func() bool { return e.GetStats().Status == "level_complete" })

	stats := e.GetStats()
	if stats.BubbleCount != 0 {
		t.Errorf("Expected empty board after the cluster pops, got %d bubbles", stats.BubbleCount)
	}
	if want := 5 * 10 * 1; stats.Score != want {
		t.Errorf("Expected score %d for a 5-pop at level 1, got %d", want, stats.Score)
	}
}

// TestFloatingBonusScoring tests pop-then-floating order with the bonus rate
func TestFloatingBonusScoring(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed: 1,
		Levels: testLevels(
			"...RR...",
			"...B",
		),
	})

	// Force a red shot so the turn is deterministic regardless of which of
	// the two board colors the dealer drew
	e.current = ColorRed
	e.next = ColorRed
	e.recomputeAim()

	// The blue bubble at (1,3) hangs off the red pair. Popping the reds
	// leaves it unsupported, so it drops for the floating bonus.
	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}
	driveUntil(t, e, 200, func() bool { return e.GetStats().Status == "level_complete" })

	// 3 popped at 10 each plus 1 floating at 20, all at level 1
	want := 3*10*1 + 1*20*1
	if got := e.GetStats().Score; got != want {
		t.Errorf("Expected score %d, got %d", want, got)
	}
}

// TestResetCancelsPendingPop tests that a reset during the pop delay window
// cannot clear bubbles of the fresh session
func TestResetCancelsPendingPop(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:          1,
		PopDelayTicks: 100,
		Levels:        testLevels("...RR..."),
	})

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}

	// Wait for the match to be marked popping but not yet removed
	driveUntil(t, e, 200, func() bool {
		for _, b := range e.GetSnapshot().Bubbles {
			if b.IsPopping {
				return true
			}
		}
		return false
	})

	e.Reset()

	stats := e.GetStats()
	if stats.Score != 0 || stats.Level != 1 {
		t.Errorf("Expected fresh session, got score %d level %d", stats.Score, stats.Level)
	}
	if stats.BubbleCount != 2 {
		t.Errorf("Expected the 2 layout bubbles after reset, got %d", stats.BubbleCount)
	}

	// Run well past the original due tick: the cancelled pop must not fire
	for i := 0; i < 150; i++ {
		e.Tick()
	}
	stats = e.GetStats()
	if stats.BubbleCount != 2 || stats.Score != 0 {
		t.Errorf("Cancelled pop leaked into the new session: %d bubbles, score %d",
			stats.BubbleCount, stats.Score)
	}
}

// TestAIModeSingleInFlightShot tests the auto-shooter deadline and its
// one-shot-at-a-time guarantee
func TestAIModeSingleInFlightShot(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:             1,
		AIShotDelayTicks: 2,
		Levels:           testLevels("R......."),
	})

	e.SetAIMode(true)

	driveUntil(t, e, 10, func() bool { return e.GetStats().ShotsTaken == 1 })

	if !e.GetSnapshot().HasShot {
		t.Fatal("Auto shot should be in flight")
	}

	// While the shot flies, no second dispatch may happen
	e.Tick()
	e.Tick()
	if got := e.GetStats().ShotsTaken; got != 1 {
		t.Errorf("Expected exactly 1 shot while in flight, got %d", got)
	}

	e.SetAIMode(false)
	driveUntil(t, e, 200, func() bool { return !e.GetSnapshot().HasShot })

	// Disabled AI must not fire again
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if got := e.GetStats().ShotsTaken; got != 1 {
		t.Errorf("AI fired with mode disabled: %d shots", got)
	}
}

// TestPausedTickFreezesShot tests that pause freezes in-flight motion
func TestPausedTickFreezesShot(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, Levels: testLevels("R.......")})

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}
	e.Tick()

	snap := e.GetSnapshot()
	if !snap.HasShot {
		t.Fatal("Shot should be in flight")
	}
	x, y := snap.Shot.X, snap.Shot.Y

	e.SetPaused(true)
	for i := 0; i < 5; i++ {
		e.Tick()
	}

	snap = e.GetSnapshot()
	if !snap.HasShot || snap.Shot.X != x || snap.Shot.Y != y {
		t.Error("Paused ticks must not move the projectile")
	}
	if !snap.Paused {
		t.Error("Snapshot should carry the paused flag")
	}
}

// TestStatsCallback tests the outbound stats push on session events
func TestStatsCallback(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, Levels: testLevels("R.......")})

	statsCh := make(chan Stats, 8)
	e.SetCallbacks(func(s Stats) { statsCh <- s }, nil)

	e.Reset()

	select {
	case s := <-statsCh:
		if s.Score != 0 || s.Level != 1 {
			t.Errorf("Unexpected stats in callback: %+v", s)
		}
	case <-time.After(time.Second):
		t.Fatal("Stats callback not invoked after reset")
	}
}

// TestStatusCallbackOnGameOver tests the status-change push
func TestStatusCallbackOnGameOver(t *testing.T) {
	e := NewEngine(EngineConfig{
		Seed:        1,
		GameOverRow: 2,
		Levels: testLevels(
			"R.......",
			"G",
			"P.......",
		),
	})

	statusCh := make(chan Status, 4)
	e.SetCallbacks(nil, func(st Status) { statusCh <- st })

	if !e.Shoot(nil, SourceAPI) {
		t.Fatal("Shot should dispatch")
	}
	driveUntil(t, e, 200, func() bool { return e.GetStats().Status == "game_over" })

	select {
	case st := <-statusCh:
		if st != StatusGameOver {
			t.Errorf("Expected game over status in callback, got %s", st)
		}
	case <-time.After(time.Second):
		t.Fatal("Status callback not invoked")
	}
}

// TestSnapshotSequenceAdvances tests snapshot publication per tick
func TestSnapshotSequenceAdvances(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1})

	first := e.GetSnapshot().Sequence
	e.Tick()
	second := e.GetSnapshot().Sequence
	if second <= first {
		t.Errorf("Snapshot sequence must advance: %d then %d", first, second)
	}
}

// TestStartStop tests the tick goroutine lifecycle
func TestStartStop(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 1, TickRate: 100})

	e.Start()
	time.Sleep(50 * time.Millisecond)
	e.Stop()

	if e.GetSnapshot().TickNumber == 0 {
		t.Error("Running engine should have ticked")
	}

	// Stop must be idempotent
	e.Stop()
}

// TestDrawColorPrefersBoardColors tests spawn color restriction
func TestDrawColorPrefersBoardColors(t *testing.T) {
	e := NewEngine(EngineConfig{Seed: 7, Levels: testLevels("GGG.GG..")})

	snap := e.GetSnapshot()
	if snap.CurrentColor != ColorGreen.Hex() {
		t.Errorf("Current color should come from the board, got %s", snap.CurrentColor)
	}
	if snap.NextColor != ColorGreen.Hex() {
		t.Errorf("Next color should come from the board, got %s", snap.NextColor)
	}
}
