package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"bubble-pop/internal/game"
	"bubble-pop/internal/game/spatial"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	// Lock-free snapshot read, safe to call at any poll rate
	snap := h.engine.GetSnapshot()

	state := map[string]interface{}{
		"tick":           snap.TickNumber,
		"sequence":       snap.Sequence,
		"status":         snap.Status.String(),
		"score":          snap.Score,
		"level":          snap.Level,
		"shotsTaken":     snap.ShotsTaken,
		"shotsUntilDrop": snap.ShotsUntilDrop,
		"bubbleCount":    snap.BubbleCount,
		"currentColor":   snap.CurrentColor,
		"nextColor":      snap.NextColor,
		"aiMode":         snap.AIMode,
		"paused":         snap.Paused,
		"bubbles":        snap.Bubbles,
	}

	if snap.HasShot {
		state["shot"] = snap.Shot
	}
	if snap.PathVisible && len(snap.AimPath) > 0 {
		state["aimPath"] = snap.AimPath
	}

	writeJSON(w, state)
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.GetSnapshot()
	stats := map[string]interface{}{
		"score":          snap.Score,
		"level":          snap.Level,
		"shots":          snap.ShotsTaken,
		"shotsUntilDrop": snap.ShotsUntilDrop,
		"bubbleCount":    snap.BubbleCount,
		"status":         snap.Status.String(),
		"aiMode":         snap.AIMode,
		"eventLog":       h.engine.GetEventLogStats(),
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, "Frame rendering disabled", http.StatusNotFound)
		return
	}

	snap := h.engine.GetSnapshot()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")

	start := time.Now()
	if err := h.renderer.RenderPNG(w, snap); err != nil {
		// Headers are already sent, nothing sensible left to do
		return
	}
	RecordFrameRender(time.Since(start))
}

func (h *routerHandlers) handleShoot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}

	// An empty body is allowed and means "fire at the computed aim"
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if (req.X == nil) != (req.Y == nil) {
		writeError(w, "Both x and y are required for a targeted shot", http.StatusBadRequest)
		return
	}

	var target *spatial.Point
	if req.X != nil {
		target = &spatial.Point{X: *req.X, Y: *req.Y}
	}

	fired := h.engine.Shoot(target, game.SourceAPI)
	recordShotOutcome(fired)
	writeJSON(w, map[string]bool{"fired": fired})
}

func (h *routerHandlers) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	fired := h.engine.HandlePointerInput(req.X, req.Y)
	recordShotOutcome(fired)
	writeJSON(w, map[string]bool{"fired": fired})
}

func (h *routerHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.Reset()
	writeJSON(w, h.engine.GetStats())
}

func (h *routerHandlers) handleAdvanceLevel(w http.ResponseWriter, r *http.Request) {
	h.engine.AdvanceLevel()
	writeJSON(w, h.engine.GetStats())
}

func (h *routerHandlers) handleSetAI(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.engine.SetAIMode(req.Enabled)
	writeJSON(w, map[string]bool{"aiMode": req.Enabled})
}

func (h *routerHandlers) handleSetPath(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Visible bool `json:"visible"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.engine.SetPathVisible(req.Visible)
	writeJSON(w, map[string]bool{"pathVisible": req.Visible})
}

func (h *routerHandlers) handleSetPause(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Paused bool `json:"paused"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	h.engine.SetPaused(req.Paused)
	writeJSON(w, map[string]bool{"paused": req.Paused})
}

func recordShotOutcome(fired bool) {
	if fired {
		RecordShot("fired")
		return
	}
	RecordShot("rejected")
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
