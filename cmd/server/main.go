package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"bubble-pop/internal/api"
	"bubble-pop/internal/config"
	"bubble-pop/internal/game"
	"bubble-pop/internal/game/spatial"
	"bubble-pop/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		// Try current directory as fallback
		if err := godotenv.Load(".env"); err != nil {
			log.Println("💡 No .env file found, using environment variables only")
		}
	} else {
		log.Println("✅ Loaded environment from ../.env")
	}

	log.Println("🫧 ================================")
	log.Println("🫧  BUBBLE POP - GO ENGINE")
	log.Println("🫧 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	gameCfg := appConfig.Game
	searchCfg := appConfig.Search
	serverCfg := appConfig.Server

	port := strconv.Itoa(serverCfg.Port)

	log.Printf("🎮 Config: %dx%d board, radius %.0f, %d colors, %d TPS",
		gameCfg.Rows, gameCfg.Cols, gameCfg.BubbleRadius, gameCfg.ColorCount, gameCfg.TickRate)

	// Path search parameters start from board-derived defaults, then take
	// the env overrides loaded above.
	search := spatial.DefaultPathConfig(gameCfg.BubbleRadius)
	if searchCfg.StepSize > 0 {
		search.StepSize = searchCfg.StepSize
	}
	search.Directions = searchCfg.Directions
	search.MaxIterations = searchCfg.MaxIterations
	search.NodeTolerance = searchCfg.NodeTolerance

	// Create game engine with centralized config
	engine := game.NewEngine(game.EngineConfig{
		Rows:             gameCfg.Rows,
		Cols:             gameCfg.Cols,
		BubbleRadius:     gameCfg.BubbleRadius,
		ColorCount:       gameCfg.ColorCount,
		ShotsPerDrop:     gameCfg.ShotsPerDrop,
		ProjectileSpeed:  gameCfg.ProjectileSpeed,
		TickRate:         gameCfg.TickRate,
		BasePoints:       gameCfg.BasePoints,
		FloatingBonus:    gameCfg.FloatingBonus,
		PopDelayTicks:    gameCfg.PopDelayTicks,
		AIShotDelayTicks: gameCfg.AIShotDelayTicks,
		GameOverRow:      gameCfg.GameOverRow,
		Search:           search,
	})

	fieldW, fieldH := engine.FieldSize()
	log.Printf("🗺️ Field: %.0fx%.0f px", fieldW, fieldH)

	// Start event log
	eventLogPath := getEnvWithDefault("EVENT_LOG_PATH", "events.jsonl")
	if err := engine.StartEventLog(eventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", eventLogPath)
	}

	// Start debug server
	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Frame renderer for GET /api/frame
	renderer := render.NewRenderer(fieldW, fieldH, gameCfg.BubbleRadius)

	// Create API server
	server := api.NewServer(engine, renderer)

	// Auto-play can start enabled for unattended boards
	if os.Getenv("AI_MODE") == "true" {
		engine.SetAIMode(true)
		log.Println("🤖 AI mode enabled at startup")
	}
	if os.Getenv("SHOW_AIM_PATH") == "true" {
		engine.SetPathVisible(true)
	}

	// Start game engine
	engine.Start()
	log.Println("✅ Game Engine started")

	// Start API server in goroutine
	go func() {
		addr := ":" + port
		log.Printf("🌐 API server on http://localhost%s", addr)

		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	engine.StopEventLog()
	engine.Stop()
	log.Println("👋 Goodbye!")
}

func getEnvWithDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
