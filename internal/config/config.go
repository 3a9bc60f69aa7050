// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all game and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// GAME CONFIGURATION
// =============================================================================

// GameConfig holds the board geometry and turn mechanics.
type GameConfig struct {
	Rows         int     // Lattice rows
	Cols         int     // Columns in even rows (odd rows hold one less)
	BubbleRadius float64 // Bubble radius in pixels
	ColorCount   int     // Active palette size (3..6)

	ShotsPerDrop    int     // Clean shots before a forced downward drop
	ProjectileSpeed float64 // Projectile speed in pixels per tick
	TickRate        int     // Simulation ticks per second

	BasePoints    int // Points per bubble in a popped match
	FloatingBonus int // Points per bubble dropped by floating detection

	PopDelayTicks    int // Ticks between popping mark and removal (0 = immediate)
	AIShotDelayTicks int // Ticks the auto-shooter waits after a resolved turn

	GameOverRow int // Bubble reaching this row ends the session
}

// DefaultGame returns the default game configuration.
func DefaultGame() GameConfig {
	return GameConfig{
		Rows:             12,
		Cols:             8,
		BubbleRadius:     20,
		ColorCount:       6,
		ShotsPerDrop:     6,
		ProjectileSpeed:  25,
		TickRate:         30,
		BasePoints:       10,
		FloatingBonus:    20,
		PopDelayTicks:    9, // ~300ms at 30 TPS
		AIShotDelayTicks: 30,
		GameOverRow:      11,
	}
}

// GameFromEnv returns game configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func GameFromEnv() GameConfig {
	cfg := DefaultGame()

	if v := getEnvInt("GRID_ROWS", 0); v > 0 {
		cfg.Rows = v
		cfg.GameOverRow = v - 1
	}
	if v := getEnvInt("GRID_COLS", 0); v > 1 {
		cfg.Cols = v
	}
	if v := getEnvFloat("BUBBLE_RADIUS", 0); v > 0 {
		cfg.BubbleRadius = v
	}
	if v := getEnvInt("COLOR_COUNT", 0); v >= 3 && v <= 6 {
		cfg.ColorCount = v
	}
	if v := getEnvInt("SHOTS_PER_DROP", 0); v > 0 {
		cfg.ShotsPerDrop = v
	}
	if v := getEnvFloat("PROJECTILE_SPEED", 0); v > 0 {
		cfg.ProjectileSpeed = v
	}
	if v := getEnvInt("TICK_RATE", 0); v > 0 {
		cfg.TickRate = v
	}
	if v := getEnvInt("GAME_OVER_ROW", 0); v > 0 && v < cfg.Rows {
		cfg.GameOverRow = v
	}

	return cfg
}

// =============================================================================
// PATH SEARCH CONFIGURATION
// =============================================================================

// SearchConfig holds the auto-aim path search parameters.
// The per-turn cost bound is MaxIterations × Directions.
type SearchConfig struct {
	StepSize      float64 // Sample step distance (0 = bubble radius)
	Directions    int     // Sampled angles per expansion
	MaxIterations int     // Expansion cap before direct fallback
	NodeTolerance float64 // Spatial dedup tolerance
}

// DefaultSearch returns the default path search configuration.
func DefaultSearch() SearchConfig {
	return SearchConfig{
		StepSize:      0, // derived from bubble radius
		Directions:    16,
		MaxIterations: 500,
		NodeTolerance: 10,
	}
}

// SearchFromEnv returns search configuration with environment overrides.
func SearchFromEnv() SearchConfig {
	cfg := DefaultSearch()

	if v := getEnvInt("SEARCH_DIRECTIONS", 0); v >= 4 {
		cfg.Directions = v
	}
	if v := getEnvInt("SEARCH_MAX_ITERATIONS", 0); v > 0 {
		cfg.MaxIterations = v
	}
	if v := getEnvFloat("SEARCH_STEP_SIZE", 0); v > 0 {
		cfg.StepSize = v
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game   GameConfig
	Search SearchConfig
	Server ServerConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Game:   GameFromEnv(),
		Search: SearchFromEnv(),
		Server: ServerFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
