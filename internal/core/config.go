package core

import "io"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int       // Screen width in characters
	ScreenH  int       // Screen height in characters
	TickRate int       // Simulation ticks per second (default 60)
	Seed     int64     // RNG seed for deterministic gameplay
	Bell     io.Writer // Sink for terminal bell sounds; nil means silent
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameSeconds returns the duration of one tick in seconds.
func (c RuntimeConfig) FrameSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int    // Displayed score
	GameOver bool   // Whether the run has ended
	Paused   bool   // Whether the game is paused
	Phase    string // Game-specific phase name, e.g. "running"
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState

	// Restarted is set on the tick a finished run was replaced by a new one.
	Restarted bool
}
