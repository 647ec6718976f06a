// Package config provides YAML/TOML-based runner configuration loading and
// the variant presets that distinguish the three versions of the game.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all configuration for the endless runner.
// Distances are world units (one terminal column is World.CellWidth units),
// delays are milliseconds of frame time.
type RunnerConfig struct {
	Variant   Variant         `yaml:"variant" toml:"variant"`
	World     RunnerWorld     `yaml:"world" toml:"world"`
	Scroll    RunnerScroll    `yaml:"scroll" toml:"scroll"`
	Player    RunnerPlayer    `yaml:"player" toml:"player"`
	Ground    RunnerGround    `yaml:"ground" toml:"ground"`
	Obstacles RunnerObstacles `yaml:"obstacles" toml:"obstacles"`
	Score     RunnerScore     `yaml:"score" toml:"score"`
	Audio     RunnerAudio     `yaml:"audio" toml:"audio"`
	Input     RunnerInput     `yaml:"input" toml:"input"`
}

// RunnerWorld defines the simulated playfield.
type RunnerWorld struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"`
	Gravity    float64 `yaml:"gravity" toml:"gravity"` // units/s²
}

// RunnerScroll defines camera movement.
type RunnerScroll struct {
	Speed    float64 `yaml:"speed" toml:"speed"`       // units per frame
	Parallax float64 `yaml:"parallax" toml:"parallax"` // cloud layer factor
}

// RunnerPlayer defines the player body.
type RunnerPlayer struct {
	Offset       float64 `yaml:"offset" toml:"offset"` // distance from the camera's left edge
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	JumpVelocity float64 `yaml:"jump_velocity" toml:"jump_velocity"` // negative is up, units/s
	DropHeight   float64 `yaml:"drop_height" toml:"drop_height"`     // spawn height above the ground
}

// RunnerGround defines the recycled tile ring.
type RunnerGround struct {
	TileWidth  float64 `yaml:"tile_width" toml:"tile_width"`
	TileHeight float64 `yaml:"tile_height" toml:"tile_height"`
	Coverage   float64 `yaml:"coverage" toml:"coverage"` // viewports covered by the ring
}

// RunnerObstacles defines block size, placement and spawn pacing.
type RunnerObstacles struct {
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	SpawnMargin   float64 `yaml:"spawn_margin" toml:"spawn_margin"`
	DespawnBuffer float64 `yaml:"despawn_buffer" toml:"despawn_buffer"`
	MinDelay      int     `yaml:"min_delay" toml:"min_delay"`
	MaxDelay      int     `yaml:"max_delay" toml:"max_delay"`
	FirstMinDelay int     `yaml:"first_min_delay" toml:"first_min_delay"` // 0 = spawn on the first running frame
	FirstMaxDelay int     `yaml:"first_max_delay" toml:"first_max_delay"`
}

// RunnerScore defines score display.
type RunnerScore struct {
	Divisor int `yaml:"divisor" toml:"divisor"` // raw frames per displayed point
}

// RunnerAudio toggles the named sounds.
type RunnerAudio struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// RunnerInput selects the input source.
type RunnerInput struct {
	Mode               InputMode `yaml:"mode" toml:"mode"`
	OrientationWarning bool      `yaml:"orientation_warning" toml:"orientation_warning"`
}

// InputMode names an input source implementation.
type InputMode string

const (
	InputKeyboard InputMode = "keyboard"
	InputTouch    InputMode = "touch"
)

// HasFirstDelay reports whether the first post-start spawn uses its own range.
func (o RunnerObstacles) HasFirstDelay() bool {
	return o.FirstMaxDelay > 0
}

// MinCoverage is the smallest ground ring, in viewports, that keeps the view
// covered while the camera moves.
const MinCoverage = 2

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid runner config")

// Validate checks the values the runner loop depends on.
func (c RunnerConfig) Validate() error {
	switch {
	case c.World.CellWidth <= 0 || c.World.CellHeight <= 0:
		return fmt.Errorf("%w: cell size must be positive", ErrInvalidConfig)
	case c.Scroll.Speed <= 0:
		return fmt.Errorf("%w: scroll speed must be positive", ErrInvalidConfig)
	case c.Ground.TileWidth <= 0 || c.Ground.TileHeight <= 0:
		return fmt.Errorf("%w: tile size must be positive", ErrInvalidConfig)
	case c.Ground.Coverage < MinCoverage:
		return fmt.Errorf("%w: ground coverage must be at least %v viewports", ErrInvalidConfig, MinCoverage)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump velocity must be negative (up)", ErrInvalidConfig)
	case c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0:
		return fmt.Errorf("%w: obstacle size must be positive", ErrInvalidConfig)
	case c.Obstacles.MinDelay <= 0 || c.Obstacles.MaxDelay < c.Obstacles.MinDelay:
		return fmt.Errorf("%w: spawn delay range [%d, %d]", ErrInvalidConfig, c.Obstacles.MinDelay, c.Obstacles.MaxDelay)
	case c.Obstacles.HasFirstDelay() && (c.Obstacles.FirstMinDelay <= 0 || c.Obstacles.FirstMaxDelay < c.Obstacles.FirstMinDelay):
		return fmt.Errorf("%w: first spawn delay range [%d, %d]", ErrInvalidConfig, c.Obstacles.FirstMinDelay, c.Obstacles.FirstMaxDelay)
	case c.Score.Divisor <= 0:
		return fmt.Errorf("%w: score divisor must be positive", ErrInvalidConfig)
	}

	switch c.Input.Mode {
	case InputKeyboard, InputTouch:
	default:
		return fmt.Errorf("%w: unknown input mode %q", ErrInvalidConfig, c.Input.Mode)
	}
	return nil
}
