package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the classic configuration from the embedded
// defaults, falling back to the hardcoded values if the embed is unreadable.
func DefaultRunnerConfig() RunnerConfig {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return hardcodedRunnerConfig()
	}
	return cfg
}

// VariantConfig returns the defaults with the variant preset applied.
func VariantConfig(v Variant) RunnerConfig {
	cfg := DefaultRunnerConfig()
	ApplyVariant(&cfg, v)
	return cfg
}

// hardcodedRunnerConfig mirrors defaults/runner.yaml.
func hardcodedRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Variant: VariantClassic,
		World: RunnerWorld{
			CellWidth:  10,
			CellHeight: 20,
			Gravity:    1000,
		},
		Scroll: RunnerScroll{
			Speed:    3,
			Parallax: 0.3,
		},
		Player: RunnerPlayer{
			Offset:       100,
			Width:        58,
			Height:       73,
			JumpVelocity: -500,
			DropHeight:   100,
		},
		Ground: RunnerGround{
			TileWidth:  54,
			TileHeight: 40,
			Coverage:   2,
		},
		Obstacles: RunnerObstacles{
			Width:         54,
			Height:        72,
			SpawnMargin:   100,
			DespawnBuffer: 200,
			MinDelay:      1000,
			MaxDelay:      5300,
		},
		Score: RunnerScore{
			Divisor: 10,
		},
		Audio: RunnerAudio{
			Enabled: false,
		},
		Input: RunnerInput{
			Mode: InputKeyboard,
		},
	}
}
