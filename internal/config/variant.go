package config

// Variant names one of the three versions of the runner.
type Variant string

const (
	// VariantClassic is the baseline: keyboard only, silent, first block
	// spawns on the first running frame.
	VariantClassic Variant = "classic"

	// VariantPlus adds sounds, a faster scroll and quick initial pacing.
	VariantPlus Variant = "plus"

	// VariantTouch adds tap input and the rotate-device prompt.
	VariantTouch Variant = "touch"
)

// Variants lists the presets in release order.
func Variants() []Variant {
	return []Variant{VariantClassic, VariantPlus, VariantTouch}
}

// ParseVariant maps a CLI/config string to a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch Variant(s) {
	case VariantClassic, "":
		return VariantClassic, true
	case VariantPlus:
		return VariantPlus, true
	case VariantTouch:
		return VariantTouch, true
	}
	return "", false
}

// ApplyVariant modifies the config with the preset's pacing, input and audio.
func ApplyVariant(cfg *RunnerConfig, v Variant) {
	cfg.Variant = v

	switch v {
	case VariantPlus:
		cfg.Scroll.Speed = 4
		cfg.Player.JumpVelocity = -520
		cfg.Obstacles.MinDelay = 1000
		cfg.Obstacles.MaxDelay = 4000
		cfg.Obstacles.FirstMinDelay = 1000
		cfg.Obstacles.FirstMaxDelay = 2200
		cfg.Audio.Enabled = true
		cfg.Input.Mode = InputKeyboard
		cfg.Input.OrientationWarning = false

	case VariantTouch:
		cfg.Scroll.Speed = 4
		cfg.Player.JumpVelocity = -520
		cfg.Obstacles.MinDelay = 1200
		cfg.Obstacles.MaxDelay = 4000
		cfg.Obstacles.FirstMinDelay = 1000
		cfg.Obstacles.FirstMaxDelay = 2200
		cfg.Audio.Enabled = true
		cfg.Input.Mode = InputTouch
		cfg.Input.OrientationWarning = true

	default:
		cfg.Variant = VariantClassic
		cfg.Scroll.Speed = 3
		cfg.Player.JumpVelocity = -500
		cfg.Obstacles.MinDelay = 1000
		cfg.Obstacles.MaxDelay = 5300
		cfg.Obstacles.FirstMinDelay = 0
		cfg.Obstacles.FirstMaxDelay = 0
		cfg.Audio.Enabled = false
		cfg.Input.Mode = InputKeyboard
		cfg.Input.OrientationWarning = false
	}
}
