package runner

import (
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
)

// InputSource is the only view the session has of the player's device.
type InputSource interface {
	JumpPressed() bool
	RestartPressed() bool
}

// FrameInput is an InputSource fed once per frame by the platform.
type FrameInput interface {
	InputSource

	// Latch records the actions polled for the coming frame.
	// The most recent latched frame wins.
	Latch(f core.InputFrame)
}

// KeyboardInput maps the jump and restart keys.
type KeyboardInput struct {
	frame core.InputFrame
}

// Latch records this frame's actions.
func (k *KeyboardInput) Latch(f core.InputFrame) { k.frame = f }

// JumpPressed reports the jump key.
func (k *KeyboardInput) JumpPressed() bool { return k.frame.Has(core.ActionJump) }

// RestartPressed reports the restart key.
func (k *KeyboardInput) RestartPressed() bool { return k.frame.Has(core.ActionRestart) }

// TouchInput treats a pointer press as both jump and restart.
// While the orientation overlay is up every press is swallowed.
type TouchInput struct {
	frame   core.InputFrame
	overlay bool
}

// Latch records this frame's actions.
func (t *TouchInput) Latch(f core.InputFrame) { t.frame = f }

// SetOverlay shows or hides the orientation warning.
func (t *TouchInput) SetOverlay(shown bool) { t.overlay = shown }

// Overlay reports whether the orientation warning is shown.
func (t *TouchInput) Overlay() bool { return t.overlay }

// JumpPressed reports a tap.
func (t *TouchInput) JumpPressed() bool { return t.tapped() }

// RestartPressed reports a tap.
func (t *TouchInput) RestartPressed() bool { return t.tapped() }

func (t *TouchInput) tapped() bool {
	return !t.overlay && t.frame.Has(core.ActionTap)
}

// NewInput returns the input source for a configured mode.
func NewInput(mode config.InputMode) FrameInput {
	if mode == config.InputTouch {
		return &TouchInput{}
	}
	return &KeyboardInput{}
}
