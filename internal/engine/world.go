// Package engine is the minimal arcade engine the runner is driven by.
// It owns the frame clock, camera, bodies, a gravity-and-contact physics
// step, overlap callbacks, text overlays and named sounds. Game logic plugs
// in through Lifecycle and never touches the terminal.
package engine

import (
	"math/rand"

	"github.com/vovakirdan/tui-runner/internal/audio"
)

// Lifecycle is implemented by game logic registered with a World.
type Lifecycle interface {
	// OnInit runs once when registered: build entities and overlays.
	OnInit()

	// OnFrame runs once per frame before physics, dt in seconds.
	OnFrame(dt float64)

	// OnCollision runs when two bodies in a registered overlap pair touch.
	OnCollision(a, b *Body)
}

// Config sizes a world.
type Config struct {
	Width   float64 // Viewport width in world units
	Height  float64 // World height in world units
	Gravity float64 // Units per second squared, positive is down
	Seed    int64
}

type pair struct {
	a, b Kind
}

// World is one play session's simulation.
// It is not safe for concurrent use; the platform drives it from a single
// update loop.
type World struct {
	cfg       Config
	now       float64 // ms since creation
	scrollX   float64
	bgOffset  float64
	paused    bool
	bodies    []*Body
	nextID    int
	colliders []pair
	overlaps  []pair
	texts     []*Text
	sounds    map[string]audio.Sound
	rng       *rand.Rand
	life      Lifecycle
	frames    int
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	return &World{
		cfg:    cfg,
		sounds: make(map[string]audio.Sound),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Register attaches the game logic and runs its OnInit.
func (w *World) Register(l Lifecycle) {
	w.life = l
	l.OnInit()
}

// Frame advances the world by one frame of dt seconds:
// game logic first, then physics and collision callbacks, then the clock.
func (w *World) Frame(dt float64) {
	if w.life != nil {
		w.life.OnFrame(dt)
	}
	if !w.paused {
		w.integrate(dt)
		w.resolveContacts()
		w.dispatchOverlaps()
	}
	w.now += dt * 1000
	w.frames++
}

// Now returns the monotonic frame time in milliseconds.
func (w *World) Now() float64 { return w.now }

// Frames returns the number of frames processed.
func (w *World) Frames() int { return w.frames }

// RandomInt returns a uniform integer in [lo, hi].
func (w *World) RandomInt(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + w.rng.Intn(hi-lo+1)
}

// Viewport returns the visible width.
func (w *World) Viewport() float64 { return w.cfg.Width }

// Height returns the world height.
func (w *World) Height() float64 { return w.cfg.Height }

// ScrollX returns the camera's left edge.
func (w *World) ScrollX() float64 { return w.scrollX }

// SetScrollX moves the camera.
func (w *World) SetScrollX(x float64) { w.scrollX = x }

// SetBackgroundOffset sets the scroll of the fixed background layer.
func (w *World) SetBackgroundOffset(x float64) { w.bgOffset = x }

// BackgroundOffset returns the background layer scroll.
func (w *World) BackgroundOffset() float64 { return w.bgOffset }

// Pause freezes physics and collision callbacks. The clock keeps running.
func (w *World) Pause() { w.paused = true }

// Resume restarts physics.
func (w *World) Resume() { w.paused = false }

// Paused reports whether physics is frozen.
func (w *World) Paused() bool { return w.paused }

// LoadSound registers a sound under name.
func (w *World) LoadSound(name string, s audio.Sound) {
	if s == nil {
		return
	}
	w.sounds[name] = s
}

// Sound returns the named sound, or nil if it was never loaded.
func (w *World) Sound(name string) audio.Sound {
	s, ok := w.sounds[name]
	if !ok {
		return nil
	}
	return s
}
