// Package endless hosts the runner loop as a playable terminal game.
// It owns the engine world and session for the current run, feeds them the
// platform's input frames and replaces both when the player restarts.
package endless

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/engine"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

var logger = log.NewWithOptions(io.Discard, log.Options{Prefix: "runner"})

// SetLogger routes session transition logs to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// GameID returns the registry id of a variant.
func GameID(v config.Variant) string {
	switch v {
	case config.VariantPlus:
		return "runner_plus"
	case config.VariantTouch:
		return "runner_touch"
	default:
		return "runner"
	}
}

// Game implements registry.Game for one runner variant.
type Game struct {
	variant config.Variant
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	scale   core.Scale

	world   *engine.World
	session *runner.Session
	input   runner.FrameInput
	bank    *audio.Bank

	runs     int // Sessions started since Reset
	best     int
	tick     uint64
	paused   bool
	portrait bool
	last     runner.State
}

// New creates a runner game for a variant.
func New(v config.Variant) *Game {
	return &Game{variant: v}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID(g.variant)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.variant {
	case config.VariantPlus:
		return "Runner Plus"
	case config.VariantTouch:
		return "Runner Touch"
	default:
		return "Runner"
	}
}

// Reset loads the configuration and starts a fresh session sized to the screen.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.runtime = rt

	cfg, err := config.LoadRunner(configPath, g.variant)
	if err != nil {
		logger.Warn("falling back to built-in config", "game", g.ID(), "err", err)
		cfg = config.VariantConfig(g.variant)
	}
	g.cfg = cfg
	g.scale = core.Scale{CellW: cfg.World.CellWidth, CellH: cfg.World.CellHeight}
	g.bank = audio.NewBank(rt.Bell)
	g.portrait = Portrait(rt.ScreenW, rt.ScreenH)
	g.paused = false
	g.tick = 0
	g.runs = 0

	g.newSession()
}

// Portrait reports whether a terminal is taller than it is wide, counting a
// cell as twice as tall as it is wide.
func Portrait(cols, rows int) bool {
	return cols < 2*rows
}

// Resize adopts a new screen size. An unfinished run restarts at the new
// size; a finished run stays on screen and the next restart uses it.
func (g *Game) Resize(rt core.RuntimeConfig) {
	if g.session == nil || g.session.State() != runner.StateGameOver {
		g.Reset(rt)
		return
	}
	g.runtime = rt
	g.portrait = Portrait(rt.ScreenW, rt.ScreenH)
	logger.Debug("resized finished run", "game", g.ID(), "cols", rt.ScreenW, "rows", rt.ScreenH)
}

// newSession replaces the world and session with fresh ones.
func (g *Game) newSession() {
	g.world = engine.NewWorld(engine.Config{
		Width:   float64(g.runtime.ScreenW) * g.cfg.World.CellWidth,
		Height:  float64(g.runtime.ScreenH) * g.cfg.World.CellHeight,
		Gravity: g.cfg.World.Gravity,
		Seed:    g.runtime.Seed + int64(g.runs),
	})

	if g.cfg.Audio.Enabled {
		g.world.LoadSound(runner.SoundTheme, g.bank.Load(runner.SoundTheme, true))
		g.world.LoadSound(runner.SoundJump, g.bank.Load(runner.SoundJump, false))
		g.world.LoadSound(runner.SoundCrash, g.bank.Load(runner.SoundCrash, false))
	}

	g.input = runner.NewInput(g.cfg.Input.Mode)
	g.session = runner.NewSession(g.world, g.input, runner.ParamsFrom(g.cfg))
	g.world.Register(g.session)
	g.last = g.session.State()
	g.runs++

	logger.Debug("session created", "game", g.ID(), "run", g.runs, "tiles", len(g.session.Tiles()))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.session.State() == runner.StateRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.input.Latch(in)
	if touch, ok := g.input.(*runner.TouchInput); ok {
		touch.SetOverlay(g.cfg.Input.OrientationWarning && g.portrait)
	}

	g.world.Frame(g.runtime.FrameSeconds())
	g.tick++

	if st := g.session.State(); st != g.last {
		logger.Debug("session transition",
			"game", g.ID(), "from", g.last, "to", st, "score", g.session.DisplayScore())
		g.last = st
	}
	if shown := g.session.DisplayScore(); shown > g.best {
		g.best = shown
	}

	if g.session.RestartRequested() {
		g.bank.StopAll()
		g.newSession()
		return core.StepResult{State: g.State(), Restarted: true}
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.DisplayScore(),
		GameOver: g.session.State() == runner.StateGameOver,
		Paused:   g.paused,
		Phase:    g.session.State().String(),
	}
}

// SetBest seeds the best score shown in the HUD.
func (g *Game) SetBest(score int) {
	if score > g.best {
		g.best = score
	}
}

// Best returns the best displayed score seen.
func (g *Game) Best() int { return g.best }

// Session returns the current session.
func (g *Game) Session() *runner.Session { return g.session }

// World returns the current engine world.
func (g *Game) World() *engine.World { return g.world }

// Config returns the loaded runner configuration.
func (g *Game) Config() config.RunnerConfig { return g.cfg }

// Register the variants with the registry
func init() {
	for _, v := range config.Variants() {
		registry.Register(GameID(v), func() registry.Game {
			return New(v)
		})
	}
}
