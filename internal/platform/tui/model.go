package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/spectate"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// DefaultPublishEvery is how many ticks pass between spectator snapshots.
const DefaultPublishEvery = 6

// Publisher receives live events for spectators.
type Publisher interface {
	Publish(e spectate.Event) bool
}

// Options configures a game model beyond the game itself.
type Options struct {
	Store  *storage.Store
	Player string // Recorded with saved scores; empty means storage.DefaultPlayer
	Feed   Publisher
	Logger *log.Logger

	// PublishEvery is the snapshot interval in ticks. Zero uses DefaultPublishEvery.
	PublishEvery int

	// AllowBack lets B/Esc leave a paused or finished game for the menu.
	AllowBack bool
}

// Model is the Bubble Tea model for one running game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      uint64
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the score has been saved for the current run
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.PublishEvery <= 0 {
		opts.PublishEvery = DefaultPublishEvery
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.loadBest()
	return tickCmd(m.config.TickRate)
}

// loadBest seeds the HUD best score from storage.
func (m Model) loadBest() {
	keeper, ok := m.game.(registry.BestKeeper)
	if !ok || m.opts.Store == nil {
		return
	}
	best, err := m.opts.Store.HighScore(m.game.ID())
	if err != nil {
		m.opts.Logger.Warn("Could not load best score", "game", m.game.ID(), "err", err)
		return
	}
	keeper.SetBest(best)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen and hands the new size to the game.
// Games without their own resize handling restart unless the run is over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	switch g := m.game.(type) {
	case registry.Resizer:
		g.Resize(m.config)
	default:
		if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
	}
	m.gameState = m.game.State()
	return m, nil
}

// handleTick advances the game by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.ticks++

	if result.Restarted {
		m.scoreSaved = false
	}
	m.gameState = result.State

	// Save the score once per finished run
	if m.gameState.GameOver && !m.scoreSaved {
		m.finishRun()
		m.scoreSaved = true
	}

	if m.ticks%uint64(m.opts.PublishEvery) == 0 {
		m.publishSnapshot()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) finishRun() {
	score := m.gameState.Score
	if m.opts.Store != nil && score > 0 {
		if _, err := m.opts.Store.SaveScore(m.game.ID(), m.opts.Player, score); err != nil {
			m.opts.Logger.Warn("Could not save score", "game", m.game.ID(), "score", score, "err", err)
		}
	}
	m.opts.Logger.Info("Run over", "game", m.game.ID(), "player", m.opts.Player, "score", score)

	if m.opts.Feed != nil {
		m.opts.Feed.Publish(spectate.Event{
			Kind:   spectate.KindRunOver,
			Game:   m.game.ID(),
			Player: m.opts.Player,
			Data:   map[string]int{"score": score},
		})
	}
}

func (m Model) publishSnapshot() {
	if m.opts.Feed == nil {
		return
	}
	sp, ok := m.game.(registry.Spectated)
	if !ok {
		return
	}
	m.opts.Feed.Publish(spectate.Event{
		Kind:   spectate.KindSnapshot,
		Game:   m.game.ID(),
		Player: m.opts.Player,
		Data:   sp.SpectatorState(),
	})
}

// saveScreenshot saves the current screen to ~/.runner/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState { return m.gameState }

// IsQuitting reports whether the player asked to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run plays a single game in the local terminal until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Left clicks are taps
	)

	_, err := p.Run()
	return err
}
