package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/endless"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/spectate"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

type recorder struct {
	events []spectate.Event
}

func (r *recorder) Publish(e spectate.Event) bool {
	r.events = append(r.events, e)
	return true
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestModel builds and initializes a model with user config isolated.
func newTestModel(t *testing.T, gameID string, opts Options) Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	endless.SetConfigPath("")

	game, err := registry.Create(gameID)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(game, testConfig(), opts)
	m.Init()
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func tickN(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m = send(m, TickMsg{})
	}
	return m
}

func tickUntil(m Model, limit int, done func(Model) bool) (Model, bool) {
	for i := 0; i < limit; i++ {
		if done(m) {
			return m, true
		}
		m = send(m, TickMsg{})
	}
	return m, done(m)
}

// playToGameOver lands the player, starts the run and waits for the crash.
func playToGameOver(t *testing.T, m Model, start tea.Msg) Model {
	t.Helper()
	m = tickN(m, 120)
	m = send(m, start)
	m = send(m, TickMsg{})
	if m.State().Phase != "running" {
		t.Fatalf("phase = %q after start input", m.State().Phase)
	}
	m, ok := tickUntil(m, 1000, func(m Model) bool { return m.State().GameOver })
	if !ok {
		t.Fatal("run never ended")
	}
	return m
}

func TestModelSavesScoreOncePerRun(t *testing.T) {
	store := openStore(t)
	feed := &recorder{}
	m := newTestModel(t, "runner", Options{Store: store, Player: "ana", Feed: feed})

	m = playToGameOver(t, m, tea.KeyMsg{Type: tea.KeySpace})
	final := m.State().Score
	m = tickN(m, 30)

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(scores))
	}
	if scores[0].Player != "ana" || scores[0].Score != final {
		t.Errorf("saved %+v, expected ana with %d", scores[0], final)
	}
	if feed.count(spectate.KindRunOver) != 1 {
		t.Errorf("run_over events = %d, expected 1", feed.count(spectate.KindRunOver))
	}

	// Restart and finish a second run
	m = send(m, runeKey("r"))
	m = send(m, TickMsg{})
	if m.State().GameOver || m.State().Phase != "waiting" {
		t.Fatalf("state after restart = %+v", m.State())
	}
	playToGameOver(t, m, tea.KeyMsg{Type: tea.KeySpace})

	scores, _ = store.TopScores("runner", 10)
	if len(scores) != 2 {
		t.Errorf("expected 2 saved runs after restart, got %d", len(scores))
	}
}

func TestModelPublishesSnapshots(t *testing.T) {
	feed := &recorder{}
	m := newTestModel(t, "runner", Options{Feed: feed, Player: "bo", PublishEvery: 5})

	tickN(m, 20)
	if got := feed.count(spectate.KindSnapshot); got != 4 {
		t.Fatalf("snapshots = %d, expected 4", got)
	}

	e := feed.events[0]
	if e.Game != "runner" || e.Player != "bo" {
		t.Errorf("event = %+v", e)
	}
	if _, ok := e.Data.(endless.Snapshot); !ok {
		t.Errorf("snapshot data has type %T", e.Data)
	}
}

func TestModelLoadsBestFromStore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("runner_plus", "ana", 77); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, "runner_plus", Options{Store: store})
	g := m.game.(*endless.Game)
	if g.Best() != 77 {
		t.Errorf("Best() = %d, expected 77 from storage", g.Best())
	}
}

func TestModelBackToMenu(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		m := newTestModel(t, "runner", Options{})
		m = tickN(m, 5)
		m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.BackToMenu() {
			t.Error("back should be ignored for a standalone game")
		}
	})

	t.Run("only when paused or over", func(t *testing.T) {
		m := newTestModel(t, "runner", Options{AllowBack: true})
		m = tickN(m, 5)
		m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
		if m.BackToMenu() {
			t.Error("back should be ignored while waiting")
		}

		m = playToGameOver(t, m, tea.KeyMsg{Type: tea.KeySpace})
		m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
		if !m.BackToMenu() {
			t.Error("back should work after game over")
		}
		if m.View() != "" {
			t.Error("view should be empty once leaving")
		}
	})
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, "runner", Options{})
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestModelMouseTapStartsTouchRun(t *testing.T) {
	m := newTestModel(t, "runner_touch", Options{})
	m = tickN(m, 120)

	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(m, TickMsg{})
	if m.State().Phase != "waiting" {
		t.Fatal("touch variant should ignore the keyboard")
	}

	m = send(m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(m, TickMsg{})
	if m.State().Phase != "running" {
		t.Errorf("phase = %q after a tap", m.State().Phase)
	}
}

func TestModelResizeRestartsUnfinishedRun(t *testing.T) {
	m := newTestModel(t, "runner", Options{})
	m = tickN(m, 120)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = tickN(m, 10)

	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.State().Phase != "waiting" {
		t.Errorf("phase = %q after resize", m.State().Phase)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, "runner", Options{})
	m = tickN(m, 2)

	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("view is missing the score")
	}
	if got := strings.Count(view, "\n"); got != 23 {
		t.Errorf("view has %d line breaks, expected 23", got)
	}
}

func TestModelResizeAfterGameOverSizesNextRun(t *testing.T) {
	m := newTestModel(t, "runner", Options{})
	m = playToGameOver(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m = send(m, tea.WindowSizeMsg{Width: 200, Height: 50})
	if !m.State().GameOver {
		t.Fatal("resize should not end the game-over screen")
	}

	m = send(m, runeKey("r"))
	m = send(m, TickMsg{})
	if m.State().Phase != "waiting" {
		t.Fatalf("phase = %q after restart", m.State().Phase)
	}

	g := m.game.(*endless.Game)
	if got := g.World().Viewport(); got != 2000 {
		t.Errorf("restarted viewport = %v, expected 2000 for 200 columns", got)
	}
	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("view is missing the score after restart")
	}
}
