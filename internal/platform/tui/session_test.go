package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/endless"
)

func newTestSession(t *testing.T, opts Options) SessionModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	endless.SetConfigPath("")
	return NewSessionModel(testConfig(), opts)
}

func sendSession(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t, Options{})
	if !strings.Contains(m.View(), "Runner Plus") {
		t.Fatal("menu should list the variants")
	}

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start the selected game")
	}
	if id := m.gameModel.game.ID(); id != "runner_plus" {
		t.Errorf("started %q, expected runner_plus", id)
	}

	// Play until the run ends, then leave for the menu
	for i := 0; i < 120; i++ {
		m = sendSession(m, TickMsg{})
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 1000 && !m.gameModel.State().GameOver; i++ {
		m = sendSession(m, TickMsg{})
	}
	if !m.gameModel.State().GameOver {
		t.Fatal("run never ended")
	}

	m = sendSession(m, runeKey("b"))
	if m.gameModel != nil {
		t.Fatal("b after game over should return to the menu")
	}
	if m.quitting {
		t.Error("returning to the menu must not end the session")
	}

	// Stray ticks from the finished game are ignored by the menu
	m = sendSession(m, TickMsg{})
	if !strings.Contains(m.View(), "Pick a variant") {
		t.Error("menu not shown after returning")
	}
}

func TestSessionScoreboard(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("runner", "ana", 12); err != nil {
		t.Fatal(err)
	}
	m := newTestSession(t, Options{Store: store})

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.board == nil {
		t.Fatal("tab should open the scoreboard")
	}
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "ana") {
		t.Errorf("scoreboard view missing data:\n%s", view)
	}

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.board != nil || m.quitting {
		t.Error("esc should return to the menu")
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t, Options{})
	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}

func TestMenuShowsBestScores(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("runner_touch", "ana", 31); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	for _, item := range m.items {
		want := 0
		if item.GameID == "runner_touch" {
			want = 31
		}
		if item.Best != want {
			t.Errorf("%s best = %d, expected %d", item.GameID, item.Best, want)
		}
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawTextColored(1, 1, "hi", core.ColorText)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3", len(lines))
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("rendered screen missing text: %q", out)
	}
}
