// Package tui runs runner games in a terminal with Bubble Tea, locally or
// over SSH, and feeds finished runs to the score store.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one fixed simulation step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
