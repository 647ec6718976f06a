package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// palette maps scene colors to terminal styles.
var palette = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorCloud:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorGround:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorBlock:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPlayer:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorPlayerHit: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorAccent:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string.
// Adjacent cells sharing a color are styled as one run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := palette[color]
			if !ok {
				style = palette[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
