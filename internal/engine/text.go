package engine

import "github.com/vovakirdan/tui-runner/internal/core"

// Text is a screen-fixed overlay line. Rows are counted from the top of the
// viewport; a negative row centers the text vertically.
type Text struct {
	ID      string
	Content string
	Row     int
	Color   core.Color
	Visible bool
}

// SetText replaces the content.
func (t *Text) SetText(s string) { t.Content = s }

// SetVisible shows or hides the overlay.
func (t *Text) SetVisible(v bool) { t.Visible = v }

// AddText creates a visible overlay, or returns the existing one with the same id.
func (w *World) AddText(id, content string, row int, c core.Color) *Text {
	if t := w.Text(id); t != nil {
		return t
	}
	t := &Text{ID: id, Content: content, Row: row, Color: c, Visible: true}
	w.texts = append(w.texts, t)
	return t
}

// Text returns the overlay with the given id, or nil.
func (w *World) Text(id string) *Text {
	for _, t := range w.texts {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Texts returns all overlays in creation order.
func (w *World) Texts() []*Text {
	return w.texts
}
