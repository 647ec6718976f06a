// Package core provides fundamental types and utilities shared by the runner,
// its engine collaborator and the terminal platform. It has no external
// dependencies (especially no Bubble Tea) so game logic stays testable.
package core

import "math"

// Box is an axis-aligned rectangle in world units.
// World units are the "pixels" of the simulated playfield; the platform maps
// them onto terminal cells.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Overlaps reports whether two boxes share a non-empty area.
// Touching edges do not count as overlap.
func (b Box) Overlaps(o Box) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Rect is an integer rectangle in terminal cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new cell rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Scale converts world units to terminal cells.
type Scale struct {
	CellW float64 // World units per column
	CellH float64 // World units per row
}

// Col converts a world x to a column, flooring toward negative infinity so
// partially visible entities on the left edge are clipped consistently.
func (s Scale) Col(x float64) int {
	return int(math.Floor(x / s.CellW))
}

// Row converts a world y to a row.
func (s Scale) Row(y float64) int {
	return int(math.Floor(y / s.CellH))
}

// Cells converts a world box into the covering cell rectangle.
func (s Scale) Cells(b Box) Rect {
	x0, y0 := s.Col(b.X), s.Row(b.Y)
	x1 := int(math.Ceil(b.Right() / s.CellW))
	y1 := int(math.Ceil(b.Bottom() / s.CellH))
	return NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
