package core

// Color is a palette entry for a screen cell.
// The platform decides how each entry maps to terminal colors.
type Color uint8

// Palette used by the runner scene and overlays.
const (
	ColorDefault Color = iota
	ColorCloud
	ColorGround
	ColorBlock
	ColorPlayer
	ColorPlayerHit
	ColorText
	ColorAccent
	ColorDim
)
