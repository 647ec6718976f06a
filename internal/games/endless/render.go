package endless

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/engine"
	"github.com/vovakirdan/tui-runner/internal/runner"
)

// Visual characters for rendering
const (
	GroundTop  = '▀'
	GroundFill = '▒'
	BlockChar  = '█'
)

// cloudStrip repeats across the sky and scrolls with the background offset.
var cloudStrip = []string{
	`      .--.                    _.-._              .-.          `,
	`   .-(    ).         .--.    (     )__      .--(   )-.        `,
	`  (___.__)__)      (_____)   (________)    (__________)       `,
}

const cloudRow = 2

// Player sprite frames, drawn from the top-left of the player's cell box.
var (
	spriteStand = []string{
		` ▄██▄`,
		` █▀▀ `,
		`▐██▌ `,
		` █ █ `,
	}
	spriteStride = []string{
		` ▄██▄`,
		` █▀▀ `,
		`▐██▌ `,
		`▐▘ ▝▌`,
	}
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	if g.cfg.Input.OrientationWarning && g.portrait {
		drawCenteredMessage(dst, "Please rotate your device", "Widen the terminal to play")
		return
	}

	scrollX := g.world.ScrollX()

	g.drawClouds(dst)
	for _, tile := range g.world.Bodies(engine.KindGround) {
		g.drawGround(dst, tile, scrollX)
	}
	for _, block := range g.world.Bodies(engine.KindObstacle) {
		r := g.cells(block, scrollX)
		dst.DrawRect(r, BlockChar, block.Tint())
	}
	g.drawPlayer(dst, g.session.Player(), scrollX)

	for _, t := range g.world.Texts() {
		if !t.Visible {
			continue
		}
		if t.Row >= 0 {
			dst.DrawTextColored(2, t.Row, " "+t.Content+" ", t.Color)
			continue
		}
		lines := strings.SplitN(t.Content, "\n", 2)
		if len(lines) == 1 {
			lines = append(lines, "")
		}
		drawCenteredMessage(dst, lines[0], lines[1])
	}

	best := fmt.Sprintf(" Best: %d ", g.best)
	dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorDim)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// cells maps a body into screen cells relative to the camera.
func (g *Game) cells(b *engine.Body, scrollX float64) core.Rect {
	box := b.Box()
	box.X -= scrollX
	return g.scale.Cells(box)
}

func (g *Game) drawClouds(dst *core.Screen) {
	shift := int(g.world.BackgroundOffset() / g.scale.CellW)
	for i, line := range cloudStrip {
		runes := []rune(line)
		for x := 0; x < dst.Width(); x++ {
			r := runes[(x+shift)%len(runes)]
			if r != ' ' {
				dst.SetColored(x, cloudRow+i, r, core.ColorCloud)
			}
		}
	}
}

func (g *Game) drawGround(dst *core.Screen, tile *engine.Body, scrollX float64) {
	r := g.cells(tile, scrollX)
	dst.DrawHLine(r.X, r.Y, r.W, GroundTop, core.ColorGround)
	if r.H > 1 {
		dst.DrawRect(core.NewRect(r.X, r.Y+1, r.W, r.H-1), GroundFill, core.ColorGround)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, p *engine.Body, scrollX float64) {
	r := g.cells(p, scrollX)

	sprite := spriteStand
	if p.Anim() == runner.AnimWalk && (g.tick/6)%2 == 1 {
		sprite = spriteStride
	}

	// Anchor the sprite's feet to the bottom of the body
	top := r.Bottom() - len(sprite)
	for dy, line := range sprite {
		dx := 0
		for _, ch := range line {
			if ch != ' ' {
				dst.SetColored(r.X+dx, top+dy, ch, p.Tint())
			}
			dx++
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorText)

	dst.DrawTextCentered(boxY+1, title, core.ColorAccent)
	if subtitle != "" {
		dst.DrawTextCentered(boxY+3, subtitle, core.ColorText)
	}
}
