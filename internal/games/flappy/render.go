package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BodyChar      = '█'
	WingChar      = '▀'
	BeakUp        = '◥'
	BeakLevel     = '▶'
	BeakDown      = '◢'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
)

// Start button size in cells.
const (
	buttonW = 18
	buttonH = 3
)

// tiltBand is the tilt beyond which the beak points up or down.
const tiltBand = 0.2

// StartButton returns the start button region for a screen size.
// Render draws it and Step hit-tests taps against it.
func StartButton(screenW, screenH int) core.Rect {
	return core.NewRect((screenW-buttonW)/2, screenH/2+1, buttonW, buttonH)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	snap := g.state.Snapshot()
	cw, ch := g.cellSize()

	for _, o := range snap.Obstacles {
		drawObstacle(dst, o, snap.Height, cw, ch)
	}
	drawAvatar(dst, snap.Avatar, cw, ch)

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)
	best := fmt.Sprintf(" Best: %d ", g.best)
	dst.DrawTextColored(dst.Width()-len(best)-2, 0, best, core.ColorGray)

	switch {
	case snap.Phase == PhaseNotStarted:
		g.drawStartScreen(dst)
	case snap.Phase == PhaseOver:
		drawCenteredMessage(dst, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("Score: %d", snap.Score),
			"Tap or press SPACE to restart",
		)
	case g.paused:
		drawCenteredMessage(dst, core.ColorYellow, "PAUSED", "Press P to resume")
	}
}

// cellSize returns world units per cell, defaulting like RuntimeConfig.WorldSize.
func (g *Game) cellSize() (float64, float64) {
	cw, ch := g.runtime.CellW, g.runtime.CellH
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	return cw, ch
}

// span converts a world interval to a half-open cell interval of at least one cell.
func span(from, to, unit float64) (int, int) {
	a := int(math.Floor(from / unit))
	b := int(math.Ceil(to / unit))
	if b <= a {
		b = a + 1
	}
	return a, b
}

// drawObstacle renders the top and bottom segments of a pipe.
func drawObstacle(dst *core.Screen, o Obstacle, viewportH, cw, ch float64) {
	x0, x1 := span(o.X, o.Right(), cw)

	topRows := int(math.Ceil(o.Top / ch))
	bottomY := int(math.Floor((viewportH - o.Bottom) / ch))

	for x := x0; x < x1; x++ {
		dst.DrawVLine(x, 0, topRows, PipeChar, core.ColorGreen)
		dst.DrawVLine(x, bottomY, dst.Height()-bottomY, PipeChar, core.ColorGreen)
	}
	if topRows > 0 {
		dst.DrawHLine(x0, topRows-1, x1-x0, PipeCapTop, core.ColorBrightGreen)
	}
	if o.Bottom > 0 {
		dst.DrawHLine(x0, bottomY, x1-x0, PipeCapBottom, core.ColorBrightGreen)
	}
}

// drawAvatar renders the bird with its beak pointing along the tilt.
func drawAvatar(dst *core.Screen, a AvatarView, cw, ch float64) {
	x0, x1 := span(a.X, a.X+a.Width, cw)
	y0, y1 := span(a.Y, a.Y+a.Height, ch)

	for y := y0; y < y1; y++ {
		dst.DrawHLine(x0, y, x1-1-x0, BodyChar, core.ColorBrightYellow)
	}

	// Wing on the top row, flipped while climbing
	wing := WingChar
	if a.Tilt < -tiltBand {
		wing = PipeCapTop
	}
	dst.SetColored(x0+(x1-x0)/3, y0, wing, core.ColorOrange)

	beak := BeakLevel
	switch {
	case a.Tilt < -tiltBand:
		beak = BeakUp
	case a.Tilt > tiltBand:
		beak = BeakDown
	}
	dst.SetColored(x1-1, y0+(y1-y0)/2, beak, core.ColorOrange)
}

// drawStartScreen draws the title, hint and start button.
func (g *Game) drawStartScreen(dst *core.Screen) {
	h := dst.Height()

	dst.DrawTextCentered(h/2-4, "F L A P P Y   B I R D", core.ColorBrightYellow)
	dst.DrawTextCentered(h/2-2, g.title, core.ColorCyan)
	dst.DrawTextCentered(h/2-1, "Tap or press SPACE to start", core.ColorWhite)

	btn := StartButton(dst.Width(), h)
	dst.DrawRect(btn, ' ', core.ColorDefault)
	dst.DrawBox(btn, core.ColorYellow)
	label := "Start Game"
	dst.DrawTextColored(btn.X+(btn.W-len(label))/2, btn.Y+1, label, core.ColorBrightWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, c core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, c)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len(l))/2, boxY+3+i, l, core.ColorWhite)
	}
}
