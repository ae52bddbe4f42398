package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	skyColor     = color.RGBA{0x70, 0xc5, 0xce, 0xff}
	pipeColor    = color.RGBA{0x5e, 0xa8, 0x2e, 0xff}
	pipeCapColor = color.RGBA{0x74, 0xbf, 0x2e, 0xff}
	birdColor    = color.RGBA{0xf8, 0xd8, 0x20, 0xff}
	beakColor    = color.RGBA{0xf8, 0x80, 0x20, 0xff}
	eyeColor     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	shadeColor   = color.RGBA{0x00, 0x00, 0x00, 0x80}
	buttonColor  = color.RGBA{0xe8, 0x6a, 0x17, 0xff}
	textColor    = color.White
)

// Start button size in pixels.
const (
	buttonW = 200
	buttonH = 56
	capH    = 24
)

// startButton returns the start button region for a window size.
func startButton(w, h int) core.Rect {
	return core.NewRect((w-buttonW)/2, h/2+20, buttonW, buttonH)
}

// newAvatarImage renders the bird once; Draw rotates it by the tilt.
func newAvatarImage(a config.FlappyAvatar) *ebiten.Image {
	w, h := float32(a.Width), float32(a.Height)
	img := ebiten.NewImage(int(a.Width), int(a.Height))

	vector.DrawFilledRect(img, 0, 0, w*0.8, h, birdColor, false)
	vector.DrawFilledRect(img, w*0.8, h*0.4, w*0.2, h*0.3, beakColor, false)
	vector.DrawFilledCircle(img, w*0.6, h*0.3, h*0.12, eyeColor, true)
	return img
}

// Draw renders the current snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	if !g.ready {
		return
	}

	snap := g.state.Snapshot()
	for _, o := range snap.Obstacles {
		drawObstacle(screen, o, snap.Height)
	}
	g.drawAvatar(screen, snap.Avatar)

	g.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), g.titleFace, 16, 16, text.AlignStart)
	g.drawText(screen, fmt.Sprintf("Best: %d", g.best), g.smallFace, float64(g.width)-16, 16, text.AlignEnd)

	switch {
	case snap.Phase == flappy.PhaseNotStarted:
		g.drawStartScreen(screen)
	case snap.Phase == flappy.PhaseOver:
		g.drawMessage(screen, "Game Over", fmt.Sprintf("Score: %d", snap.Score), "Click or press SPACE to restart")
	case g.paused:
		g.drawMessage(screen, "Paused", "Press P to resume")
	}
}

func drawObstacle(screen *ebiten.Image, o flappy.Obstacle, viewportH float64) {
	x, w := float32(o.X), float32(o.Width)
	top := float32(o.Top)
	bottomY := float32(viewportH - o.Bottom)

	vector.DrawFilledRect(screen, x, 0, w, top, pipeColor, false)
	vector.DrawFilledRect(screen, x, bottomY, w, float32(o.Bottom), pipeColor, false)

	// Caps overhang the body by a few pixels
	if o.Top > 0 {
		vector.DrawFilledRect(screen, x-4, top-capH, w+8, capH, pipeCapColor, false)
	}
	if o.Bottom > 0 {
		vector.DrawFilledRect(screen, x-4, bottomY, w+8, capH, pipeCapColor, false)
	}
}

func (g *Game) drawAvatar(screen *ebiten.Image, a flappy.AvatarView) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-a.Width/2, -a.Height/2)
	op.GeoM.Rotate(a.Tilt)
	op.GeoM.Translate(a.X+a.Width/2, a.Y+a.Height/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.avatar, op)
}

func (g *Game) drawStartScreen(screen *ebiten.Image) {
	cx, cy := float64(g.width)/2, float64(g.height)/2

	g.drawText(screen, "FLAPPY BIRD", g.titleFace, cx, cy-80, text.AlignCenter)
	g.drawText(screen, g.title, g.smallFace, cx, cy-40, text.AlignCenter)
	g.drawText(screen, "Click the button or press SPACE", g.smallFace, cx, cy-16, text.AlignCenter)

	btn := startButton(g.width, g.height)
	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), buttonColor, false)
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 2, textColor, false)

	bx, by := btn.Center()
	g.drawText(screen, "Start Game", g.smallFace, float64(bx), float64(by)-6, text.AlignCenter)
}

// drawMessage shades the screen and centers a title with lines below it.
func (g *Game) drawMessage(screen *ebiten.Image, title string, lines ...string) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), shadeColor, false)

	cx, cy := float64(g.width)/2, float64(g.height)/2-40
	g.drawText(screen, title, g.titleFace, cx, cy, text.AlignCenter)
	for i, l := range lines {
		g.drawText(screen, l, g.smallFace, cx, cy+48+float64(i)*20, text.AlignCenter)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	op.PrimaryAlign = align
	text.Draw(screen, s, face, op)
}
