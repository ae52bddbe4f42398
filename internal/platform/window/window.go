// Package window runs the game in a desktop window with ebiten.
// World units map one to one onto window pixels.
package window

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	flappyaudio "github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Default window size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options configures the window host. Volume is the cue volume in [0, 1];
// zero selects the default volume.
type Options struct {
	Variant    string
	ConfigPath string
	Width      int
	Height     int
	TPS        int
	Seed       int64
	Muted      bool
	Volume     float64
	Logger     *log.Logger
}

// Game implements ebiten.Game around a flappy.State.
type Game struct {
	state  *flappy.State
	title  string
	width  int
	height int
	paused bool
	best   int
	ready  bool
	muted  bool
	volume float64
	logger *log.Logger

	audioCtx *audio.Context
	sounds   map[core.Event][]byte
	avatar   *ebiten.Image

	titleFace text.Face
	smallFace text.Face
}

// NewGame loads the variant's tuning and creates a NotStarted game.
func NewGame(opts Options) (*Game, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Volume <= 0 {
		opts.Volume = flappyaudio.DefaultVolume
	}
	if opts.Variant == "" {
		opts.Variant = config.DefaultVariant
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	loaded, err := config.Load(opts.Variant, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	logger.Debug("tuning loaded", "variant", opts.Variant, "source", loaded.Source, "path", loaded.Path)

	cfg := loaded.Config
	rng := rand.New(rand.NewSource(opts.Seed))

	return &Game{
		state:  flappy.NewState(cfg, float64(opts.Width), float64(opts.Height), rng),
		title:  cfg.Title,
		width:  opts.Width,
		height: opts.Height,
		muted:  opts.Muted,
		volume: core.ClampF(opts.Volume, 0, 1),
		logger: logger,
	}, nil
}

// loadAssets prepares fonts, sprites and sounds. Sound failures are logged
// and leave the game silent.
func (g *Game) loadAssets() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	g.titleFace = &text.GoTextFace{Source: src, Size: 24}
	g.smallFace = text.NewGoXFace(basicfont.Face7x13)

	g.avatar = newAvatarImage(g.state.Config().Avatar)

	g.audioCtx = audio.CurrentContext()
	if g.audioCtx == nil {
		g.audioCtx = audio.NewContext(int(flappyaudio.SampleRate))
	}
	g.sounds = make(map[core.Event][]byte)
	for _, ev := range []core.Event{core.EventFlap, core.EventScore, core.EventHit} {
		if pcm := flappyaudio.PCM(ev, g.volume); len(pcm) > 0 {
			g.sounds[ev] = pcm
		} else {
			g.logger.Warn("no sound for cue", "event", ev)
		}
	}
	return nil
}

// Update advances the game by one tick. Nothing runs until assets are ready.
func (g *Game) Update() error {
	if !g.ready {
		if err := g.loadAssets(); err != nil {
			return err
		}
		g.ready = true
		g.logger.Debug("assets ready")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.muted = !g.muted
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && g.state.Phase() == flappy.PhaseRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	activate := inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsKeyJustPressed(ebiten.KeyW)

	g.step(activate, pointerPresses())
	return nil
}

// press is a mouse click or new touch at a window position.
type press struct {
	image.Point
	touch bool
}

// pointerPresses returns mouse clicks and new touches of this frame.
func pointerPresses() []press {
	var presses []press
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		presses = append(presses, press{Point: image.Pt(x, y)})
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		presses = append(presses, press{Point: image.Pt(x, y), touch: true})
	}
	return presses
}

// step applies one frame of input, ticks and plays cues.
func (g *Game) step(activate bool, presses []press) {
	if activate {
		g.state.Activate()
	}
	btn := startButton(g.width, g.height)
	for _, p := range presses {
		g.state.Press(flappy.Pointer{
			Touch:         p.touch,
			OnStartButton: btn.Contains(p.X, p.Y),
		})
	}

	wasOver := g.state.Phase() == flappy.PhaseOver
	g.state.Tick()

	if g.state.Score() > g.best {
		g.best = g.state.Score()
	}
	if g.state.Phase() == flappy.PhaseOver && !wasOver {
		g.logger.Info("run over", "variant", g.title, "score", g.state.Score(), "best", g.best)
	}

	g.play(g.state.TakeEvents())
}

// play fires the sound for each cue in ev without waiting.
func (g *Game) play(ev core.Event) {
	if g.muted || g.audioCtx == nil || ev == 0 {
		return
	}
	for flag, pcm := range g.sounds {
		if ev.Has(flag) {
			g.audioCtx.NewPlayerFromBytes(pcm).Play()
		}
	}
}

// Layout tracks the window size; a resize before the first run recenters the avatar.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.state.SetViewport(float64(g.width), float64(g.height))
		g.state.Recenter()
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := NewGame(opts)
	if err != nil {
		return err
	}

	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Flappy - " + g.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
