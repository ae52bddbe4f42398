// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
//
// State is the host-independent game state machine. Game adapts it to the
// terminal platform: it maps cells to world units, applies input frames and
// draws into a core.Screen.
package flappy

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements registry.Game for one tuning variant.
type Game struct {
	variant string
	title   string
	state   *State
	runtime core.RuntimeConfig
	paused  bool
	best    int // Best score this session; never persisted
}

// New creates a game for the default variant.
func New() *Game {
	return NewVariant(config.DefaultVariant, "Classic")
}

// NewVariant creates a game for the given tuning variant.
func NewVariant(variant, title string) *Game {
	return &Game{variant: variant, title: title}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return fmt.Sprintf("Flappy Bird (%s)", g.title)
}

// Reset loads the variant's tuning and creates a fresh NotStarted state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	loaded, err := config.Load(g.variant, configPath)
	cfg := loaded.Config
	if err != nil {
		cfg = config.DefaultConfig()
	}

	w, h := runtime.WorldSize()
	g.state = NewState(cfg, w, h, rand.New(rand.NewSource(runtime.Seed)))
	g.paused = false
}

// Resize adapts the viewport without discarding the current run.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.state == nil {
		return
	}
	w, h := runtime.WorldSize()
	g.state.SetViewport(w, h)
	g.state.Recenter()
}

// Step applies one frame of input and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	// Pause is a host concern and only meaningful during a run
	if in.Has(core.ActionPause) && g.state.Phase() == PhaseRunning {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.state.Activate()
	}
	if in.Has(core.ActionConfirm) {
		g.state.Start()
	}
	if in.Has(core.ActionRestart) {
		g.state.Restart()
	}
	for _, tap := range in.Taps {
		g.handleTap(tap)
	}

	g.state.Tick()

	if g.state.Score() > g.best {
		g.best = g.state.Score()
	}

	return core.StepResult{
		State:  g.State(),
		Events: g.state.TakeEvents(),
	}
}

// handleTap applies a mouse click at a screen cell.
func (g *Game) handleTap(tap core.Tap) {
	btn := StartButton(g.runtime.ScreenW, g.runtime.ScreenH)
	g.state.Press(Pointer{OnStartButton: btn.Contains(tap.X, tap.Y)})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	phase := g.state.Phase()
	return core.GameState{
		Score:    g.state.Score(),
		Started:  phase != PhaseNotStarted,
		GameOver: phase == PhaseOver,
		Paused:   g.paused,
	}
}

// Snapshot exposes the underlying state for hosts and tests.
func (g *Game) Snapshot() Snapshot {
	return g.state.Snapshot()
}

// Best returns the best score reached since the game was created.
func (g *Game) Best() int {
	return g.best
}

// Register every embedded tuning variant with the registry
func init() {
	for _, v := range config.Variants() {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v.ID, v.Title)
		})
	}
}
