package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the coarse lifecycle of a run.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NotStarted"
	case PhaseRunning:
		return "Running"
	case PhaseOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// Rand is the random source used for obstacle placement.
// *rand.Rand satisfies it; tests inject fixed sequences.
type Rand interface {
	Float64() float64
}

// Avatar is the player-controlled falling entity.
// X is fixed for the whole run; positive Y and Velocity point down.
type Avatar struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64
}

// Box returns the avatar's collision box.
func (a Avatar) Box() core.Box {
	return core.Box{X: a.X, Y: a.Y, W: a.Width, H: a.Height}
}

// Obstacle is a vertical barrier with a gap.
// Top is the height of the upper segment and Bottom the height of the lower
// one, so the gap spans [Top, viewportHeight-Bottom].
type Obstacle struct {
	X      float64
	Top    float64
	Bottom float64
	Width  float64
	Scored bool
}

// Right returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Box returns the obstacle's horizontal extent as a full-height box.
func (o Obstacle) Box(viewportH float64) core.Box {
	return core.Box{X: o.X, Y: 0, W: o.Width, H: viewportH}
}

// State is the game state machine. It is advanced by Tick once per frame and
// changed by the guarded input transitions Flap, Start and Restart.
// It is not safe for concurrent use; hosts call it from a single loop.
type State struct {
	cfg config.FlappyConfig
	rng Rand

	width  float64 // Viewport width in world units
	height float64 // Viewport height in world units

	avatar    Avatar
	obstacles []Obstacle
	frame     int
	score     int
	speed     float64
	gap       float64 // Gap size for the current run
	phase     Phase

	events core.Event // Accumulated since the last TakeEvents
}

// NewState creates a state machine in the NotStarted phase for a viewport of
// the given size. A nil rng is replaced by a source seeded with 1.
func NewState(cfg config.FlappyConfig, width, height float64, rng Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &State{
		cfg:    cfg,
		rng:    rng,
		width:  width,
		height: height,
	}
	s.reset()
	return s
}

// reset re-initializes every entity of a run. Phase is left to the caller.
func (s *State) reset() {
	s.avatar = Avatar{
		X:      s.width * s.cfg.Avatar.XRatio,
		Y:      s.height / 2,
		Width:  s.cfg.Avatar.Width,
		Height: s.cfg.Avatar.Height,
	}
	s.obstacles = nil
	s.frame = 0
	s.score = 0
	s.speed = s.cfg.Speed.Base
	s.gap = s.runGap()
}

// runGap returns the gap for a run, shrunk if the viewport cannot fit it
// above the minimum top offset.
func (s *State) runGap() float64 {
	gap := s.cfg.Obstacles.GapFor(s.height)
	if room := s.height - s.minTop(); gap > room {
		gap = room
	}
	if gap < 0 {
		gap = 0
	}
	return gap
}

// minTop returns the lowest top segment height, capped at half the viewport.
func (s *State) minTop() float64 {
	return core.ClampF(s.cfg.Obstacles.MinTopOffset, 0, s.height/2)
}

// Start begins the first run. It only applies while NotStarted.
func (s *State) Start() bool {
	if s.phase != PhaseNotStarted {
		return false
	}
	s.reset()
	s.phase = PhaseRunning
	s.events |= core.EventStart
	return true
}

// Restart begins a new run after a collision. It only applies while Over.
func (s *State) Restart() bool {
	if s.phase != PhaseOver {
		return false
	}
	s.reset()
	s.phase = PhaseRunning
	s.events |= core.EventStart
	return true
}

// Flap sets the avatar's velocity to the lift constant. It only applies
// while Running; a flap before the first start is ignored, not buffered.
func (s *State) Flap() bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.avatar.Velocity = s.cfg.Physics.Lift
	s.events |= core.EventFlap
	return true
}

// Activate applies the single "activate" intent of keyboard and touch input:
// start when not started, restart when over, flap otherwise.
func (s *State) Activate() Phase {
	switch s.phase {
	case PhaseNotStarted:
		s.Start()
	case PhaseOver:
		s.Restart()
	default:
		s.Flap()
	}
	return s.phase
}

// Pointer is a single mouse click or touch.
type Pointer struct {
	Touch         bool
	OnStartButton bool
}

// Press applies a pointer press. Before the first run a click starts it only
// on the start button, while a touch starts it anywhere. Afterwards any press
// acts like Activate.
func (s *State) Press(p Pointer) Phase {
	if s.phase == PhaseNotStarted && !p.Touch && !p.OnStartButton {
		return s.phase
	}
	return s.Activate()
}

// Tick advances the run by one frame. It is a no-op unless Running.
func (s *State) Tick() {
	if s.phase != PhaseRunning {
		return
	}

	s.frame++

	// Fixed-step Euler integration; not scaled by wall time.
	s.avatar.Velocity += s.cfg.Physics.Gravity
	s.avatar.Y += s.avatar.Velocity

	if s.frame%s.cfg.Obstacles.SpawnPeriod == 0 {
		s.spawn()
	}

	body := s.avatar.Box()
	hit := false

	for i := range s.obstacles {
		o := &s.obstacles[i]
		o.X -= s.speed

		if !hit && s.collides(body, *o) {
			hit = true
		}

		if !o.Scored && o.Right() < body.X {
			o.Scored = true
			s.addPoint()
		}
	}

	if !body.WithinY(0, s.height) {
		hit = true
	}

	s.prune()

	if hit {
		s.phase = PhaseOver
		s.events |= core.EventHit
	}
}

// collides reports whether the avatar overlaps an obstacle outside its gap.
func (s *State) collides(body core.Box, o Obstacle) bool {
	if !body.OverlapsX(o.Box(s.height)) {
		return false
	}
	return !body.WithinY(o.Top, s.height-o.Bottom)
}

// addPoint scores one obstacle and bumps speed on every SpeedRamp.Every points.
func (s *State) addPoint() {
	s.score++
	s.events |= core.EventScore
	if s.score%s.cfg.Speed.Every == 0 {
		s.speed += s.cfg.Speed.Increment
	}
}

// spawn appends an obstacle at the right edge with a random top segment.
func (s *State) spawn() {
	gap := s.gap
	minTop := s.minTop()
	if room := s.height - minTop; gap > room {
		gap = room // Viewport shrank mid-run
	}

	topMax := s.height / 2
	if topMax > s.height-gap {
		topMax = s.height - gap
	}
	if topMax < minTop {
		topMax = minTop
	}

	top := minTop + s.rng.Float64()*(topMax-minTop)
	s.obstacles = append(s.obstacles, Obstacle{
		X:      s.width,
		Top:    top,
		Bottom: s.height - top - gap,
		Width:  s.cfg.Obstacles.Width,
	})
}

// prune drops obstacles that have fully left the viewport.
func (s *State) prune() {
	kept := s.obstacles[:0]
	for _, o := range s.obstacles {
		if o.Right() >= 0 {
			kept = append(kept, o)
		}
	}
	s.obstacles = kept
}

// SetViewport updates the viewport size used for spawning and bounds.
// The avatar is not moved; see Recenter.
func (s *State) SetViewport(width, height float64) {
	s.width = width
	s.height = height
}

// Recenter places the avatar at its spawn point for the current viewport.
// It only applies while NotStarted, so a resize never moves a live run.
func (s *State) Recenter() bool {
	if s.phase != PhaseNotStarted {
		return false
	}
	s.reset()
	return true
}

// TakeEvents returns the events accumulated since the previous call and clears them.
func (s *State) TakeEvents() core.Event {
	ev := s.events
	s.events = 0
	return ev
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Score returns the number of obstacles cleared in this run.
func (s *State) Score() int { return s.score }

// Speed returns the current obstacle speed.
func (s *State) Speed() float64 { return s.speed }

// Frame returns the number of ticks in this run.
func (s *State) Frame() int { return s.frame }

// Gap returns the gap size of the current run.
func (s *State) Gap() float64 { return s.gap }

// Config returns the tuning driving this state.
func (s *State) Config() config.FlappyConfig { return s.cfg }
