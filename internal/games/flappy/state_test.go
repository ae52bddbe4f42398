package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	testW = 800.0
	testH = 600.0
)

// seqRand returns a fixed sequence of values, repeating the last one.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i]
	if r.i < len(r.vals)-1 {
		r.i++
	}
	return v
}

func testConfig() config.FlappyConfig {
	cfg := config.DefaultConfig()
	cfg.Obstacles.GapRatio = 0
	cfg.Obstacles.GapSize = 200
	return cfg
}

func newRunning(t *testing.T, cfg config.FlappyConfig, rng Rand) *State {
	t.Helper()
	s := NewState(cfg, testW, testH, rng)
	if !s.Start() {
		t.Fatal("Start should apply from NotStarted")
	}
	s.TakeEvents()
	return s
}

func TestNewStateIsNotStarted(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	if s.Phase() != PhaseNotStarted {
		t.Errorf("Phase = %v, expected NotStarted", s.Phase())
	}
	if s.avatar.Y != testH/2 {
		t.Errorf("avatar Y = %v, expected %v", s.avatar.Y, testH/2)
	}
	if s.avatar.X != testW*0.25 {
		t.Errorf("avatar X = %v, expected %v", s.avatar.X, testW*0.25)
	}
	if s.Speed() != 1.5 {
		t.Errorf("Speed = %v, expected 1.5", s.Speed())
	}
}

func TestTickIsNoOpUnlessRunning(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	before := s.Snapshot()
	for i := 0; i < 500; i++ {
		s.Tick()
	}
	assertSameSnapshot(t, before, s.Snapshot())

	// Drive into Over, then tick more
	s.Start()
	for s.Phase() == PhaseRunning {
		s.Tick()
	}
	before = s.Snapshot()
	for i := 0; i < 500; i++ {
		s.Tick()
	}
	assertSameSnapshot(t, before, s.Snapshot())
}

func assertSameSnapshot(t *testing.T, a, b Snapshot) {
	t.Helper()
	if a.Phase != b.Phase || a.Avatar != b.Avatar || a.Score != b.Score ||
		a.Speed != b.Speed || a.Frame != b.Frame || len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("state changed:\n before %+v\n after  %+v", a, b)
	}
	for i := range a.Obstacles {
		if a.Obstacles[i] != b.Obstacles[i] {
			t.Fatalf("obstacle %d changed: %+v -> %+v", i, a.Obstacles[i], b.Obstacles[i])
		}
	}
}

func TestFlapThenTick(t *testing.T) {
	cfg := testConfig()
	s := newRunning(t, cfg, nil)

	g := cfg.Physics.Gravity
	L := cfg.Physics.Lift

	if !s.Flap() {
		t.Fatal("Flap should apply while Running")
	}
	s.Tick()

	if s.avatar.Velocity != L+g {
		t.Errorf("velocity = %v, expected %v", s.avatar.Velocity, L+g)
	}
	if want := testH/2 + L + g; !almostEqual(s.avatar.Y, want) {
		t.Errorf("Y = %v, expected %v", s.avatar.Y, want)
	}
}

func TestFlapOverridesVelocity(t *testing.T) {
	cfg := testConfig()
	s := newRunning(t, cfg, nil)

	s.avatar.Velocity = 7.5
	s.Flap()
	if s.avatar.Velocity != cfg.Physics.Lift {
		t.Errorf("velocity = %v, expected lift %v", s.avatar.Velocity, cfg.Physics.Lift)
	}

	s.avatar.Velocity = -3
	s.Flap()
	if s.avatar.Velocity != cfg.Physics.Lift {
		t.Errorf("flap must set, not add: velocity = %v", s.avatar.Velocity)
	}
}

func TestFlapIgnoredOutsideRunning(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	if s.Flap() {
		t.Error("Flap should not apply while NotStarted")
	}
	if s.avatar.Velocity != 0 || s.Phase() != PhaseNotStarted {
		t.Error("Flap while NotStarted must not start the run or change velocity")
	}
	if s.TakeEvents().Has(core.EventFlap) {
		t.Error("ignored flap should not emit an event")
	}

	s.Start()
	s.phase = PhaseOver
	v := s.avatar.Velocity
	if s.Flap() || s.avatar.Velocity != v {
		t.Error("Flap should not apply while Over")
	}
}

func TestPhaseGuards(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	if s.Restart() {
		t.Error("Restart should not apply while NotStarted")
	}
	if !s.Start() {
		t.Fatal("Start should apply while NotStarted")
	}
	if s.Start() {
		t.Error("Start should not apply while Running")
	}
	if s.Restart() {
		t.Error("Restart should not apply while Running")
	}

	s.avatar.Y = -100
	s.Tick()
	if s.Phase() != PhaseOver {
		t.Fatalf("Phase = %v, expected Over", s.Phase())
	}
	if s.Start() {
		t.Error("Start should not apply while Over")
	}
	if !s.Restart() {
		t.Error("Restart should apply while Over")
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("Phase = %v, expected Running", s.Phase())
	}
}

func TestActivate(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	if got := s.Activate(); got != PhaseRunning {
		t.Fatalf("Activate from NotStarted = %v, expected Running", got)
	}
	if s.avatar.Velocity != 0 {
		t.Error("starting via Activate should not also flap")
	}

	s.Activate()
	if s.avatar.Velocity != s.cfg.Physics.Lift {
		t.Error("Activate while Running should flap")
	}

	s.phase = PhaseOver
	if got := s.Activate(); got != PhaseRunning {
		t.Errorf("Activate from Over = %v, expected Running", got)
	}
	if s.avatar.Velocity != 0 {
		t.Error("restart via Activate should reset velocity")
	}
}

func TestPress(t *testing.T) {
	tests := []struct {
		name  string
		press Pointer
		want  Phase
	}{
		{"click off the button", Pointer{}, PhaseNotStarted},
		{"click on the button", Pointer{OnStartButton: true}, PhaseRunning},
		{"touch off the button", Pointer{Touch: true}, PhaseRunning},
		{"touch on the button", Pointer{Touch: true, OnStartButton: true}, PhaseRunning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(testConfig(), testW, testH, nil)
			if got := s.Press(tc.press); got != tc.want {
				t.Errorf("Press(%+v) on the start screen = %v, expected %v", tc.press, got, tc.want)
			}
		})
	}
}

func TestPressAfterStart(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)
	s.Press(Pointer{Touch: true})

	s.Press(Pointer{})
	if s.avatar.Velocity != s.cfg.Physics.Lift {
		t.Error("any press while running should flap")
	}

	s.phase = PhaseOver
	if got := s.Press(Pointer{}); got != PhaseRunning {
		t.Errorf("click off the button while over = %v, expected Running", got)
	}
}

func TestObstacleGapInvariant(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 1
	s := newRunning(t, cfg, &seqRand{vals: []float64{0.5}})

	s.Tick()

	if len(s.obstacles) != 1 {
		t.Fatalf("expected one obstacle, got %d", len(s.obstacles))
	}
	o := s.obstacles[0]

	T := 150.0 // 0.5 * min(H/2, H-G) = 0.5 * 300
	G := 200.0
	if o.Top != T {
		t.Errorf("Top = %v, expected %v", o.Top, T)
	}
	if o.Bottom != testH-T-G {
		t.Errorf("Bottom = %v, expected %v", o.Bottom, testH-T-G)
	}
	if o.Top+o.Bottom+G != testH {
		t.Errorf("top + bottom + gap = %v, expected %v", o.Top+o.Bottom+G, testH)
	}
	if o.X != testW-s.Speed() {
		t.Errorf("new obstacle X = %v, expected spawn at right edge then moved once (%v)", o.X, testW-s.Speed())
	}
	if o.Width != cfg.Obstacles.Width {
		t.Errorf("Width = %v, expected %v", o.Width, cfg.Obstacles.Width)
	}
}

func TestObstacleTopRange(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 1
	cfg.Obstacles.MinTopOffset = 40

	tests := []struct {
		name string
		r    float64
		want float64
	}{
		{"lowest", 0, 40},
		{"highest", 1, 300}, // H/2 bounds it before H-G does
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newRunning(t, cfg, &seqRand{vals: []float64{tc.r}})
			s.Tick()
			if got := s.obstacles[0].Top; got != tc.want {
				t.Errorf("Top = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestGapRatioFixedPerRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Obstacles.SpawnPeriod = 1
	cfg.Obstacles.GapRatio = 0.25

	s := newRunning(t, cfg, rand.New(rand.NewSource(7)))
	if s.Gap() != 150 {
		t.Fatalf("Gap = %v, expected 150", s.Gap())
	}

	for i := 0; i < 20 && s.Phase() == PhaseRunning; i++ {
		s.avatar.Y = testH / 2
		s.avatar.Velocity = 0
		s.Tick()
	}

	for i, o := range s.obstacles {
		if gap := testH - o.Top - o.Bottom; !almostEqual(gap, 150) {
			t.Errorf("obstacle %d gap = %v, expected 150", i, gap)
		}
	}
}

func TestGapShrinksToFitViewport(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.GapSize = 1000
	cfg.Obstacles.MinTopOffset = 50

	s := NewState(cfg, testW, testH, nil)
	if s.Gap() != testH-50 {
		t.Errorf("Gap = %v, expected %v", s.Gap(), testH-50)
	}
}

func TestSpawnPeriod(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 10
	s := newRunning(t, cfg, nil)

	for i := 1; i <= 30; i++ {
		s.avatar.Y = testH / 2
		s.avatar.Velocity = 0
		s.Tick()
		if want := i / 10; len(s.obstacles) != want {
			t.Fatalf("after %d ticks: %d obstacles, expected %d", i, len(s.obstacles), want)
		}
	}
}

func TestObstacleMovesBySpeed(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	s.obstacles = []Obstacle{{X: 700, Top: 100, Bottom: 100, Width: 80}}

	s.Tick()
	if s.obstacles[0].X != 700-s.Speed() {
		t.Errorf("X = %v, expected %v", s.obstacles[0].X, 700-s.Speed())
	}
}

func TestTopRandomDrawnOnce(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 1
	s := newRunning(t, cfg, &seqRand{vals: []float64{0.1, 0.9}})

	s.Tick()
	top := s.obstacles[0].Top
	for i := 0; i < 5; i++ {
		s.avatar.Y = testH / 2
		s.avatar.Velocity = 0
		s.Tick()
	}
	if s.obstacles[0].Top != top {
		t.Errorf("Top changed from %v to %v", top, s.obstacles[0].Top)
	}
}

func TestScoringOnce(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	ax := s.avatar.X

	// Right edge just past the avatar's left edge after one move
	s.obstacles = []Obstacle{{X: ax - 80 + 1, Top: 100, Bottom: 100, Width: 80}}

	s.Tick()
	if s.Score() != 1 || !s.obstacles[0].Scored {
		t.Fatalf("score = %d scored = %v, expected 1/true", s.Score(), s.obstacles[0].Scored)
	}
	if !s.TakeEvents().Has(core.EventScore) {
		t.Error("scoring should emit EventScore")
	}

	for i := 0; i < 10; i++ {
		s.avatar.Y = testH / 2
		s.avatar.Velocity = 0
		s.Tick()
	}
	if s.Score() != 1 {
		t.Errorf("obstacle scored more than once: score = %d", s.Score())
	}
}

func TestNotScoredUntilRightEdgePasses(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	ax := s.avatar.X
	speed := s.Speed()

	// After one move the right edge sits exactly at the avatar's left edge
	s.obstacles = []Obstacle{{X: ax - 80 + speed, Top: 0, Bottom: 0, Width: 80}}
	s.Tick()

	if s.obstacles[0].Scored {
		t.Error("obstacle whose right edge equals avatar X should not be scored yet")
	}
	if s.Phase() != PhaseRunning {
		t.Error("touching edges should not collide")
	}

	s.Tick()
	if !s.obstacles[0].Scored {
		t.Error("obstacle should be scored once its right edge is left of the avatar")
	}
}

func TestSpeedBumpEveryFive(t *testing.T) {
	cfg := testConfig()
	s := newRunning(t, cfg, nil)
	ax := s.avatar.X
	s0 := s.Speed()

	for i := 0; i < 5; i++ {
		s.obstacles = append(s.obstacles, Obstacle{X: ax - 90 - float64(i), Top: 100, Bottom: 100, Width: 80})
	}
	s.Tick()

	if s.Score() != 5 {
		t.Fatalf("score = %d, expected 5", s.Score())
	}
	if s.Speed() != s0+cfg.Speed.Increment {
		t.Errorf("speed = %v, expected exactly one bump to %v", s.Speed(), s0+cfg.Speed.Increment)
	}
}

// rampAt returns the speed a run reaches after scoring the given points.
func rampAt(r config.SpeedRamp, score int) float64 {
	if r.Every <= 0 {
		return r.Base
	}
	return r.Base + float64(score/r.Every)*r.Increment
}

func TestSpeedAndScoreMonotonic(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 40
	cfg.Obstacles.GapSize = 400
	s := newRunning(t, cfg, rand.New(rand.NewSource(3)))

	// With a 400 gap every top lies in [0, 200], so [200, 400] is always open
	prevScore, prevSpeed := 0, s.Speed()
	for i := 0; i < 5000 && s.Phase() == PhaseRunning; i++ {
		s.avatar.Velocity = 0
		s.avatar.Y = 250
		s.Tick()

		if s.Score() < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, s.Score())
		}
		if s.Speed() < prevSpeed {
			t.Fatalf("speed decreased from %v to %v", prevSpeed, s.Speed())
		}
		if !almostEqual(s.Speed(), rampAt(cfg.Speed, s.Score())) {
			t.Fatalf("speed %v does not match ramp %v at score %d", s.Speed(), rampAt(cfg.Speed, s.Score()), s.Score())
		}
		prevScore, prevSpeed = s.Score(), s.Speed()
	}

	if s.Phase() != PhaseRunning {
		t.Fatal("avatar held inside every gap should never collide")
	}
	if prevScore < 10 {
		t.Errorf("expected a long run to score at least 10, got %d", prevScore)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestObstacleCollision(t *testing.T) {
	tests := []struct {
		name    string
		avatarY float64
		want    Phase
	}{
		{"inside gap", 250, PhaseRunning},
		{"hits top segment", 150, PhaseOver},
		{"hits bottom segment", 380, PhaseOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newRunning(t, testConfig(), nil)
			// Gap spans [200, 400]
			s.obstacles = []Obstacle{{X: s.avatar.X, Top: 200, Bottom: 200, Width: 80}}
			s.avatar.Y = tc.avatarY
			s.avatar.Velocity = -s.cfg.Physics.Gravity // Hold still this tick

			s.Tick()
			if s.Phase() != tc.want {
				t.Errorf("Phase = %v, expected %v", s.Phase(), tc.want)
			}
		})
	}
}

func TestCollisionFiresOnce(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	s.obstacles = []Obstacle{
		{X: s.avatar.X, Top: 590, Bottom: 0, Width: 80},
		{X: s.avatar.X + 10, Top: 590, Bottom: 0, Width: 80},
	}
	s.avatar.Y = -50 // Also out of bounds

	s.Tick()

	if s.Phase() != PhaseOver {
		t.Fatalf("Phase = %v, expected Over", s.Phase())
	}
	ev := s.TakeEvents()
	if !ev.Has(core.EventHit) {
		t.Error("collision should emit EventHit")
	}
	if s.TakeEvents() != 0 {
		t.Error("events should be cleared after TakeEvents")
	}
}

func TestBoundaryCollision(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		vel  float64
		want Phase
	}{
		{"above top", -10, 0, PhaseOver},
		{"below bottom", testH - 20, 5, PhaseOver},
		{"middle", testH / 2, 0, PhaseRunning},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newRunning(t, testConfig(), nil)
			s.avatar.Y = tc.y
			s.avatar.Velocity = tc.vel

			s.Tick()
			if s.Phase() != tc.want {
				t.Errorf("Phase = %v, expected %v", s.Phase(), tc.want)
			}
		})
	}
}

func TestFallingEndsRun(t *testing.T) {
	s := newRunning(t, testConfig(), nil)

	ticks := 0
	for s.Phase() == PhaseRunning && ticks < 1000 {
		s.Tick()
		ticks++
	}
	if s.Phase() != PhaseOver {
		t.Fatal("an avatar that never flaps should hit the bottom")
	}
	if s.avatar.Y+s.avatar.Height <= testH {
		t.Errorf("run ended with avatar inside the viewport (Y=%v)", s.avatar.Y)
	}
}

func TestRestartMatchesFreshStart(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles.SpawnPeriod = 5

	fresh := newRunning(t, cfg, rand.New(rand.NewSource(1)))
	want := fresh.Snapshot()

	s := newRunning(t, cfg, rand.New(rand.NewSource(2)))
	for i := 0; i < 50; i++ {
		if i%12 == 0 {
			s.Flap()
		}
		s.Tick()
	}
	s.phase = PhaseOver
	s.speed = 9

	if !s.Restart() {
		t.Fatal("Restart should apply while Over")
	}
	got := s.Snapshot()

	if got.Avatar != want.Avatar {
		t.Errorf("avatar = %+v, expected %+v", got.Avatar, want.Avatar)
	}
	if len(got.Obstacles) != 0 || got.Score != 0 || got.Frame != 0 {
		t.Errorf("restart should clear obstacles/score/frame, got %d/%d/%d", len(got.Obstacles), got.Score, got.Frame)
	}
	if got.Speed != want.Speed {
		t.Errorf("speed = %v, expected %v", got.Speed, want.Speed)
	}
	if got.Phase != PhaseRunning {
		t.Errorf("phase = %v, expected Running", got.Phase)
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() Snapshot {
		cfg := testConfig()
		cfg.Obstacles.SpawnPeriod = 30
		s := newRunning(t, cfg, rand.New(rand.NewSource(12345)))
		for i := 0; i < 400 && s.Phase() == PhaseRunning; i++ {
			if i%18 == 0 {
				s.Flap()
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	assertSameSnapshot(t, run(), run())
}

func TestEvents(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	s.Start()
	s.Flap()
	ev := s.TakeEvents()
	if !ev.Has(core.EventStart) || !ev.Has(core.EventFlap) {
		t.Errorf("events = %b, expected start and flap", ev)
	}
}

func TestPruneOffscreen(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	s.obstacles = []Obstacle{
		{X: -85, Top: 100, Bottom: 100, Width: 80, Scored: true},
		{X: 500, Top: 100, Bottom: 100, Width: 80},
	}

	s.Tick()
	if len(s.obstacles) != 1 || s.obstacles[0].X != 500-s.Speed() {
		t.Errorf("expected only the on-screen obstacle to remain, got %+v", s.obstacles)
	}
}

func TestRecenter(t *testing.T) {
	s := NewState(testConfig(), testW, testH, nil)

	s.SetViewport(400, 300)
	if !s.Recenter() {
		t.Fatal("Recenter should apply while NotStarted")
	}
	if s.avatar.Y != 150 || s.avatar.X != 100 {
		t.Errorf("avatar at (%v, %v), expected (100, 150)", s.avatar.X, s.avatar.Y)
	}

	s.Start()
	s.avatar.Y = 42
	s.SetViewport(800, 600)
	if s.Recenter() || s.avatar.Y != 42 {
		t.Error("Recenter must not move a live run")
	}
}

func TestTilt(t *testing.T) {
	tests := []struct {
		velocity, want float64
	}{
		{0, 0},
		{3, 0.3},
		{-4, -0.4},
		{8, 0.5},
		{-12, -0.5},
	}

	for _, tc := range tests {
		if got := Tilt(tc.velocity); !almostEqual(got, tc.want) {
			t.Errorf("Tilt(%v) = %v, expected %v", tc.velocity, got, tc.want)
		}
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := newRunning(t, testConfig(), nil)
	s.obstacles = []Obstacle{{X: 500, Top: 100, Bottom: 100, Width: 80}}

	snap := s.Snapshot()
	snap.Obstacles[0].X = 0

	if s.obstacles[0].X != 500 {
		t.Error("mutating a snapshot must not affect the state")
	}
	if snap.Avatar.Tilt != Tilt(s.avatar.Velocity) {
		t.Error("snapshot tilt should derive from velocity")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseRunning.String() != "Running" || Phase(9).String() != "Unknown" {
		t.Error("unexpected Phase.String output")
	}
}
