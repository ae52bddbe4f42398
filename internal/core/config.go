package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// CellW and CellH are the world units covered by one terminal cell.
	// Physics runs in world units so tuning matches pixel-based hosts.
	CellW float64
	CellH float64
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		CellW:    8,
		CellH:    16,
	}
}

// WorldSize returns the viewport in world units for the configured screen.
func (c RuntimeConfig) WorldSize() (float64, float64) {
	cw, ch := c.CellW, c.CellH
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	return float64(c.ScreenW) * cw, float64(c.ScreenH) * ch
}

// Event is a bit set of notable things that happened during a step.
// Hosts use events for fire-and-forget side effects such as sound.
type Event uint8

const (
	EventFlap  Event = 1 << iota // Avatar received a lift impulse
	EventHit                     // Run ended by collision
	EventScore                   // At least one obstacle was cleared
	EventStart                   // A run began (start or restart)
)

// Has reports whether all bits of e2 are set in e.
func (e Event) Has(e2 Event) bool {
	return e&e2 == e2 && e2 != 0
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether a run has begun since launch
	GameOver bool // Whether the current run has ended
	Paused   bool // Whether the host has suspended ticking
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events Event
}
