// Package registry maps tuning variant IDs to game factories.
// Each flappy variant registers itself from init(), so the CLI, the menu and
// the window host can list and start variants by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is a playable variant as seen by the terminal host.
// It holds no Bubble Tea state; the host maps keys and mouse presses to
// InputFrames, drives Step once per tick and draws through Render.
type Game interface {
	// ID is the variant name used on the command line and for
	// config file names (e.g. "classic", "rapid").
	ID() string

	// Title is the display name shown in the menu and the start screen.
	Title() string

	// Reset discards any run and waits on the start screen for the
	// given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances the run by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the playfield, HUD and overlays.
	Render(dst *core.Screen)

	// State reports score, best and whether the run is over or paused.
	State() core.GameState
}

// Resizer is implemented by variants that keep their run across a terminal
// resize instead of needing a Reset.
type Resizer interface {
	Resize(cfg core.RuntimeConfig)
}

// VariantInfo describes a registered variant.
type VariantInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh variant instance.
type Factory func() Game

type entry struct {
	info    VariantInfo
	factory Factory
}

var (
	mu       sync.RWMutex
	variants = make(map[string]entry)
)

// Register adds a variant factory under id.
// Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[id]; exists {
		panic(fmt.Sprintf("registry: variant %q registered twice", id))
	}
	variants[id] = entry{
		info:    VariantInfo{ID: id, Title: f().Title()},
		factory: f,
	}
}

// List returns every registered variant sorted by ID.
func List() []VariantInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]VariantInfo, 0, len(variants))
	for _, e := range variants {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create returns a new instance of the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := variants[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id names a registered variant.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := variants[id]
	return ok
}
