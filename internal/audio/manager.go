package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SoundManager plays cues through the system speaker.
// Every method is safe to call before Initialize or after a failed one;
// the game keeps running without sound.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager at DefaultVolume.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: DefaultVolume,
	}
}

// Initialize opens the speaker. It is a no-op once initialized.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Ready reports whether cues will be audible.
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

// SetMuted toggles output without closing the speaker.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// SetVolume sets the linear cue volume, clamped to [0, 1].
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = core.ClampF(vol, 0, 1)
}

// Play starts the cues for ev and returns immediately.
func (sm *SoundManager) Play(ev core.Event) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || ev == 0 {
		return
	}

	// The mixer is read by the speaker goroutine
	speaker.Lock()
	for _, s := range Cues(ev) {
		if s != nil {
			sm.mixer.Add(withVolume(s, sm.volume))
		}
	}
	speaker.Unlock()
}

// Cleanup silences all pending cues.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
