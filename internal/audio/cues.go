// Package audio synthesizes the game's sound cues.
// Cues are short generated tones; no sound files are shipped.
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SampleRate is used for every generated cue.
const SampleRate = beep.SampleRate(48000)

// DefaultVolume is the linear cue volume hosts start with.
const DefaultVolume = 0.8

// Cue durations
const (
	flapDuration  = 90 * time.Millisecond
	scoreDuration = 140 * time.Millisecond
	hitDuration   = 320 * time.Millisecond
)

// ChirpGenerator produces a rising sine sweep, used for flaps.
type ChirpGenerator struct {
	sr       beep.SampleRate
	from, to float64
	samples  int
	pos      int
	phase    float64
}

// NewChirpGenerator creates a sweep from one frequency to another over d.
func NewChirpGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *ChirpGenerator {
	return &ChirpGenerator{sr: sr, from: from, to: to, samples: sr.N(d)}
}

func (g *ChirpGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		progress := float64(g.pos) / float64(g.samples)
		freq := g.from + (g.to-g.from)*progress

		// Integrate phase so the sweep has no clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		envelope := 1 - progress
		sample := 0.3 * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChirpGenerator) Err() error {
	return nil
}

// ThudGenerator produces a decaying low buzz with harmonics, used for collisions.
type ThudGenerator struct {
	sr      beep.SampleRate
	freq    float64
	samples int
	pos     int
}

// NewThudGenerator creates a thud at the given base frequency lasting d.
func NewThudGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, samples: sr.N(d)}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		sample := 0.4 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.2 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= math.Exp(-t * 12)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error {
	return nil
}

// Cue returns a fresh streamer for a single event, or nil if the event has no sound.
// Only the first flag of a combined event is considered.
func Cue(ev core.Event) beep.Streamer {
	switch {
	case ev.Has(core.EventHit):
		return NewThudGenerator(SampleRate, 90, hitDuration)
	case ev.Has(core.EventScore):
		return scoreBlip()
	case ev.Has(core.EventFlap):
		return NewChirpGenerator(SampleRate, 420, 780, flapDuration)
	}
	return nil
}

// scoreBlip is two short rising sine notes.
func scoreBlip() beep.Streamer {
	lo, err := generators.SineTone(SampleRate, 880)
	if err != nil {
		return nil
	}
	hi, err := generators.SineTone(SampleRate, 1320)
	if err != nil {
		return nil
	}
	half := SampleRate.N(scoreDuration / 2)
	return withVolume(beep.Seq(beep.Take(half, lo), beep.Take(half, hi)), 0.25)
}

// Cues returns the streamers for every sounding flag of ev, loudest first.
func Cues(ev core.Event) []beep.Streamer {
	var out []beep.Streamer
	for _, flag := range []core.Event{core.EventHit, core.EventScore, core.EventFlap} {
		if ev.Has(flag) {
			out = append(out, Cue(flag))
		}
	}
	return out
}

// withVolume scales a streamer by a linear volume in [0, 1].
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// PCM renders a cue as signed 16-bit little-endian stereo samples,
// the format expected by byte-oriented audio players.
func PCM(ev core.Event, vol float64) []byte {
	s := Cue(ev)
	if s == nil {
		return nil
	}
	s = withVolume(s, vol)

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, ch := range frame {
				v := int16(core.ClampF(ch, -1, 1) * math.MaxInt16)
				out = binary.LittleEndian.AppendUint16(out, uint16(v))
			}
		}
		if !ok {
			break
		}
	}
	return out
}
