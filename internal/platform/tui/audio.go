package tui

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/boxpush/internal/config"
)

const sampleRate = beep.SampleRate(48000)

// ToneAudio implements game.AudioPlayer with synthesized tones, one per
// sound name, mixed onto the local speaker.
type ToneAudio struct {
	mu          sync.Mutex
	tones       map[string]config.ToneConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewToneAudio creates a tone player. Call Initialize before Play.
func NewToneAudio(tones map[string]config.ToneConfig) *ToneAudio {
	return &ToneAudio{
		tones: tones,
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer.
func (a *ToneAudio) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("tui: init speaker: %w", err)
	}
	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// Close stops playback.
func (a *ToneAudio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	speaker.Clear()
	a.initialized = false
}

func (a *ToneAudio) Play(name string) error {
	streamer, err := a.Streamer(name)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return fmt.Errorf("tui: speaker not initialized")
	}

	speaker.Lock()
	a.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}

// Streamer builds the finite stream for a named tone.
func (a *ToneAudio) Streamer(name string) (beep.Streamer, error) {
	tone, ok := a.tones[name]
	if !ok {
		return nil, fmt.Errorf("tui: no tone for sound %q", name)
	}

	s := beep.Take(sampleRate.N(tone.Duration), newToneGenerator(tone.Frequency))
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}, nil
}

// toneGenerator is a sine wave with a short attack to avoid clicks.
type toneGenerator struct {
	freq float64
	pos  int
}

func newToneGenerator(freq float64) *toneGenerator {
	return &toneGenerator{freq: freq}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)

		sample := 0.4 * math.Sin(2*math.Pi*g.freq*t)
		sample *= math.Min(t/0.01, 1.0)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
