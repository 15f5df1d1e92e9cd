package tui

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	thudDuration = 180 * time.Millisecond
	thudFreq     = 70.0 // Hz
	hitDuration  = 40 * time.Millisecond
	hitFreq      = 880.0 // Hz

	maxVoices = 8 // concurrent one-shot sounds in the mixer
)

// SoundManager plays battle cues through the system speaker. Every method is
// a no-op until Initialize succeeds, so a machine without audio runs silent.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still queued.
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

// PlayKills plays one thud for a tick's kills, louder the more units died.
func (sm *SoundManager) PlayKills(n int) {
	if n <= 0 {
		return
	}
	gain := math.Min(0.25+0.05*float64(n), 0.6)
	sm.add(beep.Take(sampleRate.N(thudDuration), NewThudGenerator(sampleRate, thudFreq, gain)))
}

// PlayHit plays a short high blip for a rocket strike.
func (sm *SoundManager) PlayHit() {
	tone, err := generators.SineTone(sampleRate, hitFreq)
	if err != nil {
		return
	}
	sm.add(beep.Take(sampleRate.N(hitDuration), tone))
}

func (sm *SoundManager) add(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return
	}
	sm.mixer.Add(s)
}

// ThudGenerator is a low sine with a noise burst under an exponential decay,
// the sound of a tank brewing up.
type ThudGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
	seed uint32
}

func NewThudGenerator(sr beep.SampleRate, freq, gain float64) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, gain: gain, seed: 0x9e3779b9}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 18)
		v := g.gain * env * (0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*g.noise())
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error { return nil }

// noise is an xorshift sample in [-1, 1).
func (g *ThudGenerator) noise() float64 {
	g.seed ^= g.seed << 13
	g.seed ^= g.seed >> 17
	g.seed ^= g.seed << 5
	return float64(g.seed)/float64(1<<31) - 1
}
