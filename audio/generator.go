package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-racer/status"
)

// HumGenerator is the looping engine tone; its pitch glides toward a target set from the game loop
type HumGenerator struct {
	sr    beep.SampleRate
	phase float64
	freq  float64
	level float64

	target      status.AtomicFloat // Hz, written by the game goroutine
	targetLevel status.AtomicFloat
}

// NewHumGenerator creates an idle engine hum
func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	g := &HumGenerator{sr: sr, freq: humIdleFreq}
	g.target.Set(humIdleFreq)
	g.targetLevel.Set(humIdleLevel)
	return g
}

// SetSpeed maps a speed ratio in [0,1] onto pitch and loudness
func (g *HumGenerator) SetSpeed(ratio float64) {
	ratio = clamp01(ratio)
	g.target.Set(humIdleFreq + (humMaxFreq-humIdleFreq)*ratio)
	g.targetLevel.Set(humIdleLevel + (humMaxLevel-humIdleLevel)*ratio)
}

// Target returns the pitch the hum is gliding toward
func (g *HumGenerator) Target() float64 {
	return g.target.Get()
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.target.Get()
	level := g.targetLevel.Get()
	// One-pole glide, roughly 50ms to settle
	glide := 1 - math.Exp(-1/(0.05*float64(g.sr)))
	for i := range samples {
		g.freq += (target - g.freq) * glide
		g.level += (level - g.level) * glide

		// Fundamental plus a saw-ish second harmonic for engine grit
		s := math.Sin(2*math.Pi*g.phase) + 0.35*math.Sin(4*math.Pi*g.phase)
		s *= g.level / 1.35

		samples[i][0] = s
		samples[i][1] = s

		g.phase += g.freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error { return nil }

// RumbleGenerator is low-passed noise played while the vehicle is off the track
type RumbleGenerator struct {
	sr  beep.SampleRate
	rng *rand.Rand
	lp  float64
	pos int
}

// NewRumbleGenerator creates a deterministic rumble source
func NewRumbleGenerator(sr beep.SampleRate, seed int64) *RumbleGenerator {
	return &RumbleGenerator{sr: sr, rng: rand.New(rand.NewSource(seed))}
}

func (g *RumbleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	alpha := 1 - math.Exp(-2*math.Pi*rumbleCutoff/float64(g.sr))
	for i := range samples {
		noise := g.rng.Float64()*2 - 1
		g.lp += (noise - g.lp) * alpha
		t := float64(g.pos) / float64(g.sr)
		s := rumbleLevel * (0.7*g.lp*4 + 0.3*math.Sin(2*math.Pi*rumbleToneFreq*t))
		s = math.Max(-1, math.Min(1, s))

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *RumbleGenerator) Err() error { return nil }

// BuzzGenerator is a short harmonic buzz, used for the reverse kick
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		// Fade in over 20ms
		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error { return nil }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero gain is silence
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
