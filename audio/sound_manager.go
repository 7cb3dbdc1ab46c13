// Package audio turns vehicle state into sound: an engine hum that follows speed,
// a rumble while off-track and a buzz on the reverse kick.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	humIdleFreq  = 55.0
	humMaxFreq   = 220.0
	humIdleLevel = 0.05
	humMaxLevel  = 0.18

	rumbleCutoff   = 120.0
	rumbleToneFreq = 38.0
	rumbleLevel    = 0.25
	rumbleSeed     = 42

	kickFreq     = 90.0
	kickDuration = 150 * time.Millisecond

	masterVolume = 0.8
)

// Feedback is the per-frame vehicle state the sound manager follows
type Feedback struct {
	SpeedRatio   float64
	OffTrack     bool
	ReverseKicks int64
}

// SoundManager manages all game audio
// Every method is safe before Initialize and after Cleanup; audio is optional
type SoundManager struct {
	mu sync.Mutex

	hum    *HumGenerator
	humCtl *beep.Ctrl
	rumble *beep.Ctrl
	mixer  *beep.Mixer
	master *effects.Volume

	lastKicks   int64
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		hum:   NewHumGenerator(sampleRate),
	}
	sm.master = newVolume(sm.mixer, masterVolume)
	sm.humCtl = &beep.Ctrl{Streamer: sm.hum, Paused: true}
	sm.rumble = &beep.Ctrl{Streamer: newVolume(NewRumbleGenerator(sampleRate, rumbleSeed), 1), Paused: true}
	return sm
}

// Initialize opens the speaker and starts the looping voices paused
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	sm.mixer.Add(sm.humCtl, sm.rumble)
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
// beep has no speaker Close; clearing the mixer leaves nothing to play
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.humCtl.Paused = true
	sm.rumble.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Update follows the latest frame: hum pitch by speed, rumble while off-track,
// a buzz for every reverse kick since the previous update
func (sm *SoundManager) Update(fb Feedback) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.hum.SetSpeed(fb.SpeedRatio)
	kicks := fb.ReverseKicks - sm.lastKicks
	sm.lastKicks = fb.ReverseKicks

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.humCtl.Paused = false
	sm.rumble.Paused = !fb.OffTrack
	if kicks > 0 {
		sm.mixer.Add(beep.Take(sampleRate.N(kickDuration), NewBuzzGenerator(sampleRate, kickFreq)))
	}
	speaker.Unlock()
}

// ToggleMute silences or restores the master output, returning the new muted state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.master.Silent = !sm.master.Silent
	return sm.master.Silent
}

// Muted reports the master mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.master.Silent
}

// HumTarget returns the engine pitch the hum is gliding toward
func (sm *SoundManager) HumTarget() float64 {
	return sm.hum.Target()
}
