// Package audio synthesizes short sound effects for simulation events and
// plays them through the system speaker.
package audio

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

const (
	sampleRate = beep.SampleRate(44100)
	// maxVoices caps simultaneous effects; extra triggers are dropped.
	maxVoices = 24
)

var (
	// ErrNotInitialized is returned by Trigger before Init.
	ErrNotInitialized = errors.New("audio: player not initialized")
	// ErrUnknownEvent is returned for an event without a sound.
	ErrUnknownEvent = errors.New("audio: unknown event")
)

// Player implements sim.AudioPlayer on top of a beep mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	muted       bool
	initialized bool
	device      bool
	rng         *rand.Rand

	played, dropped int
}

// NewPlayer returns an uninitialized player at the given master volume.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		rate:   sampleRate,
		volume: volume,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- noise
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.device = true
	return nil
}

// InitDetached readies the player without a device; samples are pulled
// through Stream instead. Used for headless runs and tests.
func (p *Player) InitDetached() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = true
}

// SetMuted silences new triggers without closing the device.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Trigger queues the sound for ev. It never blocks on playback.
func (p *Player) Trigger(ev sim.SoundEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return ErrNotInitialized
	}
	pt, ok := patchFor(ev)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, ev.Name)
	}
	if p.muted {
		return nil
	}

	p.lock()
	defer p.unlock()
	if p.mixer.Len() >= maxVoices {
		p.dropped++
		return nil
	}
	p.mixer.Add(withVolume(pt.build(p.rate, p.rng), p.volume))
	p.played++
	return nil
}

// Stream pulls mixed samples from a detached player.
func (p *Player) Stream(samples [][2]float64) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Stream(samples)
}

// Stats returns how many triggers were played and dropped.
func (p *Player) Stats() (played, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played, p.dropped
}

// Active returns the number of voices still sounding.
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lock()
	defer p.unlock()
	return p.mixer.Len()
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	p.lock()
	p.mixer.Clear()
	p.unlock()
	if p.device {
		speaker.Close()
	}
	p.initialized = false
	p.device = false
}

func (p *Player) lock() {
	if p.device {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.device {
		speaker.Unlock()
	}
}
