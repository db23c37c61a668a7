package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// patch describes the synthesized sound of one event.
type patch struct {
	from, to float64 // Hz
	wave     Wave
	length   time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
	// layer adds a noise burst of this length on top, for punch.
	layer time.Duration
}

var patches = map[sim.EventName]patch{
	sim.EventPlayerFire:          {from: 1200, to: 300, wave: WaveSquare, length: 120 * time.Millisecond, attack: 2 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.25},
	sim.EventEnemyFire:           {from: 420, to: 160, wave: WaveSaw, length: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 90 * time.Millisecond, gain: 0.25},
	sim.EventProjectileImpact:    {wave: WaveNoise, length: 60 * time.Millisecond, attack: time.Millisecond, release: 40 * time.Millisecond, gain: 0.15},
	sim.EventProjectileHit:       {from: 200, to: 120, wave: WaveSquare, length: 90 * time.Millisecond, attack: time.Millisecond, release: 50 * time.Millisecond, gain: 0.3, layer: 30 * time.Millisecond},
	sim.EventEnemyDeath:          {from: 500, to: 50, wave: WaveSaw, length: 350 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.35, layer: 120 * time.Millisecond},
	sim.EventPlayerContactDamage: {from: 110, to: 110, wave: WaveSine, length: 220 * time.Millisecond, attack: 5 * time.Millisecond, release: 120 * time.Millisecond, gain: 0.5},
}

// miniGun is a short, dry burst so rapid fire does not smear.
var miniGun = patch{from: 700, to: 500, wave: WaveSquare, length: 45 * time.Millisecond, attack: time.Millisecond, release: 25 * time.Millisecond, gain: 0.2, layer: 20 * time.Millisecond}

func patchFor(ev sim.SoundEvent) (patch, bool) {
	if ev.Name == sim.EventPlayerFire && ev.Weapon == config.WeaponMiniGun {
		return miniGun, true
	}
	p, ok := patches[ev.Name]
	return p, ok
}

// source returns the raw oscillator of a patch. Steady sines come from
// beep's generators; sweeps and other waves use tone.
func (p patch) source(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	if p.wave == WaveSine && p.from == p.to {
		if s, err := generators.SineTone(rate, p.from); err == nil {
			return beep.Take(rate.N(p.length), s)
		}
	}
	return newTone(p.from, p.to, p.length, p.wave, rate, rng)
}

// build renders a patch into a finite streamer.
func (p patch) build(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	body := beep.Streamer(newEnvelope(p.source(rate, rng), p.length, p.attack, p.release, rate))
	if p.layer > 0 {
		noise := newEnvelope(newTone(0, 0, p.layer, WaveNoise, rate, rng), p.layer, 0, p.layer/2, rate)
		body = beep.Mix(body, withVolume(noise, 0.5))
	}
	return withVolume(beep.Take(rate.N(p.length), body), p.gain)
}
