package audio

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

func drain(p *Player, d time.Duration) (peak float64) {
	buf := make([][2]float64, 512)
	for n := sampleRate.N(d); n > 0; n -= len(buf) {
		got, _ := p.Stream(buf)
		for _, s := range buf[:got] {
			peak = math.Max(peak, math.Abs(s[0]))
		}
	}
	return peak
}

func TestTrigger_BeforeInit(t *testing.T) {
	p := NewPlayer(1)
	err := p.Trigger(sim.SoundEvent{Name: sim.EventPlayerFire})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTrigger_EveryEventHasASound(t *testing.T) {
	p := NewPlayer(1)
	p.InitDetached()
	for _, name := range sim.AllEvents {
		require.NoError(t, p.Trigger(sim.SoundEvent{Name: name}), name)
	}
	assert.Equal(t, len(sim.AllEvents), p.Active())

	peak := drain(p, time.Second)
	assert.Greater(t, peak, 0.0, "voices should be audible")
	assert.Equal(t, 0, p.Active(), "finished voices leave the mixer")

	played, dropped := p.Stats()
	assert.Equal(t, len(sim.AllEvents), played)
	assert.Zero(t, dropped)
}

func TestTrigger_UnknownEvent(t *testing.T) {
	p := NewPlayer(1)
	p.InitDetached()
	err := p.Trigger(sim.SoundEvent{Name: "door_open"})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestTrigger_Muted(t *testing.T) {
	p := NewPlayer(1)
	p.InitDetached()
	p.SetMuted(true)
	require.NoError(t, p.Trigger(sim.SoundEvent{Name: sim.EventEnemyDeath}))
	assert.Zero(t, p.Active())
}

func TestTrigger_VoiceCap(t *testing.T) {
	p := NewPlayer(1)
	p.InitDetached()
	for i := 0; i < maxVoices+5; i++ {
		require.NoError(t, p.Trigger(sim.SoundEvent{Name: sim.EventPlayerFire, Weapon: config.WeaponMiniGun}))
	}
	played, dropped := p.Stats()
	assert.Equal(t, maxVoices, played)
	assert.Equal(t, 5, dropped)
}

func TestPatchFor_MiniGunOverride(t *testing.T) {
	mini, ok := patchFor(sim.SoundEvent{Name: sim.EventPlayerFire, Weapon: config.WeaponMiniGun})
	require.True(t, ok)
	plasma, ok := patchFor(sim.SoundEvent{Name: sim.EventPlayerFire, Weapon: config.WeaponPlasmaGun})
	require.True(t, ok)
	assert.Less(t, mini.length, plasma.length)
}

func TestTone_Length(t *testing.T) {
	tn := newTone(440, 440, 10*time.Millisecond, WaveSine, sampleRate, rand.New(rand.NewSource(1)))
	buf := make([][2]float64, 1000)
	n, ok := tn.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, sampleRate.N(10*time.Millisecond), n)

	n, ok = tn.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestEnvelope_FadesToSilence(t *testing.T) {
	d := 20 * time.Millisecond
	env := newEnvelope(newTone(0, 0, d, WaveSquare, sampleRate, nil), d, 0, d/2, sampleRate)
	buf := make([][2]float64, sampleRate.N(d))
	n, _ := env.Stream(buf)
	require.Equal(t, len(buf), n)
	assert.Equal(t, 1.0, buf[0][0], "no attack means full gain at start")
	assert.InDelta(t, 0, buf[n-1][0], 0.01)
}

func TestClose_Detached(t *testing.T) {
	p := NewPlayer(1)
	p.InitDetached()
	require.NoError(t, p.Trigger(sim.SoundEvent{Name: sim.EventEnemyFire}))
	p.Close()
	assert.Zero(t, p.Active())
	assert.ErrorIs(t, p.Trigger(sim.SoundEvent{Name: sim.EventEnemyFire}), ErrNotInitialized)
}

func TestPatch_SteadySineUsesGenerator(t *testing.T) {
	p := patches[sim.EventPlayerContactDamage]
	_, isTone := p.source(sampleRate, nil).(*tone)
	assert.False(t, isTone, "a steady sine should come from the generator")

	sweep := patches[sim.EventEnemyDeath]
	_, isTone = sweep.source(sampleRate, rand.New(rand.NewSource(1))).(*tone)
	assert.True(t, isTone)
}
