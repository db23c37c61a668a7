package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optSetup     optionKind = iota // seed, clock, collaborators, logging; applied first
	optPlacement                   // fixed spawn cells; applied after random spawning
)

// Option configures a Session during construction.
type Option struct {
	kind optionKind
	fn   func(*Session) error
}

// WithSeed sets the RNG seed used for spawn sampling.
func WithSeed(seed int64) Option {
	return Option{optSetup, func(s *Session) error {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
		return nil
	}}
}

// WithClock replaces the internal tick clock. The session then never
// advances time itself.
func WithClock(c Clock) Option {
	return Option{optSetup, func(s *Session) error {
		s.clock = c
		s.ownClock = nil
		return nil
	}}
}

// WithAudio sets the audio collaborator.
func WithAudio(a AudioPlayer) Option {
	return Option{optSetup, func(s *Session) error {
		s.audio = a
		return nil
	}}
}

// WithFrameSink sets a renderer that receives every frame.
func WithFrameSink(f FrameSink) Option {
	return Option{optSetup, func(s *Session) error {
		s.sink = f
		return nil
	}}
}

// WithController sets the collaborator told about player death.
func WithController(c SessionController) Option {
	return Option{optSetup, func(s *Session) error {
		s.ctrl = c
		return nil
	}}
}

// WithInput sets the provider polled by Tick.
func WithInput(in InputProvider) Option {
	return Option{optSetup, func(s *Session) error {
		s.input = in
		return nil
	}}
}

// WithLogger sets the process logger used for non-fatal faults.
func WithLogger(l *slog.Logger) Option {
	return Option{optSetup, func(s *Session) error {
		s.logger = l
		return nil
	}}
}

// WithVerbose enables per-tick movement and replan entries in the SimLog.
func WithVerbose(v bool) Option {
	return Option{optSetup, func(s *Session) error {
		s.log = NewSimLog(v)
		return nil
	}}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return Option{optSetup, func(s *Session) error {
		s.id = id
		return nil
	}}
}

// WithEnemyCount overrides the number of enemies in the rules.
func WithEnemyCount(n int) Option {
	return Option{optSetup, func(s *Session) error {
		if n < 0 {
			return fmt.Errorf("sim: negative enemy count %d", n)
		}
		s.enemyCount = n
		return nil
	}}
}

// WithPlayerAt places the player on a fixed cell instead of a sampled one.
func WithPlayerAt(c Cell) Option {
	return Option{optPlacement, func(s *Session) error {
		if !s.grid.IsWalkable(c.Col, c.Row) {
			return fmt.Errorf("%w: player at %v", ErrBlockedSpawn, c)
		}
		s.player.PlaceAt(s.grid, c)
		return nil
	}}
}

// WithEnemyAt places enemy idx on a fixed cell instead of a sampled one.
func WithEnemyAt(idx int, c Cell) Option {
	return Option{optPlacement, func(s *Session) error {
		if idx < 0 || idx >= len(s.enemies) {
			return fmt.Errorf("sim: no enemy %d (have %d)", idx, len(s.enemies))
		}
		if !s.grid.IsWalkable(c.Col, c.Row) {
			return fmt.Errorf("%w: enemy %d at %v", ErrBlockedSpawn, idx, c)
		}
		s.enemies[idx].PlaceAt(s.grid, c)
		return nil
	}}
}
