// Package sim is the maze combat engine: terrain queries, A* planning,
// box collision, projectiles and the combat rules, stepped one fixed-rate
// tick at a time by Session.
package sim

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/Garsondee/Maze-Combat/internal/config"
)

var (
	// ErrSessionOver is returned by Step after the player died.
	ErrSessionOver = errors.New("sim: session is over")
	// ErrBlockedSpawn is returned when a fixed spawn cell is not walkable.
	ErrBlockedSpawn = errors.New("sim: spawn cell is blocked")
	// ErrTileMismatch is returned when the grid and rules disagree on tile size.
	ErrTileMismatch = errors.New("sim: grid tile size differs from rules")
)

// Stats are running counters of one session.
type Stats struct {
	PlayerShots int
	EnemyShots  int
	PlayerHits  int // player projectiles that hit an enemy
	EnemyHits   int // enemy projectiles that hit the player
	Impacts     int // projectiles stopped by terrain
	ContactHits int
	Replans     int
}

// TickResult describes one completed tick.
type TickResult struct {
	Tick   int
	Events []SoundEvent
	Over   bool
	// Faults joins every non-fatal collaborator error of the tick.
	Faults error
}

// Session owns all mutable simulation state. It is not safe for concurrent
// use; front ends step it from a single goroutine.
type Session struct {
	id     string
	rules  config.Rules
	grid   *Grid
	rng    *rand.Rand
	logger *slog.Logger
	log    *SimLog

	clock    Clock
	ownClock *TickClock
	audio    AudioPlayer
	sink     FrameSink
	ctrl     SessionController
	input    InputProvider

	escalation *EscalationRule
	escalated  bool

	player           *Player
	enemies          []*Enemy
	enemyCount       int
	projectiles      []*Projectile
	nextProjectileID int

	tick    int
	kills   int
	over    bool
	stats   Stats
	pending []SoundEvent
	faults  []error
}

// NewSession validates the rules, spawns the player and the enemies on
// sampled walkable cells and applies the options.
func NewSession(rules config.Rules, grid *Grid, opts ...Option) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if grid == nil {
		return nil, errors.New("sim: nil grid")
	}
	if grid.TileSize() != rules.TileSize {
		return nil, fmt.Errorf("%w: grid %.1f, rules %.1f", ErrTileMismatch, grid.TileSize(), rules.TileSize)
	}

	clock := NewTickClock(rules.TicksPerSecond)
	s := &Session{
		id:         uuid.NewString(),
		rules:      rules,
		grid:       grid,
		rng:        rand.New(rand.NewSource(1)), // #nosec G404 -- default seed
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		log:        NewSimLog(false),
		clock:      clock,
		ownClock:   clock,
		audio:      nopAudio{},
		enemyCount: rules.EnemyCount,
	}
	for _, o := range opts {
		if o.kind == optSetup {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}

	rule, err := CompileEscalationRule(rules.EscalateWhen)
	if err != nil {
		return nil, err
	}
	s.escalation = rule

	s.spawn()
	for _, o := range opts {
		if o.kind == optPlacement {
			if err := o.fn(s); err != nil {
				return nil, err
			}
		}
	}
	s.player.AimX, s.player.AimY = s.player.Center()
	for _, e := range s.enemies {
		e.tree = s.buildEnemyTree(e)
	}
	s.log.Add(0, globalLabel, CatSession, "start",
		fmt.Sprintf("id=%s grid=%dx%d enemies=%d", s.id, grid.Cols(), grid.Rows(), len(s.enemies)), 0)
	return s, nil
}

func (s *Session) weapon(name string) Weapon {
	return Weapon{Name: name, Weapon: s.rules.Weapons[name]}
}

// spawn creates the player and the enemies. Enemy timestamps start at the
// spawn time, so neither contact nor fire happens in the first cooldown.
func (s *Session) spawn() {
	now := s.clock.Seconds()
	s.player = &Player{
		Agent: Agent{
			Size:      s.rules.PlayerSize,
			Speed:     s.rules.PlayerSpeed,
			Health:    s.rules.PlayerHealth,
			MaxHealth: s.rules.PlayerHealth,
		},
		Weapon:   s.weapon(s.rules.StartWeapon),
		LastShot: math.Inf(-1),
	}
	s.player.PlaceAt(s.grid, s.grid.SampleWalkable(s.rng))

	s.enemies = make([]*Enemy, 0, s.enemyCount)
	for i := 0; i < s.enemyCount; i++ {
		e := &Enemy{
			Agent: Agent{
				Size:      s.rules.EnemySize,
				Speed:     s.rules.EnemySpeed,
				Health:    s.rules.EnemyHealth,
				MaxHealth: s.rules.EnemyHealth,
			},
			ID:          i,
			LastContact: now,
			LastShot:    now,
		}
		e.PlaceAt(s.grid, s.grid.SampleWalkable(s.rng))
		s.enemies = append(s.enemies, e)
	}
}

// Tick polls the input provider and steps once.
func (s *Session) Tick() (TickResult, error) {
	var in Intent
	if s.input != nil {
		in = s.input.Poll()
	}
	return s.Step(in)
}

// Step advances the simulation by one tick in a fixed order:
//  1. fire intents
//  2. player motion
//  3. enemy trees: retarget, replan if stale, advance, fire gate
//  4. projectile advance and terrain impacts
//  5. projectile hits and contact damage
//  6. deaths, respawns, escalation and player death
//  7. audio, frame sink and session controller
func (s *Session) Step(in Intent) (TickResult, error) {
	if s.over {
		return TickResult{Tick: s.tick, Over: true}, ErrSessionOver
	}
	s.tick++
	if s.ownClock != nil {
		s.ownClock.Advance()
	}
	s.pending = s.pending[:0]
	s.faults = s.faults[:0]

	// 1
	s.handleFireIntent(in)

	// 2
	dx, dy := in.Keys.Displacement(s.player.Speed)
	if MoveAgent(s.grid, &s.player.Agent, dx, dy) {
		s.log.AddVerbose(s.tick, playerLabel, CatMove, "move",
			fmt.Sprintf("(%.1f,%.1f)", s.player.X, s.player.Y), 0)
	}

	// 3
	for _, e := range s.enemies {
		s.runEnemy(e)
	}

	// 4
	s.advanceProjectiles()

	// 5
	s.resolveHits()
	s.resolveContact()

	// 6
	s.resolveDeaths()

	// 7
	res := TickResult{
		Tick:   s.tick,
		Events: append([]SoundEvent(nil), s.pending...),
		Over:   s.over,
	}
	s.flush()
	res.Faults = errors.Join(s.faults...)
	return res, nil
}

// flush hands the tick's output to the collaborators. Their errors are
// collected as faults and never abort the tick.
func (s *Session) flush() {
	for _, ev := range s.pending {
		if err := s.audio.Trigger(ev); err != nil {
			s.faults = append(s.faults, fmt.Errorf("audio %s: %w", ev.Name, err))
		}
	}
	if s.sink != nil {
		if err := s.sink.Present(s.Snapshot()); err != nil {
			s.faults = append(s.faults, fmt.Errorf("frame sink: %w", err))
		}
	}
	for _, err := range s.faults {
		s.logger.Warn("tick fault", "session", s.id, "tick", s.tick, "err", err)
		s.log.Add(s.tick, globalLabel, CatFault, "collaborator", err.Error(), 0)
	}
	if s.over && s.ctrl != nil {
		s.ctrl.SessionEnded(s.Result())
	}
}

// Snapshot returns a read-only copy of everything a renderer needs.
func (s *Session) Snapshot() Frame {
	p := s.player
	pfx, pfy := p.Facing()
	f := Frame{
		Tick:    s.tick,
		Seconds: s.clock.Seconds(),
		Kills:   s.kills,
		Weapon:  p.Weapon.Name,
		Over:    s.over,
		Player: AgentView{
			ID: -1, X: p.X, Y: p.Y, Size: p.Size,
			FaceX: pfx, FaceY: pfy,
			Health: p.Health, MaxHealth: p.MaxHealth,
		},
		Enemies:     make([]AgentView, 0, len(s.enemies)),
		Projectiles: make([]ProjectileView, 0, len(s.projectiles)),
	}
	for _, e := range s.enemies {
		fx, fy := e.Facing(s.grid)
		f.Enemies = append(f.Enemies, AgentView{
			ID: e.ID, X: e.X, Y: e.Y, Size: e.Size,
			FaceX: fx, FaceY: fy,
			Health: e.Health, MaxHealth: e.MaxHealth,
		})
	}
	for _, pr := range s.projectiles {
		dx, dy := pr.Direction()
		f.Projectiles = append(f.Projectiles, ProjectileView{
			X: pr.X, Y: pr.Y, DirX: dx, DirY: dy, Owner: pr.Owner,
		})
	}
	return f
}

// Result returns the session outcome so far.
func (s *Session) Result() Result {
	return Result{
		SessionID: s.id,
		Kills:     s.kills,
		Ticks:     s.tick,
		Seconds:   s.clock.Seconds(),
		Stats:     s.stats,
	}
}

// Report renders a plain-text summary of the session.
func (s *Session) Report() string {
	r := s.Result()
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Maze combat session %s ---\n", r.SessionID)
	fmt.Fprintf(&sb, "Grid: %dx%d  enemies: %d\n", s.grid.Cols(), s.grid.Rows(), len(s.enemies))
	fmt.Fprintf(&sb, "Ticks: %d (%.1fs)  over: %t\n", r.Ticks, r.Seconds, s.over)
	fmt.Fprintf(&sb, "Kills: %d  weapon: %s  health: %d/%d\n",
		r.Kills, s.player.Weapon.Name, s.player.Health, s.player.MaxHealth)
	fmt.Fprintf(&sb, "Shots: player=%d enemy=%d\n", r.Stats.PlayerShots, r.Stats.EnemyShots)
	fmt.Fprintf(&sb, "Hits: on enemies=%d on player=%d  terrain=%d  contact=%d\n",
		r.Stats.PlayerHits, r.Stats.EnemyHits, r.Stats.Impacts, r.Stats.ContactHits)
	fmt.Fprintf(&sb, "Replans: %d\n", r.Stats.Replans)
	if e, ok := s.log.LastOf(CatWeapon, "escalate"); ok {
		fmt.Fprintf(&sb, "Escalated at T=%03d: %s\n", e.Tick, e.Value)
	}
	return sb.String()
}

// Accessors.

func (s *Session) ID() string                 { return s.id }
func (s *Session) Grid() *Grid                { return s.grid }
func (s *Session) Rules() config.Rules        { return s.rules }
func (s *Session) Player() *Player            { return s.player }
func (s *Session) Enemies() []*Enemy          { return s.enemies }
func (s *Session) Projectiles() []*Projectile { return s.projectiles }
func (s *Session) Kills() int                 { return s.kills }
func (s *Session) Over() bool                 { return s.over }
func (s *Session) Ticks() int                 { return s.tick }
func (s *Session) Now() float64               { return s.clock.Seconds() }
func (s *Session) Log() *SimLog               { return s.log }
func (s *Session) Stats() Stats               { return s.stats }
