package sim

import (
	"math"

	bt "github.com/joeycumines/go-behaviortree"

	"github.com/Garsondee/Maze-Combat/internal/config"
)

// Agent is the shared body of the player and the enemies: a square box
// anchored at its top-left corner.
type Agent struct {
	X, Y      float64
	Size      float64
	Speed     float64 // world units per tick
	Health    int
	MaxHealth int
}

// Center returns the bounding-box center.
func (a *Agent) Center() (float64, float64) {
	return a.X + a.Size/2, a.Y + a.Size/2
}

// Cell returns the cell holding the top-left corner.
func (a *Agent) Cell(g *Grid) Cell {
	return g.WorldToCell(a.X, a.Y)
}

// PlaceAt moves the agent onto a cell origin.
func (a *Agent) PlaceAt(g *Grid, c Cell) {
	a.X, a.Y = g.CellOrigin(c)
}

// Damage lowers health, never below zero.
func (a *Agent) Damage(n int) {
	a.Health -= n
	if a.Health < 0 {
		a.Health = 0
	}
}

// Dead reports whether health reached zero.
func (a *Agent) Dead() bool {
	return a.Health <= 0
}

// Weapon is a named player weapon.
type Weapon struct {
	Name string
	config.Weapon
}

// Player is the controlled agent.
type Player struct {
	Agent
	Weapon   Weapon
	Firing   bool    // trigger held on an automatic weapon
	LastShot float64 // seconds; -Inf before the first shot
	AimX     float64
	AimY     float64
}

// Facing returns the unit vector from the player center toward the aim
// point, or zero when the aim point is the center.
func (p *Player) Facing() (float64, float64) {
	cx, cy := p.Center()
	return unit(p.AimX-cx, p.AimY-cy)
}

// EnemyState is the derived navigation state of an enemy.
type EnemyState int

const (
	EnemyReplanning EnemyState = iota // path empty or aimed at a stale target
	EnemySeeking                      // following a current path
)

func (s EnemyState) String() string {
	switch s {
	case EnemySeeking:
		return "seeking"
	case EnemyReplanning:
		return "replanning"
	default:
		return "unknown"
	}
}

// Enemy is an autonomous agent that hunts the player.
type Enemy struct {
	Agent
	ID          int
	Target      Cell
	Path        []Cell
	LastContact float64 // seconds of the last contact-damage application
	LastShot    float64 // seconds of the last ranged shot
	Replans     int

	tree bt.Node
}

// State reports Seeking when the path is non-empty and ends at the target.
func (e *Enemy) State() EnemyState {
	if n := len(e.Path); n > 0 && e.Path[n-1] == e.Target {
		return EnemySeeking
	}
	return EnemyReplanning
}

// Facing returns the unit vector toward the next path cell origin.
func (e *Enemy) Facing(g *Grid) (float64, float64) {
	if len(e.Path) == 0 {
		return 0, 0
	}
	tx, ty := g.CellOrigin(e.Path[0])
	return unit(tx-e.X, ty-e.Y)
}

func unit(dx, dy float64) (float64, float64) {
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return dx / l, dy / l
}
