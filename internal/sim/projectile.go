package sim

import (
	"errors"
	"math"
)

// Owner tells which side fired a projectile.
type Owner int

const (
	OwnerPlayer Owner = iota // may only damage enemies
	OwnerEnemy               // may only damage the player
)

func (o Owner) String() string {
	if o == OwnerPlayer {
		return "player"
	}
	return "enemy"
}

// ErrZeroDirection rejects a spawn whose target equals its origin.
var ErrZeroDirection = errors.New("sim: projectile direction has zero length")

// Projectile is a straight-flying shot with a velocity fixed at spawn.
type Projectile struct {
	ID     int
	X, Y   float64
	VX, VY float64
	Owner  Owner
	Alive  bool
}

// SpawnProjectile creates a projectile at (fromX, fromY) flying toward
// (toX, toY) at the given speed.
func SpawnProjectile(fromX, fromY, toX, toY, speed float64, owner Owner) (*Projectile, error) {
	dx := toX - fromX
	dy := toY - fromY
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return nil, ErrZeroDirection
	}
	return &Projectile{
		X:     fromX,
		Y:     fromY,
		VX:    dx / dist * speed,
		VY:    dy / dist * speed,
		Owner: owner,
		Alive: true,
	}, nil
}

// Direction returns the unit flight direction.
func (p *Projectile) Direction() (float64, float64) {
	return unit(p.VX, p.VY)
}

// Advance moves the projectile one tick. When the next position lies in a
// blocked or out-of-bounds cell the projectile stays put, is marked dead and
// Advance returns false.
func (p *Projectile) Advance(g *Grid) bool {
	if !p.Alive {
		return false
	}
	nx, ny := p.X+p.VX, p.Y+p.VY
	c := g.WorldToCell(nx, ny)
	if g.IsBlocked(c.Col, c.Row) {
		p.Alive = false
		return false
	}
	p.X, p.Y = nx, ny
	return true
}

// Hits is an axis-aligned square proximity test against the agent's
// bounding-box center.
func (p *Projectile) Hits(a *Agent, radius float64) bool {
	cx, cy := a.Center()
	return math.Abs(p.X-cx) < radius && math.Abs(p.Y-cy) < radius
}
