package sim

import "math"

// retreatTiles is how close, in tiles, an enemy may get before the
// autopilot backs away.
const retreatTiles = 2.0

// Autopilot is a scripted player for headless runs and tests. It hunts the
// nearest enemy along an A* route, shoots at enemies in sight and backs away
// from enemies that close in.
type Autopilot struct {
	s    *Session
	held bool // trigger currently pressed
}

// NewAutopilot returns an autopilot playing the given session.
func NewAutopilot(s *Session) *Autopilot {
	return &Autopilot{s: s}
}

// Poll implements InputProvider.
func (a *Autopilot) Poll() Intent {
	p := a.s.player
	px, py := p.Center()
	in := Intent{PointerX: p.AimX, PointerY: p.AimY}

	nearest, dist := a.nearestEnemy(false)
	visible, _ := a.nearestEnemy(true)

	if visible != nil {
		in.PointerX, in.PointerY = visible.Center()
		switch {
		case !a.held:
			in.FirePressed = true
			a.held = true
		case !p.Weapon.Automatic:
			in.FireReleased = true
			a.held = false
		}
	} else if a.held {
		in.FireReleased = true
		a.held = false
	}

	if nearest == nil {
		return in
	}
	tile := a.s.grid.TileSize()
	ex, ey := nearest.Center()
	if dist < retreatTiles*tile {
		in.Keys = keysToward(px, py, 2*px-ex, 2*py-ey, p.Speed)
		return in
	}
	if visible == nil {
		path := FindPath(a.s.grid, p.Cell(a.s.grid), nearest.Cell(a.s.grid))
		if len(path) > 0 {
			tx, ty := a.s.grid.CellOrigin(path[0])
			in.Keys = keysToward(p.X, p.Y, tx, ty, p.Speed)
		}
	}
	return in
}

// nearestEnemy returns the closest live enemy by center distance, limited
// to enemies in line of sight when sighted is set.
func (a *Autopilot) nearestEnemy(sighted bool) (*Enemy, float64) {
	p := a.s.player
	px, py := p.Center()
	var best *Enemy
	bestDist := math.Inf(1)
	for _, e := range a.s.enemies {
		if e.Dead() {
			continue
		}
		ex, ey := e.Center()
		d := math.Hypot(ex-px, ey-py)
		if d >= bestDist {
			continue
		}
		if sighted && !HasLineOfSight(a.s.grid, px, py, ex, ey, a.s.rules.LOSStep) {
			continue
		}
		best, bestDist = e, d
	}
	return best, bestDist
}

// keysToward holds the keys that move from (x, y) toward (tx, ty), leaving
// an axis idle once it is within one step.
func keysToward(x, y, tx, ty, step float64) HeldKeys {
	var k HeldKeys
	if tx-x >= step {
		k.Right = true
	} else if x-tx >= step {
		k.Left = true
	}
	if ty-y >= step {
		k.Down = true
	} else if y-ty >= step {
		k.Up = true
	}
	return k
}
