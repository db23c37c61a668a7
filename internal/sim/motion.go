package sim

import "math"

// cornerInset pulls the far box edges back inside the box so an agent whose
// right edge touches a wall does not count as overlapping it.
const cornerInset = 1.0

// snapEpsilon absorbs float drift when landing on a cell origin.
const snapEpsilon = 1e-9

// BoxFits reports whether a box of the given side at (x, y) has all four
// corners on walkable cells.
func (g *Grid) BoxFits(x, y, size float64) bool {
	maxX := x + size - cornerInset
	maxY := y + size - cornerInset
	corners := [4][2]float64{
		{x, y},       // top-left
		{maxX, y},    // top-right
		{x, maxY},    // bottom-left
		{maxX, maxY}, // bottom-right
	}
	for _, c := range corners {
		cell := g.WorldToCell(c[0], c[1])
		if g.IsBlocked(cell.Col, cell.Row) {
			return false
		}
	}
	return true
}

// MoveAgent applies a per-axis displacement and returns whether the agent
// moved. A combined move that collides falls back to each axis on its own,
// which lets agents slide along walls.
func MoveAgent(g *Grid, a *Agent, dx, dy float64) bool {
	switch {
	case dx == 0 && dy == 0:
		return false
	case dx != 0 && dy != 0:
		if g.BoxFits(a.X+dx, a.Y+dy, a.Size) {
			a.X += dx
			a.Y += dy
			return true
		}
		moved := false
		if g.BoxFits(a.X+dx, a.Y, a.Size) {
			a.X += dx
			moved = true
		}
		if g.BoxFits(a.X, a.Y+dy, a.Size) {
			a.Y += dy
			moved = true
		}
		return moved
	case dx != 0:
		if g.BoxFits(a.X+dx, a.Y, a.Size) {
			a.X += dx
			return true
		}
	default:
		if g.BoxFits(a.X, a.Y+dy, a.Size) {
			a.Y += dy
			return true
		}
	}
	return false
}

// stepToward clamps the remaining distance to one tick of movement.
func stepToward(from, to, speed float64) float64 {
	d := to - from
	if d > speed {
		return speed
	}
	if d < -speed {
		return -speed
	}
	return d
}

// StepAlongPath moves an enemy one tick toward the origin of its next path
// cell and pops that cell once the origin is reached exactly.
func StepAlongPath(g *Grid, e *Enemy) {
	if len(e.Path) == 0 {
		return
	}
	tx, ty := g.CellOrigin(e.Path[0])
	dx := stepToward(e.X, tx, e.Speed)
	dy := stepToward(e.Y, ty, e.Speed)
	MoveAgent(g, &e.Agent, dx, dy)

	if math.Abs(e.X-tx) < snapEpsilon {
		e.X = tx
	}
	if math.Abs(e.Y-ty) < snapEpsilon {
		e.Y = ty
	}
	if e.X == tx && e.Y == ty {
		e.Path = e.Path[1:]
	}
}

// HeldKeys is the set of movement keys held during a tick.
type HeldKeys struct {
	Up, Down, Left, Right bool
}

// Displacement converts held keys into a per-axis displacement.
func (k HeldKeys) Displacement(speed float64) (float64, float64) {
	dx, dy := 0.0, 0.0
	if k.Left {
		dx -= speed
	}
	if k.Right {
		dx += speed
	}
	if k.Up {
		dy -= speed
	}
	if k.Down {
		dy += speed
	}
	return dx, dy
}
