package sim

import "math"

// HasLineOfSight samples the segment from (ax, ay) to (bx, by) every step
// world units and returns false as soon as a sample lands in a blocked
// cell. The start point is not sampled; the end point is.
func HasLineOfSight(g *Grid, ax, ay, bx, by, step float64) bool {
	dx := bx - ax
	dy := by - ay
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)) / step)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c := g.WorldToCell(ax+dx*t, ay+dy*t)
		if g.IsBlocked(c.Col, c.Row) {
			return false
		}
	}
	return true
}
