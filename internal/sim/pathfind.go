package sim

import (
	"container/heap"
	"math"
)

const (
	costCardinal = 1.0
	costDiagonal = 1.4
)

// --- A* pathfinding ---

type pathNode struct {
	cell   Cell
	g, f   float64
	seq    int // insertion order, breaks f ties FIFO
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }
func (ol openList) Less(i, j int) bool {
	if ol[i].f != ol[j].f {
		return ol[i].f < ol[j].f
	}
	return ol[i].seq < ol[j].seq
}
func (ol openList) Swap(i, j int)       { ol[i], ol[j] = ol[j], ol[i]; ol[i].index = i; ol[j].index = j }
func (ol *openList) Push(x interface{}) { n := x.(*pathNode); n.index = len(*ol); *ol = append(*ol, n) }
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var dirs = [8][2]int{
	{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// octile is the exact cost of the cheapest route between a and b on an
// open grid, so it never overestimates and paths come out cost-optimal.
func octile(a, b Cell) float64 {
	dc := math.Abs(float64(a.Col - b.Col))
	dr := math.Abs(float64(a.Row - b.Row))
	return math.Max(dc, dr)*costCardinal + math.Min(dc, dr)*(costDiagonal-costCardinal)
}

// FindPath returns the cells from start's successor to goal, or nil when
// goal is unreachable (or equal to start).
//
// Diagonal steps are refused only when both orthogonal cells flanking the
// diagonal are blocked.
func FindPath(g *Grid, start, goal Cell) []Cell {
	if start == goal || g.IsBlocked(goal.Col, goal.Row) || g.IsBlocked(start.Col, start.Row) {
		return nil
	}

	key := func(c Cell) int { return c.Row*g.cols + c.Col }
	best := make(map[int]float64)

	seq := 0
	ol := &openList{{cell: start, g: 0, f: octile(start, goal)}}
	heap.Init(ol)
	best[key(start)] = 0

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.cell == goal {
			return buildPath(cur)
		}
		// Stale entry: a cheaper route to this cell was queued later.
		if cur.g > best[key(cur.cell)] {
			continue
		}

		for _, d := range dirs {
			n := Cell{Col: cur.cell.Col + d[0], Row: cur.cell.Row + d[1]}
			if g.IsBlocked(n.Col, n.Row) {
				continue
			}
			cost := costCardinal
			if d[0] != 0 && d[1] != 0 {
				if g.IsBlocked(n.Col, cur.cell.Row) && g.IsBlocked(cur.cell.Col, n.Row) {
					continue
				}
				cost = costDiagonal
			}
			ng := cur.g + cost
			nk := key(n)
			if prev, ok := best[nk]; ok && ng >= prev {
				continue
			}
			best[nk] = ng
			seq++
			heap.Push(ol, &pathNode{cell: n, g: ng, f: ng + octile(n, goal), seq: seq, parent: cur})
		}
	}
	return nil
}

// buildPath walks the predecessor links back to the start and drops it.
func buildPath(end *pathNode) []Cell {
	var cells []Cell
	for n := end; n.parent != nil; n = n.parent {
		cells = append(cells, n.cell)
	}
	// Reverse
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// PathCost sums the edge costs along a path that starts next to start.
func PathCost(start Cell, path []Cell) float64 {
	total := 0.0
	prev := start
	for _, c := range path {
		if c.Col != prev.Col && c.Row != prev.Row {
			total += costDiagonal
		} else {
			total += costCardinal
		}
		prev = c
	}
	return total
}
