package maze

import (
	"math/rand"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// GenConfig controls procedural maze generation.
type GenConfig struct {
	// Cols and Rows are rounded down to odd numbers, minimum 5.
	Cols, Rows int
	// Braid is the chance, 0 to 1, that a dead end is opened into a loop.
	// Loops give enemies more than one route to the player.
	Braid float64
	Seed  int64
}

// Generate carves a maze with a randomized depth-first backtracker and then
// braids dead ends. The result is rows of wall flags with a solid border;
// every floor cell is reachable from every other.
func Generate(cfg GenConfig) [][]bool {
	rows := oddAtLeast5(cfg.Rows)
	cols := oddAtLeast5(cfg.Cols)
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- map generation

	walls := make([][]bool, rows)
	for r := range walls {
		walls[r] = make([]bool, cols)
		for c := range walls[r] {
			walls[r][c] = true
		}
	}

	carve(walls, rng)
	if cfg.Braid > 0 {
		braid(walls, cfg.Braid, rng)
	}
	return walls
}

// GenerateGrid wraps Generate into a grid.
func GenerateGrid(cfg GenConfig, tileSize float64) (*sim.Grid, error) {
	return sim.GridFromRows(Generate(cfg), tileSize)
}

// jumps move between rooms, which sit on odd coordinates.
var jumps = [4]sim.Cell{{Col: 0, Row: -2}, {Col: 0, Row: 2}, {Col: -2, Row: 0}, {Col: 2, Row: 0}}

func carve(walls [][]bool, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	start := sim.Cell{Col: 1, Row: 1}
	walls[start.Row][start.Col] = false
	stack := []sim.Cell{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var open []sim.Cell
		for _, j := range jumps {
			n := sim.Cell{Col: cur.Col + j.Col, Row: cur.Row + j.Row}
			if n.Col > 0 && n.Col < cols-1 && n.Row > 0 && n.Row < rows-1 && walls[n.Row][n.Col] {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := open[rng.Intn(len(open))]
		walls[(cur.Row+n.Row)/2][(cur.Col+n.Col)/2] = false
		walls[n.Row][n.Col] = false
		stack = append(stack, n)
	}
}

// braid knocks out one wall next to each selected dead end, joining it to a
// neighbouring room.
func braid(walls [][]bool, chance float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	for r := 1; r < rows-1; r += 2 {
		for c := 1; c < cols-1; c += 2 {
			if walls[r][c] || exits(walls, r, c) != 1 || rng.Float64() >= chance {
				continue
			}
			var candidates []sim.Cell
			for _, j := range jumps {
				nr, nc := r+j.Row, c+j.Col
				wr, wc := r+j.Row/2, c+j.Col/2
				if nr <= 0 || nr >= rows-1 || nc <= 0 || nc >= cols-1 {
					continue
				}
				if walls[wr][wc] && !walls[nr][nc] {
					candidates = append(candidates, sim.Cell{Col: wc, Row: wr})
				}
			}
			if len(candidates) > 0 {
				w := candidates[rng.Intn(len(candidates))]
				walls[w.Row][w.Col] = false
			}
		}
	}
}

func exits(walls [][]bool, r, c int) int {
	n := 0
	for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if !walls[r+d[1]][c+d[0]] {
			n++
		}
	}
	return n
}

func oddAtLeast5(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
