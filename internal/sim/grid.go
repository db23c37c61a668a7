package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Cell addresses one tile of the grid.
type Cell struct {
	Col, Row int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Col, c.Row) }

// Grid is the static walkability map of a session. It is immutable after
// construction and shared by every component that queries terrain.
type Grid struct {
	cols     int
	rows     int
	tile     float64
	blocked  []bool
	walkable []Cell
}

var (
	// ErrGridShape is returned when the cell data does not match the
	// declared dimensions.
	ErrGridShape = errors.New("sim: grid shape mismatch")
	// ErrNoWalkableCells is returned for a grid agents cannot stand on.
	ErrNoWalkableCells = errors.New("sim: grid has no walkable cells")
)

// NewGrid builds a grid of cols×rows cells from a row-major blocked mask.
// The walkable cell list used for spawn sampling is computed once here.
func NewGrid(cols, rows int, tileSize float64, blocked []bool) (*Grid, error) {
	if cols <= 0 || rows <= 0 || len(blocked) != cols*rows {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrGridShape, cols, rows, len(blocked))
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %.2f", ErrGridShape, tileSize)
	}
	g := &Grid{
		cols:    cols,
		rows:    rows,
		tile:    tileSize,
		blocked: append([]bool(nil), blocked...),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if !g.blocked[row*cols+col] {
				g.walkable = append(g.walkable, Cell{Col: col, Row: row})
			}
		}
	}
	if len(g.walkable) == 0 {
		return nil, ErrNoWalkableCells
	}
	return g, nil
}

// GridFromRows builds a grid from rows of blocked flags (true = wall).
func GridFromRows(rows [][]bool, tileSize float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrGridShape)
	}
	cols := len(rows[0])
	mask := make([]bool, 0, cols*len(rows))
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGridShape, i, len(r), cols)
		}
		mask = append(mask, r...)
	}
	return NewGrid(cols, len(rows), tileSize, mask)
}

// OpenGrid returns a wall-free grid.
func OpenGrid(cols, rows int, tileSize float64) (*Grid, error) {
	return NewGrid(cols, rows, tileSize, make([]bool, cols*rows))
}

func (g *Grid) Cols() int          { return g.cols }
func (g *Grid) Rows() int          { return g.rows }
func (g *Grid) TileSize() float64  { return g.tile }
func (g *Grid) WalkableCount() int { return len(g.walkable) }

// IsBlocked returns true if the cell at (col, row) is not walkable.
// Out-of-bounds cells are blocked.
func (g *Grid) IsBlocked(col, row int) bool {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return true
	}
	return g.blocked[row*g.cols+col]
}

// IsWalkable is the negation of IsBlocked.
func (g *Grid) IsWalkable(col, row int) bool {
	return !g.IsBlocked(col, row)
}

// SampleWalkable picks a walkable cell uniformly at random in O(1).
func (g *Grid) SampleWalkable(rng *rand.Rand) Cell {
	return g.walkable[rng.Intn(len(g.walkable))]
}

// Walkable returns a copy of the walkable cell list.
func (g *Grid) Walkable() []Cell {
	return append([]Cell(nil), g.walkable...)
}

// WorldToCell converts world coordinates to the containing cell. Negative
// coordinates floor to negative cells, which are out of bounds.
func (g *Grid) WorldToCell(x, y float64) Cell {
	return Cell{Col: int(math.Floor(x / g.tile)), Row: int(math.Floor(y / g.tile))}
}

// CellOrigin returns the world coordinates of the cell's top-left corner.
func (g *Grid) CellOrigin(c Cell) (float64, float64) {
	return float64(c.Col) * g.tile, float64(c.Row) * g.tile
}

// CellCenter returns the world coordinates of the cell's center.
func (g *Grid) CellCenter(c Cell) (float64, float64) {
	x, y := g.CellOrigin(c)
	return x + g.tile/2, y + g.tile/2
}

// WorldSize returns the grid extent in world units.
func (g *Grid) WorldSize() (float64, float64) {
	return float64(g.cols) * g.tile, float64(g.rows) * g.tile
}
