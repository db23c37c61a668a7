// Package maze turns text layouts, YAML map files and generated mazes into
// simulation grids.
package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// Layout characters.
const (
	WallChar  = '#'
	FloorChar = '.'
)

// ErrBadLayout is wrapped by every layout parse failure.
var ErrBadLayout = errors.New("maze: bad layout")

// Parse reads one row per line. '#' and '1' are walls; '.', '0' and space
// are floor. Blank lines at the start and end are ignored; rows must all
// have the same width.
func Parse(r io.Reader) ([][]bool, error) {
	var rows [][]bool
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" && len(rows) == 0 {
			continue
		}
		row := make([]bool, 0, len(text))
		for col, ch := range text {
			switch ch {
			case WallChar, '1':
				row = append(row, true)
			case FloorChar, '0', ' ':
				row = append(row, false)
			default:
				return nil, fmt.Errorf("%w: line %d col %d: unexpected %q", ErrBadLayout, line, col+1, ch)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("maze: read layout: %w", err)
	}
	// Trailing blank rows.
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadLayout)
	}
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: row %d is %d wide, want %d", ErrBadLayout, i+1, len(row), len(rows[0]))
		}
	}
	return rows, nil
}

// ParseGrid parses a layout string straight into a grid.
func ParseGrid(layout string, tileSize float64) (*sim.Grid, error) {
	rows, err := Parse(strings.NewReader(layout))
	if err != nil {
		return nil, err
	}
	return sim.GridFromRows(rows, tileSize)
}

// Format renders a grid back to layout text.
func Format(g *sim.Grid) string {
	var sb strings.Builder
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if g.IsBlocked(col, row) {
				sb.WriteByte(WallChar)
			} else {
				sb.WriteByte(FloorChar)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
