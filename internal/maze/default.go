package maze

import "github.com/Garsondee/Maze-Combat/internal/sim"

// DefaultLayout is the built-in 24x18 arena. Every floor cell is reachable
// from every other.
const DefaultLayout = `
########################
#......#.........#.....#
#.####.#.#####.#.#.###.#
#.#....#.....#.#...#...#
#.#.######.#.#.#####.#.#
#...#......#.#.......#.#
###.#.######.#######.#.#
#...#.#..........#...#.#
#.###.#.###..###.#.###.#
#.....#.#......#.#.....#
#.#####.#......#.#####.#
#.#.....###..###.....#.#
#.#.###...........##.#.#
#...#...#####.###....#.#
#.###.#.....#...#.####.#
#.....#####.###.#......#
#.........#.....#.####.#
########################
`

// DefaultGrid parses DefaultLayout.
func DefaultGrid(tileSize float64) (*sim.Grid, error) {
	return ParseGrid(DefaultLayout, tileSize)
}
