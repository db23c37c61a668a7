package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// statusRows is the number of terminal rows below the map.
const statusRows = 2

const (
	glyphWall       = '█'
	glyphFloor      = '·'
	glyphPlayer     = '@'
	glyphEnemy      = 'E'
	glyphShotPlayer = '*'
	glyphShotEnemy  = '+'
)

var (
	styleBase       = tcell.StyleDefault.Background(tcell.ColorBlack)
	styleWall       = styleBase.Foreground(tcell.NewRGBColor(110, 114, 130))
	styleFloor      = styleBase.Foreground(tcell.NewRGBColor(50, 52, 60))
	stylePlayer     = styleBase.Foreground(tcell.ColorGreen).Bold(true)
	styleEnemy      = styleBase.Foreground(tcell.ColorRed).Bold(true)
	styleEnemyHurt  = styleBase.Foreground(tcell.NewRGBColor(150, 40, 40))
	styleShotPlayer = styleBase.Foreground(tcell.ColorAqua)
	styleShotEnemy  = styleBase.Foreground(tcell.ColorOrange)
	styleStatus     = styleBase.Foreground(tcell.ColorWhite)
	styleHelp       = styleBase.Foreground(tcell.ColorGray)
	styleAlert      = styleBase.Foreground(tcell.ColorYellow).Bold(true)
)

// view is the window of grid cells shown on screen; one terminal cell per
// tile.
type view struct {
	col0, row0 int
	cols, rows int
}

// viewFor fits a w x h map area over the grid, centred on focus and
// clamped to the grid edges.
func viewFor(focus sim.Cell, gridCols, gridRows, w, h int) view {
	v := view{cols: min(w, gridCols), rows: min(h, gridRows)}
	v.col0 = clamp(focus.Col-v.cols/2, 0, gridCols-v.cols)
	v.row0 = clamp(focus.Row-v.rows/2, 0, gridRows-v.rows)
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toScreen returns the terminal position of a grid cell.
func (v view) toScreen(c sim.Cell) (int, int, bool) {
	x, y := c.Col-v.col0, c.Row-v.row0
	return x, y, x >= 0 && y >= 0 && x < v.cols && y < v.rows
}

// toCell returns the grid cell under a terminal position.
func (v view) toCell(x, y int) sim.Cell {
	return sim.Cell{Col: v.col0 + x, Row: v.row0 + y}
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw renders the map, the actors and the status lines of frame f.
func (a *App) draw(f sim.Frame) {
	scr := a.screen
	scr.Clear()
	w, h := scr.Size()
	grid := a.session.Grid()
	a.view = viewFor(grid.WorldToCell(f.Player.X, f.Player.Y), grid.Cols(), grid.Rows(), w, max(h-statusRows, 0))

	for y := 0; y < a.view.rows; y++ {
		for x := 0; x < a.view.cols; x++ {
			c := a.view.toCell(x, y)
			if grid.IsBlocked(c.Col, c.Row) {
				scr.SetContent(x, y, glyphWall, nil, styleWall)
			} else {
				scr.SetContent(x, y, glyphFloor, nil, styleFloor)
			}
		}
	}

	put := func(wx, wy float64, r rune, style tcell.Style) {
		if x, y, ok := a.view.toScreen(grid.WorldToCell(wx, wy)); ok {
			scr.SetContent(x, y, r, nil, style)
		}
	}
	for _, p := range f.Projectiles {
		if p.Owner == sim.OwnerEnemy {
			put(p.X, p.Y, glyphShotEnemy, styleShotEnemy)
		} else {
			put(p.X, p.Y, glyphShotPlayer, styleShotPlayer)
		}
	}
	for _, e := range f.Enemies {
		style := styleEnemy
		if e.Health < e.MaxHealth {
			style = styleEnemyHurt
		}
		put(e.X+e.Size/2, e.Y+e.Size/2, glyphEnemy, style)
	}
	put(f.Player.X+f.Player.Size/2, f.Player.Y+f.Player.Size/2, glyphPlayer, stylePlayer)

	a.drawStatus(f, w, h)
}

func (a *App) drawStatus(f sim.Frame, w, h int) {
	top := h - statusRows
	line := fmt.Sprintf("KILLS %d  %s  HP %s  %.1fs",
		f.Kills, weaponLabel(f.Weapon), healthBar(f.Player.Health, f.Player.MaxHealth), f.Seconds)
	drawString(a.screen, 0, top, clip(line, w), styleStatus)

	switch {
	case a.statusLeft > 0:
		drawString(a.screen, 0, top+1, clip(a.status, w), styleAlert)
	case f.Over:
		drawString(a.screen, 0, top+1, clip("YOU DIED  r restart  c copy report  q quit", w), styleAlert)
	default:
		drawString(a.screen, 0, top+1, clip("wasd/arrows move  mouse or space fire  q quit", w), styleHelp)
	}
}

func healthBar(health, maxHealth int) string {
	health = clamp(health, 0, maxHealth)
	return strings.Repeat("#", health) + strings.Repeat("-", maxHealth-health)
}

func clip(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:max(w, 0)])
	}
	return s
}

// weaponLabel turns "mini_gun" into "MINI GUN".
func weaponLabel(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}
