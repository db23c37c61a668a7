package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

const (
	logPanelWidth = 320
	logLineHeight = 14
	logLineChars  = 43
	logHighlight  = 3 // newest entries drawn on a lit row
)

// categoryColors tints the marker dot of each log line.
var categoryColors = map[string]color.RGBA{
	sim.CatCombat:  {R: 220, G: 80, B: 70, A: 255},
	sim.CatWeapon:  {R: 240, G: 190, B: 60, A: 255},
	sim.CatNav:     {R: 80, G: 150, B: 220, A: 255},
	sim.CatMove:    {R: 110, G: 110, B: 110, A: 255},
	sim.CatSession: {R: 120, G: 220, B: 120, A: 255},
	sim.CatFault:   {R: 255, G: 60, B: 200, A: 255},
}

// logLine is one rendered row of the combat log.
type logLine struct {
	text string
	dot  color.RGBA
}

// panelLines returns the newest entries that fit in rows, oldest first.
func panelLines(log *sim.SimLog, rows int) []logLine {
	entries := log.Entries()
	if rows <= 0 {
		return nil
	}
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}
	out := make([]logLine, 0, len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%4d %-3s %s", e.Tick, e.Actor, e.Key)
		if e.Value != "" {
			line += " " + e.Value
		}
		if len(line) > logLineChars {
			line = line[:logLineChars-1] + "~"
		}
		out = append(out, logLine{text: line, dot: categoryColors[e.Category]})
	}
	return out
}

// drawLogPanel renders the session log on the right side of the window.
func (g *Game) drawLogPanel(screen *ebiten.Image, panelX, panelH int) {
	px, ph := float32(panelX), float32(panelH)
	vector.FillRect(screen, px, 0, logPanelWidth, ph, color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, ph, 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, px, 0, logPanelWidth, 18, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	g.drawText(screen, "COMBAT LOG", panelX+8, 2, color.White)
	vector.StrokeLine(screen, px, 18, px+logPanelWidth, 18, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	lines := panelLines(g.session.Log(), (panelH-24)/logLineHeight)
	y := 22
	for i, l := range lines {
		if i >= len(lines)-logHighlight {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 36, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, l.dot, false)
		g.drawText(screen, l.text, panelX+12, y, color.RGBA{R: 200, G: 205, B: 210, A: 255})
		y += logLineHeight
	}
}
