// Package game is the desktop front end: it feeds keyboard and mouse input
// into a sim.Session at the fixed tick rate and draws each frame with
// ebiten.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	statusTicks   = 180
)

var (
	colBackground = color.RGBA{R: 8, G: 9, B: 12, A: 255}
	colFloor      = color.RGBA{R: 34, G: 36, B: 44, A: 255}
	colWall       = color.RGBA{R: 92, G: 96, B: 110, A: 255}
	colWallEdge   = color.RGBA{R: 120, G: 126, B: 142, A: 255}
	colPlayer     = color.RGBA{R: 70, G: 200, B: 110, A: 255}
	colEnemy      = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	colShotPlayer = color.RGBA{R: 120, G: 240, B: 255, A: 255}
	colShotEnemy  = color.RGBA{R: 255, G: 170, B: 60, A: 255}
	colPipFull    = color.RGBA{R: 90, G: 220, B: 90, A: 255}
	colPipEmpty   = color.RGBA{R: 60, G: 30, B: 30, A: 255}
)

// Config wires a Game to its collaborators. Only Loader is required.
type Config struct {
	Rules  config.Rules
	Loader sim.MapLoader
	Seed   int64
	// Audio receives sound events; nil plays nothing.
	Audio  sim.AudioPlayer
	Logger *slog.Logger
	// Clipboard copies the session report; defaults to the system clipboard.
	Clipboard func(string) error
	// Options are appended to every session the game starts.
	Options []sim.Option

	Width, Height int
}

// Game implements ebiten.Game around one session at a time. Restarting
// loads the map again and starts a new session with the next seed.
type Game struct {
	cfg     Config
	logger  *slog.Logger
	session *sim.Session
	result  *sim.Result
	runs    int

	width, height int
	cam           camera
	face          *text.GoXFace

	status      string
	statusTicks int
}

// New starts the first session.
func New(cfg Config) (*Game, error) {
	if cfg.Loader == nil {
		return nil, errors.New("game: no map loader")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}
	g := &Game{
		cfg:    cfg,
		logger: cfg.Logger,
		width:  cfg.Width,
		height: cfg.Height,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) restart() error {
	grid, err := g.cfg.Loader.LoadGrid()
	if err != nil {
		return fmt.Errorf("game: load map: %w", err)
	}
	rules := g.cfg.Rules
	rules.TileSize = grid.TileSize()

	opts := []sim.Option{
		sim.WithSeed(g.cfg.Seed + int64(g.runs)),
		sim.WithLogger(g.logger),
		sim.WithController(sim.ControllerFunc(func(r sim.Result) { g.result = &r })),
	}
	if g.cfg.Audio != nil {
		opts = append(opts, sim.WithAudio(g.cfg.Audio))
	}
	opts = append(opts, g.cfg.Options...)

	s, err := sim.NewSession(rules, grid, opts...)
	if err != nil {
		return fmt.Errorf("game: new session: %w", err)
	}
	g.session = s
	g.result = nil
	g.runs++
	g.follow()
	g.logger.Info("session started", "id", s.ID(), "run", g.runs,
		"grid", fmt.Sprintf("%dx%d", grid.Cols(), grid.Rows()))
	return nil
}

// Session returns the running session.
func (g *Game) Session() *sim.Session { return g.session }

func (g *Game) viewSize() (int, int) {
	return g.width - logPanelWidth, g.height
}

// follow centres the camera on the player.
func (g *Game) follow() {
	vw, vh := g.viewSize()
	cx, cy := g.session.Player().Center()
	g.cam = cameraOn(cx, cy, vw, vh)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	if g.session.Over() {
		return g.updateGameOver(inpututil.IsKeyJustPressed)
	}

	x, y := ebiten.CursorPosition()
	ptr := pointerState{
		x: x, y: y,
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	return g.advance(buildIntent(ebiten.IsKeyPressed, ptr, g.cam))
}

// advance steps the session once and moves the camera.
func (g *Game) advance(in sim.Intent) error {
	if _, err := g.session.Step(in); err != nil && !errors.Is(err, sim.ErrSessionOver) {
		return err
	}
	g.follow()
	return nil
}

// updateGameOver handles the restart and copy keys on the game-over screen.
func (g *Game) updateGameOver(justPressed keyState) error {
	switch {
	case justPressed(ebiten.KeyR):
		return g.restart()
	case justPressed(ebiten.KeyC):
		if err := g.cfg.Clipboard(g.session.Report()); err != nil {
			g.logger.Warn("copy report failed", "err", err)
			g.setStatus("copy failed: " + err.Error())
		} else {
			g.setStatus("report copied to clipboard")
		}
	}
	return nil
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = statusTicks
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	f := g.session.Snapshot()

	g.drawGrid(screen)
	for _, p := range f.Projectiles {
		g.drawProjectile(screen, p)
	}
	for _, e := range f.Enemies {
		g.drawAgent(screen, e, colEnemy)
	}
	g.drawAgent(screen, f.Player, colPlayer)

	g.drawHUD(screen, f)
	vw, _ := g.viewSize()
	g.drawLogPanel(screen, vw, g.height)
	if f.Over {
		g.drawGameOver(screen, f)
	}
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	grid := g.session.Grid()
	ts := grid.TileSize()
	vw, vh := g.viewSize()

	c0 := grid.WorldToCell(g.cam.x, g.cam.y)
	c1 := grid.WorldToCell(g.cam.x+float64(vw), g.cam.y+float64(vh))
	for row := max(c0.Row, 0); row <= min(c1.Row, grid.Rows()-1); row++ {
		for col := max(c0.Col, 0); col <= min(c1.Col, grid.Cols()-1); col++ {
			wx, wy := grid.CellOrigin(sim.Cell{Col: col, Row: row})
			sx, sy := g.cam.toScreen(wx, wy)
			if grid.IsBlocked(col, row) {
				vector.FillRect(screen, sx, sy, float32(ts), float32(ts), colWall, false)
				vector.StrokeRect(screen, sx+0.5, sy+0.5, float32(ts)-1, float32(ts)-1, 1, colWallEdge, false)
				continue
			}
			vector.FillRect(screen, sx, sy, float32(ts), float32(ts), colFloor, false)
		}
	}
}

func (g *Game) drawAgent(screen *ebiten.Image, a sim.AgentView, body color.RGBA) {
	sx, sy := g.cam.toScreen(a.X, a.Y)
	size := float32(a.Size)
	vector.FillRect(screen, sx, sy, size, size, body, false)

	// Facing line from the centre.
	cx, cy := sx+size/2, sy+size/2
	reach := size * 0.75
	vector.StrokeLine(screen, cx, cy, cx+float32(a.FaceX)*reach, cy+float32(a.FaceY)*reach, 3, color.White, true)

	drawPips(screen, sx, sy-8, size, a.Health, a.MaxHealth)
}

// drawPips draws one pip per health point across width, starting at (x, y).
func drawPips(screen *ebiten.Image, x, y, width float32, health, maxHealth int) {
	if maxHealth <= 0 {
		return
	}
	gap := float32(2)
	pip := (width - gap*float32(maxHealth-1)) / float32(maxHealth)
	if pip < 2 {
		pip = 2
	}
	for i := 0; i < maxHealth; i++ {
		c := colPipEmpty
		if i < health {
			c = colPipFull
		}
		vector.FillRect(screen, x+float32(i)*(pip+gap), y, pip, 4, c, false)
	}
}

func (g *Game) drawProjectile(screen *ebiten.Image, p sim.ProjectileView) {
	c := colShotPlayer
	if p.Owner == sim.OwnerEnemy {
		c = colShotEnemy
	}
	half := g.session.Rules().ProjectileSize / 2
	sx, sy := g.cam.toScreen(p.X, p.Y)
	tail := float32(half * 1.5)
	vector.StrokeLine(screen, sx, sy, sx-float32(p.DirX)*tail, sy-float32(p.DirY)*tail, 2, c, true)
	vector.FillCircle(screen, sx, sy, float32(half)/2, c, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, f sim.Frame) {
	lines := []string{
		fmt.Sprintf("KILLS  %d", f.Kills),
		fmt.Sprintf("WEAPON %s", weaponLabel(f.Weapon)),
		fmt.Sprintf("TIME   %.1fs", f.Seconds),
	}
	vector.FillRect(screen, 8, 8, 190, float32(len(lines)*16+26), color.RGBA{R: 6, G: 8, B: 12, A: 200}, false)
	for i, l := range lines {
		g.drawText(screen, l, 14, 12+i*16, color.White)
	}
	drawPips(screen, 14, float32(14+len(lines)*16), 176, f.Player.Health, f.Player.MaxHealth)

	if g.statusTicks > 0 {
		_, vh := g.viewSize()
		g.drawText(screen, g.status, 14, vh-24, color.RGBA{R: 240, G: 220, B: 120, A: 255})
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image, f sim.Frame) {
	vw, vh := g.viewSize()
	vector.FillRect(screen, 0, 0, float32(vw), float32(vh), color.RGBA{A: 170}, false)
	lines := []string{
		"YOU DIED",
		fmt.Sprintf("kills %d   survived %.1fs", f.Kills, f.Seconds),
		"",
		"R restart   C copy report   Esc quit",
	}
	for i, l := range lines {
		x := vw/2 - len(l)*7/2
		g.drawText(screen, l, x, vh/2-40+i*18, color.White)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

// weaponLabel turns "mini_gun" into "MINI GUN".
func weaponLabel(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "_", " "))
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Result returns the outcome of the last finished session, or nil.
func (g *Game) Result() *sim.Result { return g.result }

