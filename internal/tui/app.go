// Package tui is the terminal front end. It draws the maze with one
// terminal cell per tile, aims with the mouse and runs the session from a
// fixed-rate ticker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

const statusTicks = 120

// Config wires an App to its collaborators. Only Loader is required.
type Config struct {
	Rules  config.Rules
	Loader sim.MapLoader
	Seed   int64
	// Audio receives sound events; nil plays nothing.
	Audio     sim.AudioPlayer
	Logger    *slog.Logger
	Clipboard func(string) error
	// Options are appended to every session the app starts.
	Options []sim.Option
}

// App runs sessions on a tcell screen. It is the session's input provider
// and frame sink.
type App struct {
	screen  tcell.Screen
	cfg     Config
	logger  *slog.Logger
	session *sim.Session
	runs    int

	keys    keyTracker
	fire    trigger
	ptrX    int
	ptrY    int
	pointer bool // a mouse position has been seen

	view       view
	status     string
	statusLeft int
}

// New starts the first session on an initialised screen.
func New(screen tcell.Screen, cfg Config) (*App, error) {
	if cfg.Loader == nil {
		return nil, errors.New("tui: no map loader")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}
	screen.EnableMouse()
	screen.HideCursor()
	a := &App{screen: screen, cfg: cfg, logger: cfg.Logger}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) restart() error {
	grid, err := a.cfg.Loader.LoadGrid()
	if err != nil {
		return fmt.Errorf("tui: load map: %w", err)
	}
	rules := a.cfg.Rules
	rules.TileSize = grid.TileSize()

	opts := []sim.Option{
		sim.WithSeed(a.cfg.Seed + int64(a.runs)),
		sim.WithLogger(a.logger),
		sim.WithInput(a),
		sim.WithFrameSink(a),
	}
	if a.cfg.Audio != nil {
		opts = append(opts, sim.WithAudio(a.cfg.Audio))
	}
	opts = append(opts, a.cfg.Options...)

	s, err := sim.NewSession(rules, grid, opts...)
	if err != nil {
		return fmt.Errorf("tui: new session: %w", err)
	}
	a.session = s
	a.runs++
	a.keys.reset()
	a.fire = trigger{}
	a.logger.Info("session started", "id", s.ID(), "run", a.runs)
	a.redraw()
	return nil
}

// Session returns the running session.
func (a *App) Session() *sim.Session { return a.session }

// Poll implements sim.InputProvider.
func (a *App) Poll() sim.Intent {
	p := a.session.Player()
	in := sim.Intent{Keys: a.keys.tick(), PointerX: p.AimX, PointerY: p.AimY}
	if a.pointer {
		in.PointerX, in.PointerY = a.session.Grid().CellCenter(a.view.toCell(a.ptrX, a.ptrY))
	}
	in.FirePressed, in.FireReleased = a.fire.take()
	return in
}

// Present implements sim.FrameSink.
func (a *App) Present(f sim.Frame) error {
	a.draw(f)
	a.screen.Show()
	return nil
}

func (a *App) redraw() {
	_ = a.Present(a.session.Snapshot())
}

// handleEvent applies one terminal event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return true, nil
		}
		if a.session.Over() {
			return false, a.handleGameOverKey(ev)
		}
		if d, ok := keyDirection(ev); ok {
			a.keys.press(d)
		} else if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			a.fire.tap()
		}
	case *tcell.EventMouse:
		a.ptrX, a.ptrY = ev.Position()
		a.pointer = true
		if !a.session.Over() {
			a.fire.button(ev.Buttons()&tcell.Button1 != 0)
		}
	case *tcell.EventResize:
		a.screen.Sync()
		a.redraw()
	}
	return false, nil
}

func (a *App) handleGameOverKey(ev *tcell.EventKey) error {
	if ev.Key() != tcell.KeyRune {
		return nil
	}
	switch ev.Rune() {
	case 'r', 'R':
		return a.restart()
	case 'c', 'C':
		if err := a.cfg.Clipboard(a.session.Report()); err != nil {
			a.logger.Warn("copy report failed", "err", err)
			a.setStatus("copy failed: " + err.Error())
		} else {
			a.setStatus("report copied to clipboard")
		}
	}
	return nil
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusLeft = statusTicks
	a.redraw()
}

// step runs one tick. Once the session is over it only ages the status
// line.
func (a *App) step() error {
	if a.statusLeft > 0 {
		a.statusLeft--
		if a.statusLeft == 0 {
			a.redraw()
		}
	}
	if a.session.Over() {
		return nil
	}
	if _, err := a.session.Tick(); err != nil && !errors.Is(err, sim.ErrSessionOver) {
		return err
	}
	return nil
}

// Run drives the app until the user quits, the screen is finalised or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(tickInterval(a.session.Rules()))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := a.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			if err := a.step(); err != nil {
				return err
			}
		}
	}
}

// tickInterval is the wall-clock period of one simulation tick.
func tickInterval(r config.Rules) time.Duration {
	return time.Duration(r.TickSeconds() * float64(time.Second))
}
