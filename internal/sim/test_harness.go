package sim

import (
	"fmt"
	"strings"
)

// TestSim is a headless harness around a Session used by tests and the
// headless report. Script, when set, supplies the intent for each tick;
// otherwise the session's own input provider is polled.
type TestSim struct {
	*Session
	Script func(tick int) Intent
	// Results holds every tick result, in order.
	Results []TickResult
	err     error
}

// NewTestSim wraps an existing session.
func NewTestSim(s *Session) *TestSim {
	return &TestSim{Session: s}
}

func (ts *TestSim) step() (TickResult, error) {
	if ts.Script != nil {
		return ts.Step(ts.Script(ts.Ticks() + 1))
	}
	return ts.Tick()
}

// RunTicks advances up to n ticks and stops early when the session ends.
// It returns the number of ticks actually run.
func (ts *TestSim) RunTicks(n int) int {
	for i := 0; i < n; i++ {
		res, err := ts.step()
		if err != nil {
			ts.err = err
			return i
		}
		ts.Results = append(ts.Results, res)
		if res.Over {
			return i + 1
		}
	}
	return n
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		res, err := ts.step()
		if err != nil {
			ts.err = err
			return -1
		}
		ts.Results = append(ts.Results, res)
		if predicate(ts) {
			return ts.Ticks()
		}
	}
	return -1
}

// Err returns the error that stopped the last run, if any.
func (ts *TestSim) Err() error { return ts.err }

// EventTicks returns the ticks on which the named event was emitted.
func (ts *TestSim) EventTicks(name EventName) []int {
	var out []int
	for _, r := range ts.Results {
		for _, ev := range r.Events {
			if ev.Name == name {
				out = append(out, r.Tick)
				break
			}
		}
	}
	return out
}

// Summary returns a short human-readable state dump.
func (ts *TestSim) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", ts.Ticks())
	p := ts.Player()
	fmt.Fprintf(&sb, "Player: (%.1f,%.1f) cell=%v hp=%d weapon=%s\n",
		p.X, p.Y, p.Cell(ts.Grid()), p.Health, p.Weapon.Name)
	for _, e := range ts.Enemies() {
		fmt.Fprintf(&sb, "E%d: (%.1f,%.1f) cell=%v hp=%d %s path=%d\n",
			e.ID, e.X, e.Y, e.Cell(ts.Grid()), e.Health, e.State(), len(e.Path))
	}
	fmt.Fprintf(&sb, "Projectiles: %d  kills: %d\n", len(ts.Projectiles()), ts.Kills())
	return sb.String()
}
