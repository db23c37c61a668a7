package sim

import (
	"testing"

	"github.com/Garsondee/Maze-Combat/internal/config"
)

const testTile = 50.0

// gridFrom builds a grid from layout rows; '#' is a wall.
func gridFrom(t testing.TB, rows ...string) *Grid {
	t.Helper()
	mask := make([][]bool, len(rows))
	for r, line := range rows {
		mask[r] = make([]bool, len(line))
		for c, ch := range line {
			mask[r][c] = ch == '#'
		}
	}
	g, err := GridFromRows(mask, testTile)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func openGrid(t testing.TB, cols, rows int) *Grid {
	t.Helper()
	g, err := OpenGrid(cols, rows, testTile)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

// manualClock is a Clock the test moves by hand.
type manualClock struct{ now float64 }

func (c *manualClock) Seconds() float64 { return c.now }

func newTestSession(t testing.TB, rules config.Rules, g *Grid, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(rules, g, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func mustStep(t testing.TB, s *Session, in Intent) TickResult {
	t.Helper()
	res, err := s.Step(in)
	if err != nil {
		t.Fatalf("tick %d: %v", s.Ticks(), err)
	}
	return res
}

func hasEvent(res TickResult, name EventName) bool {
	for _, ev := range res.Events {
		if ev.Name == name {
			return true
		}
	}
	return false
}

func dumpLog(t *testing.T, s *Session) {
	t.Helper()
	entries := s.Log().Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}
