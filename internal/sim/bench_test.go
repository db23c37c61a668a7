package sim_test

import (
	"errors"
	"testing"

	"github.com/Garsondee/Maze-Combat/internal/config"
	"github.com/Garsondee/Maze-Combat/internal/maze"
	"github.com/Garsondee/Maze-Combat/internal/sim"
)

func BenchmarkFindPath_DefaultMaze(b *testing.B) {
	g, err := maze.DefaultGrid(50)
	if err != nil {
		b.Fatal(err)
	}
	cells := g.Walkable()
	start, goal := cells[0], cells[len(cells)-1]
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if sim.FindPath(g, start, goal) == nil {
			b.Fatal("default maze corners should be connected")
		}
	}
}

// The player sweeps left and right so every enemy target keeps changing
// and the trees replan on most ticks.
func BenchmarkSessionStep_MovingTarget(b *testing.B) {
	g, err := maze.DefaultGrid(50)
	if err != nil {
		b.Fatal(err)
	}
	rules := config.Default()
	rules.PlayerHealth = 1 << 30
	newSession := func() *sim.Session {
		s, err := sim.NewSession(rules, g, sim.WithSeed(7))
		if err != nil {
			b.Fatal(err)
		}
		return s
	}
	s := newSession()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		left := (i/90)%2 == 0
		in := sim.Intent{Keys: sim.HeldKeys{Left: left, Right: !left}}
		if _, err := s.Step(in); errors.Is(err, sim.ErrSessionOver) {
			s = newSession()
		}
	}
}
