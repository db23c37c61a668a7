package sim

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGrid_OOB_IsBlocked(t *testing.T) {
	g := openGrid(t, 4, 3)
	for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		if !g.IsBlocked(c.Col, c.Row) {
			t.Fatalf("out-of-bounds cell %v should be blocked", c)
		}
		if g.IsWalkable(c.Col, c.Row) {
			t.Fatalf("out-of-bounds cell %v should not be walkable", c)
		}
	}
	if g.IsBlocked(3, 2) {
		t.Fatal("corner cell should not be blocked")
	}
}

func TestGrid_FromRows(t *testing.T) {
	g := gridFrom(t,
		"..#",
		"#..",
	)
	if g.Cols() != 3 || g.Rows() != 2 {
		t.Fatalf("expected 3x2 got %dx%d", g.Cols(), g.Rows())
	}
	if !g.IsBlocked(2, 0) || !g.IsBlocked(0, 1) {
		t.Fatal("wall cells should be blocked")
	}
	if g.WalkableCount() != 4 {
		t.Fatalf("expected 4 walkable cells got %d", g.WalkableCount())
	}
}

func TestGrid_RaggedRowsRejected(t *testing.T) {
	_, err := GridFromRows([][]bool{{false, false}, {false}}, testTile)
	if !errors.Is(err, ErrGridShape) {
		t.Fatalf("expected ErrGridShape got %v", err)
	}
}

func TestGrid_AllBlockedRejected(t *testing.T) {
	_, err := NewGrid(2, 1, testTile, []bool{true, true})
	if !errors.Is(err, ErrNoWalkableCells) {
		t.Fatalf("expected ErrNoWalkableCells got %v", err)
	}
}

func TestGrid_SampleWalkable_NearlyFull(t *testing.T) {
	// One open cell in a 40x40 block of walls: sampling must still terminate
	// immediately and always return that cell.
	mask := make([]bool, 40*40)
	for i := range mask {
		mask[i] = true
	}
	mask[17*40+23] = false
	g, err := NewGrid(40, 40, testTile, mask)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test
	for i := 0; i < 100; i++ {
		if c := g.SampleWalkable(rng); c != (Cell{23, 17}) {
			t.Fatalf("expected (23,17) got %v", c)
		}
	}
}

func TestGrid_SampleWalkable_Uniform(t *testing.T) {
	g := gridFrom(t,
		".#.",
		"...",
	)
	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test
	counts := map[Cell]int{}
	const n = 5000
	for i := 0; i < n; i++ {
		c := g.SampleWalkable(rng)
		if !g.IsWalkable(c.Col, c.Row) {
			t.Fatalf("sampled blocked cell %v", c)
		}
		counts[c]++
	}
	if len(counts) != 5 {
		t.Fatalf("expected all 5 walkable cells sampled, got %d", len(counts))
	}
	for c, k := range counts {
		if k < n/5/2 {
			t.Fatalf("cell %v sampled only %d times", c, k)
		}
	}
}

func TestGrid_WorldToCell(t *testing.T) {
	g := openGrid(t, 4, 4)
	tests := []struct {
		x, y float64
		want Cell
	}{
		{0, 0, Cell{0, 0}},
		{49.9, 49.9, Cell{0, 0}},
		{50, 0, Cell{1, 0}},
		{120, 199, Cell{2, 3}},
		{-0.5, 10, Cell{-1, 0}},
	}
	for _, tt := range tests {
		if got := g.WorldToCell(tt.x, tt.y); got != tt.want {
			t.Fatalf("WorldToCell(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if x, y := g.CellCenter(Cell{1, 2}); x != 75 || y != 125 {
		t.Fatalf("CellCenter(1,2) = (%v,%v)", x, y)
	}
	if w, h := g.WorldSize(); w != 200 || h != 200 {
		t.Fatalf("WorldSize = (%v,%v)", w, h)
	}
}
