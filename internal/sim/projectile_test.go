package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestSpawnProjectile_ZeroDirectionRejected(t *testing.T) {
	p, err := SpawnProjectile(10, 10, 10, 10, 10, OwnerPlayer)
	if !errors.Is(err, ErrZeroDirection) {
		t.Fatalf("expected ErrZeroDirection got %v", err)
	}
	if p != nil {
		t.Fatal("no projectile should be created")
	}
}

func TestSpawnProjectile_UnitDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test
	for i := 0; i < 1000; i++ {
		fx, fy := rng.Float64()*1000, rng.Float64()*1000
		tx, ty := rng.Float64()*1000, rng.Float64()*1000
		p, err := SpawnProjectile(fx, fy, tx, ty, 10, OwnerEnemy)
		if err != nil {
			t.Fatalf("spawn %d: %v", i, err)
		}
		dx, dy := p.Direction()
		if l := math.Hypot(dx, dy); math.Abs(l-1) > 1e-9 {
			t.Fatalf("spawn %d: direction magnitude %v", i, l)
		}
		if s := math.Hypot(p.VX, p.VY); math.Abs(s-10) > 1e-9 {
			t.Fatalf("spawn %d: speed %v", i, s)
		}
	}
}

func TestProjectile_AdvanceOpen(t *testing.T) {
	g := openGrid(t, 5, 1)
	p, _ := SpawnProjectile(25, 25, 225, 25, 10, OwnerPlayer)
	if !p.Advance(g) {
		t.Fatal("advance in open space should succeed")
	}
	if p.X != 35 || p.Y != 25 {
		t.Fatalf("expected (35,25) got (%v,%v)", p.X, p.Y)
	}
}

func TestProjectile_TerrainStopsBeforeWall(t *testing.T) {
	g := gridFrom(t, "..#")
	p, _ := SpawnProjectile(95, 25, 200, 25, 10, OwnerPlayer)
	if p.Advance(g) {
		t.Fatal("next position lies in the wall; advance should fail")
	}
	if p.Alive {
		t.Fatal("projectile should be retired on terrain hit")
	}
	if p.X != 95 {
		t.Fatalf("projectile should not enter the wall, x=%v", p.X)
	}
	if p.Advance(g) {
		t.Fatal("dead projectile must not advance")
	}
}

func TestProjectile_LeavesMap(t *testing.T) {
	g := openGrid(t, 2, 1)
	p, _ := SpawnProjectile(95, 25, 200, 25, 10, OwnerPlayer)
	if p.Advance(g) {
		t.Fatal("leaving the grid counts as hitting terrain")
	}
}

func TestProjectile_HitsSquareProximity(t *testing.T) {
	a := &Agent{X: 100, Y: 100, Size: 40} // center (120,120)
	tests := []struct {
		x, y float64
		hit  bool
	}{
		{120, 120, true},
		{144.9, 144.9, true}, // corner of the square: a circle test would miss
		{145, 120, false},
		{120, 95, false},
		{96, 130, true},
	}
	for _, tt := range tests {
		p := &Projectile{X: tt.x, Y: tt.y, Alive: true}
		if got := p.Hits(a, 25); got != tt.hit {
			t.Fatalf("Hits at (%v,%v) = %v, want %v", tt.x, tt.y, got, tt.hit)
		}
	}
}
