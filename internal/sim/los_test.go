package sim

import "testing"

func TestLOS_ClearInOpenGrid(t *testing.T) {
	g := openGrid(t, 6, 6)
	if !HasLineOfSight(g, 25, 25, 275, 275, 10) {
		t.Fatal("open grid should have line of sight")
	}
}

func TestLOS_BlockedByCellBetween(t *testing.T) {
	g := gridFrom(t,
		".....",
		".....",
		"..#..",
	)
	if HasLineOfSight(g, 25, 125, 225, 125, 10) {
		t.Fatal("wall between the points should block the line")
	}
	// Same endpoints shifted so the line passes above the wall.
	if !HasLineOfSight(g, 25, 125, 225, 25, 10) {
		t.Fatal("line passing above the wall should be clear")
	}
}

func TestLOS_ShortSegment(t *testing.T) {
	g := gridFrom(t, ".#")
	// Shorter than one step: no samples are taken.
	if !HasLineOfSight(g, 10, 10, 15, 10, 10) {
		t.Fatal("segment shorter than the step takes no samples")
	}
	if HasLineOfSight(g, 25, 25, 75, 25, 10) {
		t.Fatal("end point inside a wall should block")
	}
}
