package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// holdTicks is how long one key event keeps a direction held. Terminals
// only report presses and auto-repeat, so a direction stays held until the
// repeats stop arriving.
const holdTicks = 20

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
	dirCount
)

var opposite = [dirCount]direction{dirDown, dirUp, dirRight, dirLeft}

// keyTracker emulates held keys from press events.
type keyTracker struct {
	left [dirCount]int // ticks until release
}

func (k *keyTracker) press(d direction) {
	k.left[d] = holdTicks
	k.left[opposite[d]] = 0
}

// tick returns the directions held this tick and ages every hold by one.
func (k *keyTracker) tick() sim.HeldKeys {
	held := sim.HeldKeys{
		Up:    k.left[dirUp] > 0,
		Down:  k.left[dirDown] > 0,
		Left:  k.left[dirLeft] > 0,
		Right: k.left[dirRight] > 0,
	}
	for d := range k.left {
		if k.left[d] > 0 {
			k.left[d]--
		}
	}
	return held
}

func (k *keyTracker) reset() { k.left = [dirCount]int{} }

// keyDirection maps WASD and the arrow keys.
func keyDirection(ev *tcell.EventKey) (direction, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return dirUp, true
	case tcell.KeyDown:
		return dirDown, true
	case tcell.KeyLeft:
		return dirLeft, true
	case tcell.KeyRight:
		return dirRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return dirUp, true
		case 's', 'S':
			return dirDown, true
		case 'a', 'A':
			return dirLeft, true
		case 'd', 'D':
			return dirRight, true
		}
	}
	return 0, false
}

// trigger turns mouse button states and the space key into press and
// release edges for one tick.
type trigger struct {
	down              bool // mouse button currently down
	tapped            bool // space pressed; release on the next tick
	pressed, released bool // edges pending for the next tick
}

func (t *trigger) button(down bool) {
	if down && !t.down {
		t.pressed = true
	}
	if !down && t.down {
		t.released = true
	}
	t.down = down
}

func (t *trigger) tap() {
	if t.down {
		return
	}
	t.pressed = true
	t.tapped = true
}

// take returns and clears the pending edges.
func (t *trigger) take() (pressed, released bool) {
	pressed, released = t.pressed, t.released
	t.pressed, t.released = false, false
	if t.tapped && !pressed {
		t.tapped = false
		released = !t.down
	}
	return pressed, released
}
