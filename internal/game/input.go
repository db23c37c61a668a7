package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Maze-Combat/internal/sim"
)

// camera is the world position of the viewport's top-left corner.
type camera struct {
	x, y float64
}

// cameraOn centres a viewW x viewH viewport on (cx, cy).
func cameraOn(cx, cy float64, viewW, viewH int) camera {
	return camera{x: cx - float64(viewW)/2, y: cy - float64(viewH)/2}
}

func (c camera) toWorld(sx, sy int) (float64, float64) {
	return float64(sx) + c.x, float64(sy) + c.y
}

func (c camera) toScreen(wx, wy float64) (float32, float32) {
	return float32(wx - c.x), float32(wy - c.y)
}

// keyState reports whether a key is held. It is ebiten.IsKeyPressed in the
// running game and a map lookup in tests.
type keyState func(ebiten.Key) bool

// heldKeys maps WASD and the arrow keys to movement directions.
func heldKeys(pressed keyState) sim.HeldKeys {
	anyOf := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return sim.HeldKeys{
		Up:    anyOf(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  anyOf(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  anyOf(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: anyOf(ebiten.KeyD, ebiten.KeyArrowRight),
	}
}

// pointerState is one frame of mouse input in screen coordinates.
type pointerState struct {
	x, y              int
	pressed, released bool
}

// buildIntent combines keys and the mouse into one tick of player input.
// The pointer is converted to world coordinates through the camera.
func buildIntent(pressed keyState, ptr pointerState, cam camera) sim.Intent {
	wx, wy := cam.toWorld(ptr.x, ptr.y)
	return sim.Intent{
		Keys:         heldKeys(pressed),
		PointerX:     wx,
		PointerY:     wy,
		FirePressed:  ptr.pressed,
		FireReleased: ptr.released,
	}
}
