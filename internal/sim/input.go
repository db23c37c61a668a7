package sim

// Intent is everything the player asked for during one tick.
type Intent struct {
	Keys HeldKeys
	// PointerX/PointerY is the aim point in world coordinates.
	PointerX, PointerY float64
	// FirePressed and FireReleased are edges, not levels.
	FirePressed  bool
	FireReleased bool
}

// InputProvider is polled once at the start of every tick.
type InputProvider interface {
	Poll() Intent
}

// InputFunc adapts a function to InputProvider.
type InputFunc func() Intent

func (f InputFunc) Poll() Intent { return f() }

// Clock supplies the simulated time used for every cooldown comparison.
type Clock interface {
	Seconds() float64
}

// TickClock derives time from a tick counter at a fixed rate.
type TickClock struct {
	tps   int
	ticks int
}

// NewTickClock returns a clock at tick zero.
func NewTickClock(tps int) *TickClock {
	return &TickClock{tps: tps}
}

// Advance moves the clock forward by one tick.
func (c *TickClock) Advance() { c.ticks++ }

// Ticks returns the number of ticks elapsed.
func (c *TickClock) Ticks() int { return c.ticks }

func (c *TickClock) Seconds() float64 {
	return float64(c.ticks) / float64(c.tps)
}
