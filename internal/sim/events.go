package sim

// EventName identifies a sound-worthy occurrence.
type EventName string

const (
	EventPlayerFire          EventName = "player_fire"
	EventEnemyFire           EventName = "enemy_fire"
	EventProjectileImpact    EventName = "projectile_impact" // terrain
	EventProjectileHit       EventName = "projectile_hit"    // actor
	EventEnemyDeath          EventName = "enemy_death"
	EventPlayerContactDamage EventName = "player_contact_damage"
)

// AllEvents lists every event the session can emit.
var AllEvents = []EventName{
	EventPlayerFire,
	EventEnemyFire,
	EventProjectileImpact,
	EventProjectileHit,
	EventEnemyDeath,
	EventPlayerContactDamage,
}

// SoundEvent is one emitted event. Weapon is set for player fire.
type SoundEvent struct {
	Name   EventName
	Weapon string
	X, Y   float64
}

// AudioPlayer receives events at the end of each tick. Implementations
// must not block; an error is reported as a non-fatal tick fault.
type AudioPlayer interface {
	Trigger(ev SoundEvent) error
}

// AudioFunc adapts a function to AudioPlayer.
type AudioFunc func(ev SoundEvent) error

func (f AudioFunc) Trigger(ev SoundEvent) error { return f(ev) }

type nopAudio struct{}

func (nopAudio) Trigger(SoundEvent) error { return nil }

// AgentView is a read-only copy of an agent for rendering.
type AgentView struct {
	ID           int
	X, Y         float64
	Size         float64
	FaceX, FaceY float64
	Health       int
	MaxHealth    int
}

// ProjectileView is a read-only copy of a projectile for rendering.
type ProjectileView struct {
	X, Y       float64
	DirX, DirY float64
	Owner      Owner
}

// Frame is the per-tick snapshot handed to renderers.
type Frame struct {
	Tick        int
	Seconds     float64
	Kills       int
	Weapon      string
	Over        bool
	Player      AgentView
	Enemies     []AgentView
	Projectiles []ProjectileView
}

// FrameSink optionally receives every frame at the end of a tick.
type FrameSink interface {
	Present(f Frame) error
}

// Result is the final outcome of a session.
type Result struct {
	SessionID string
	Kills     int
	Ticks     int
	Seconds   float64
	Stats     Stats
}

// SessionController is told once when the player dies.
type SessionController interface {
	SessionEnded(r Result)
}

// ControllerFunc adapts a function to SessionController.
type ControllerFunc func(r Result)

func (f ControllerFunc) SessionEnded(r Result) { f(r) }

// MapLoader supplies the static grid at session start.
type MapLoader interface {
	LoadGrid() (*Grid, error)
}
