// Package config holds the tunable rules of a maze combat session and
// loads overrides from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Weapon names shipped with the default rules.
const (
	WeaponPlasmaGun = "plasma_gun"
	WeaponMiniGun   = "mini_gun"
)

// Weapon describes how a player weapon fires.
type Weapon struct {
	// Automatic weapons keep firing while the trigger is held; the others
	// fire once per press.
	Automatic bool `yaml:"automatic" toml:"automatic"`
	// Cooldown is the minimum number of seconds between two shots.
	Cooldown float64 `yaml:"cooldown" toml:"cooldown"`
}

// Rules is the full set of simulation constants. World units are pixels in
// the reference front end; time values are seconds.
type Rules struct {
	TicksPerSecond int     `yaml:"ticks_per_second" toml:"ticks_per_second"`
	TileSize       float64 `yaml:"tile_size" toml:"tile_size"`

	PlayerSize     float64 `yaml:"player_size" toml:"player_size"`
	EnemySize      float64 `yaml:"enemy_size" toml:"enemy_size"`
	ProjectileSize float64 `yaml:"projectile_size" toml:"projectile_size"` // render only

	PlayerSpeed     float64 `yaml:"player_speed" toml:"player_speed"`         // units per tick
	EnemySpeed      float64 `yaml:"enemy_speed" toml:"enemy_speed"`           // units per tick
	ProjectileSpeed float64 `yaml:"projectile_speed" toml:"projectile_speed"` // units per tick

	PlayerHealth int `yaml:"player_health" toml:"player_health"`
	EnemyHealth  int `yaml:"enemy_health" toml:"enemy_health"`
	EnemyCount   int `yaml:"enemy_count" toml:"enemy_count"`

	ContactDamage    int `yaml:"contact_damage" toml:"contact_damage"`
	ProjectileDamage int `yaml:"projectile_damage" toml:"projectile_damage"`

	ContactCooldown   float64 `yaml:"contact_cooldown" toml:"contact_cooldown"`
	EnemyFireCooldown float64 `yaml:"enemy_fire_cooldown" toml:"enemy_fire_cooldown"`

	// LOSStep is the sampling interval, in world units, of the enemy
	// line-of-sight test.
	LOSStep float64 `yaml:"los_step" toml:"los_step"`

	StartWeapon      string `yaml:"start_weapon" toml:"start_weapon"`
	EscalationWeapon string `yaml:"escalation_weapon" toml:"escalation_weapon"`
	// EscalateWhen is a boolean expression over Kills, Health and Seconds.
	EscalateWhen string `yaml:"escalate_when" toml:"escalate_when"`

	Weapons map[string]Weapon `yaml:"weapons" toml:"weapons"`
}

// Default returns the reference rules.
func Default() Rules {
	return Rules{
		TicksPerSecond:    60,
		TileSize:          50,
		PlayerSize:        40,
		EnemySize:         40,
		ProjectileSize:    20,
		PlayerSpeed:       3,
		EnemySpeed:        1,
		ProjectileSpeed:   10,
		PlayerHealth:      10,
		EnemyHealth:       3,
		EnemyCount:        5,
		ContactDamage:     2,
		ProjectileDamage:  1,
		ContactCooldown:   1.0,
		EnemyFireCooldown: 3.0,
		LOSStep:           10,
		StartWeapon:       WeaponPlasmaGun,
		EscalationWeapon:  WeaponMiniGun,
		EscalateWhen:      "Kills > 0",
		Weapons: map[string]Weapon{
			WeaponPlasmaGun: {Automatic: false, Cooldown: 0},
			WeaponMiniGun:   {Automatic: true, Cooldown: 0.1},
		},
	}
}

// CollisionRadius is the per-axis projectile hit distance: half a tile.
func (r Rules) CollisionRadius() float64 {
	return r.TileSize / 2
}

// TickSeconds is the simulated duration of one tick.
func (r Rules) TickSeconds() float64 {
	return 1 / float64(r.TicksPerSecond)
}

// ErrInvalidRules is wrapped by every validation failure.
var ErrInvalidRules = errors.New("config: invalid rules")

// Validate reports the first inconsistent value.
func (r Rules) Validate() error {
	switch {
	case r.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second must be > 0", ErrInvalidRules)
	case r.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be > 0", ErrInvalidRules)
	case r.PlayerSize < 1 || r.PlayerSize > r.TileSize:
		return fmt.Errorf("%w: player_size must be in [1, tile_size]", ErrInvalidRules)
	case r.EnemySize < 1 || r.EnemySize > r.TileSize:
		return fmt.Errorf("%w: enemy_size must be in [1, tile_size]", ErrInvalidRules)
	case r.PlayerSpeed <= 0 || r.EnemySpeed <= 0 || r.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: speeds must be > 0", ErrInvalidRules)
	case r.PlayerHealth <= 0 || r.EnemyHealth <= 0:
		return fmt.Errorf("%w: health must be > 0", ErrInvalidRules)
	case r.EnemyCount < 0:
		return fmt.Errorf("%w: enemy_count must be >= 0", ErrInvalidRules)
	case r.ContactDamage < 0 || r.ProjectileDamage < 0:
		return fmt.Errorf("%w: damage must be >= 0", ErrInvalidRules)
	case r.ContactCooldown < 0 || r.EnemyFireCooldown < 0:
		return fmt.Errorf("%w: cooldowns must be >= 0", ErrInvalidRules)
	case r.LOSStep <= 0:
		return fmt.Errorf("%w: los_step must be > 0", ErrInvalidRules)
	case r.EscalateWhen == "":
		return fmt.Errorf("%w: escalate_when must not be empty", ErrInvalidRules)
	}
	for _, name := range []string{r.StartWeapon, r.EscalationWeapon} {
		w, ok := r.Weapons[name]
		if !ok {
			return fmt.Errorf("%w: unknown weapon %q", ErrInvalidRules, name)
		}
		if w.Cooldown < 0 {
			return fmt.Errorf("%w: weapon %q has a negative cooldown", ErrInvalidRules, name)
		}
	}
	return nil
}

// Load reads a rules file over the defaults. Files ending in .toml are
// decoded as TOML, everything else as YAML. An empty path returns the
// defaults.
func Load(path string) (Rules, error) {
	if path == "" {
		return Default(), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
		}
		return LoadTOML(data)
	}
	f, err := os.Open(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes YAML rules over the defaults and validates the
// result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (Rules, error) {
	rules := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil && !errors.Is(err, io.EOF) {
		return Rules{}, fmt.Errorf("failed to decode rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// LoadTOML decodes TOML rules over the defaults. Unknown keys are rejected
// the same way LoadFromReader rejects them.
func LoadTOML(data []byte) (Rules, error) {
	rules := Default()
	md, err := toml.Decode(string(data), &rules)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to decode rules: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Rules{}, fmt.Errorf("failed to decode rules: unknown key %q", undecoded[0].String())
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}
