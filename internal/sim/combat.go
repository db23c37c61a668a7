package sim

import (
	"errors"
	"fmt"
	"math"
)

// cooldownEpsilon absorbs float error in tick-derived timestamps so a
// cooldown of exactly N ticks opens on the Nth tick.
const cooldownEpsilon = 1e-9

// cooldownReady reports whether at least cd seconds passed since last.
func cooldownReady(now, last, cd float64) bool {
	return now-last >= cd-cooldownEpsilon
}

// InContactRange reports whether two agents' top-left corners are closer
// than reach on both axes.
func InContactRange(a, b *Agent, reach float64) bool {
	return math.Abs(a.X-b.X) < reach && math.Abs(a.Y-b.Y) < reach
}

// emit queues a sound event for the end of the tick.
func (s *Session) emit(name EventName, x, y float64) {
	s.pending = append(s.pending, SoundEvent{Name: name, X: x, Y: y})
}

// spawnProjectile adds a projectile flying from (fx, fy) toward (tx, ty).
func (s *Session) spawnProjectile(fx, fy, tx, ty float64, owner Owner) (*Projectile, error) {
	p, err := SpawnProjectile(fx, fy, tx, ty, s.rules.ProjectileSpeed, owner)
	if err != nil {
		return nil, err
	}
	s.nextProjectileID++
	p.ID = s.nextProjectileID
	s.projectiles = append(s.projectiles, p)
	return p, nil
}

// --- Player fire ---

// handleFireIntent applies press/release edges. Semi-automatic weapons fire
// on the press edge; automatic weapons fire every tick the trigger is held
// and the cooldown allows.
func (s *Session) handleFireIntent(in Intent) {
	p := s.player
	p.AimX, p.AimY = in.PointerX, in.PointerY

	if in.FirePressed {
		if p.Weapon.Automatic {
			p.Firing = true
		} else {
			s.playerTryFire()
		}
	}
	if p.Firing && p.Weapon.Automatic {
		s.playerTryFire()
	}
	if in.FireReleased {
		p.Firing = false
	}
}

func (s *Session) playerTryFire() {
	p := s.player
	now := s.clock.Seconds()
	if !cooldownReady(now, p.LastShot, p.Weapon.Cooldown) {
		return
	}
	cx, cy := p.Center()
	proj, err := s.spawnProjectile(cx, cy, p.AimX, p.AimY, OwnerPlayer)
	if errors.Is(err, ErrZeroDirection) {
		s.log.AddVerbose(s.tick, playerLabel, CatWeapon, "fire_rejected", "aim at own center", 0)
		return
	}
	p.LastShot = now
	s.stats.PlayerShots++
	s.pending = append(s.pending, SoundEvent{Name: EventPlayerFire, Weapon: p.Weapon.Name, X: cx, Y: cy})
	s.log.Add(s.tick, playerLabel, CatWeapon, "fire",
		fmt.Sprintf("%s #%d toward (%.0f,%.0f)", p.Weapon.Name, proj.ID, p.AimX, p.AimY), now)
}

// --- Enemy fire ---

// enemyTryFire opens the ranged-fire gate when the cooldown elapsed and the
// segment between both centers is clear.
func (s *Session) enemyTryFire(e *Enemy) bool {
	now := s.clock.Seconds()
	if !cooldownReady(now, e.LastShot, s.rules.EnemyFireCooldown) {
		return false
	}
	ex, ey := e.Center()
	px, py := s.player.Center()
	if !HasLineOfSight(s.grid, ex, ey, px, py, s.rules.LOSStep) {
		return false
	}
	proj, err := s.spawnProjectile(ex, ey, px, py, OwnerEnemy)
	if err != nil {
		// Same center as the player; contact damage covers this case.
		return false
	}
	e.LastShot = now
	s.stats.EnemyShots++
	s.emit(EventEnemyFire, ex, ey)
	s.log.Add(s.tick, enemyLabel(e.ID), CatWeapon, "fire",
		fmt.Sprintf("#%d at player", proj.ID), now)
	return true
}

// --- Projectiles ---

// advanceProjectiles moves every projectile and drops the ones that hit
// terrain in the same tick.
func (s *Session) advanceProjectiles() {
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.Advance(s.grid) {
			kept = append(kept, p)
			continue
		}
		s.stats.Impacts++
		s.emit(EventProjectileImpact, p.X, p.Y)
		s.log.AddVerbose(s.tick, globalLabel, CatCombat, "impact",
			fmt.Sprintf("#%d %s at (%.0f,%.0f)", p.ID, p.Owner, p.X, p.Y), 0)
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// resolveHits applies projectile damage. A projectile damages at most one
// agent of the opposing side and is retired on that hit.
func (s *Session) resolveHits() {
	radius := s.rules.CollisionRadius()
	dmg := s.rules.ProjectileDamage
	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		var target *Agent
		label := playerLabel
		switch p.Owner {
		case OwnerPlayer:
			for _, e := range s.enemies {
				if !e.Dead() && p.Hits(&e.Agent, radius) {
					target = &e.Agent
					label = enemyLabel(e.ID)
					break
				}
			}
		case OwnerEnemy:
			if p.Hits(&s.player.Agent, radius) {
				target = &s.player.Agent
			}
		}
		if target == nil {
			kept = append(kept, p)
			continue
		}
		target.Damage(dmg)
		p.Alive = false
		if p.Owner == OwnerPlayer {
			s.stats.PlayerHits++
		} else {
			s.stats.EnemyHits++
		}
		s.emit(EventProjectileHit, p.X, p.Y)
		s.log.Add(s.tick, label, CatCombat, "hit",
			fmt.Sprintf("#%d from %s hp=%d", p.ID, p.Owner, target.Health), float64(target.Health))
	}
	clear(s.projectiles[len(kept):])
	s.projectiles = kept
}

// resolveContact applies contact damage from every live enemy within one
// tile of the player whose contact cooldown elapsed.
func (s *Session) resolveContact() {
	now := s.clock.Seconds()
	reach := s.grid.TileSize()
	for _, e := range s.enemies {
		if e.Dead() || !InContactRange(&e.Agent, &s.player.Agent, reach) {
			continue
		}
		if !cooldownReady(now, e.LastContact, s.rules.ContactCooldown) {
			continue
		}
		e.LastContact = now
		s.player.Damage(s.rules.ContactDamage)
		s.stats.ContactHits++
		px, py := s.player.Center()
		s.emit(EventPlayerContactDamage, px, py)
		s.log.Add(s.tick, enemyLabel(e.ID), CatCombat, "contact",
			fmt.Sprintf("player hp=%d", s.player.Health), float64(s.player.Health))
	}
}

// --- Deaths, respawn, escalation ---

// resolveDeaths respawns dead enemies on a fresh walkable cell, counts the
// kills and checks the escalation rule.
func (s *Session) resolveDeaths() {
	now := s.clock.Seconds()
	for _, e := range s.enemies {
		if !e.Dead() {
			continue
		}
		dx, dy := e.Center()
		s.kills++
		s.emit(EventEnemyDeath, dx, dy)
		s.respawnEnemy(e, now)
		s.log.Add(s.tick, enemyLabel(e.ID), CatCombat, "death",
			fmt.Sprintf("kills=%d respawn %v", s.kills, e.Cell(s.grid)), float64(s.kills))
	}
	s.checkEscalation(now)
	if s.player.Dead() && !s.over {
		s.over = true
		s.log.Add(s.tick, playerLabel, CatSession, "player_death",
			fmt.Sprintf("kills=%d", s.kills), float64(s.kills))
	}
}

func (s *Session) respawnEnemy(e *Enemy, now float64) {
	e.PlaceAt(s.grid, s.grid.SampleWalkable(s.rng))
	e.Health = e.MaxHealth
	e.Path = nil
	e.LastContact = now
	e.LastShot = now
}

func (s *Session) checkEscalation(now float64) {
	if s.escalated {
		return
	}
	ok, err := s.escalation.Triggered(EscalationEnv{
		Kills:   s.kills,
		Health:  s.player.Health,
		Seconds: now,
	})
	if err != nil {
		s.faults = append(s.faults, err)
		return
	}
	if !ok {
		return
	}
	s.escalated = true
	prev := s.player.Weapon.Name
	s.player.Weapon = s.weapon(s.rules.EscalationWeapon)
	s.player.Firing = false
	s.log.Add(s.tick, playerLabel, CatWeapon, "escalate",
		fmt.Sprintf("%s -> %s", prev, s.player.Weapon.Name), float64(s.kills))
}
