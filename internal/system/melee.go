package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// meleeHit is one contact pair resolved into roles.
type meleeHit struct {
	enemy  ecs.EntityID
	player ecs.EntityID
}

// MeleeSystem turns enemy/player body contacts into cooldown-gated damage on
// the player. Cooldowns are absolute expiry times; a cooldown is active while
// its row is enabled. Phase 4 (React).
type MeleeSystem struct {
	world   *world.State
	workers int
	log     *zap.Logger
}

func NewMeleeSystem(ws *world.State, workers int, log *zap.Logger) *MeleeSystem {
	return &MeleeSystem{world: ws, workers: workers, log: log}
}

func (s *MeleeSystem) Phase() coresys.Phase { return coresys.PhaseReact }

func (s *MeleeSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.Cooldowns, ws.DamageBuffers).
		Read(ws.Frame, ws.Players, ws.Enemies, ws.EnemyAttacks, ws.Destroy)
}

func (s *MeleeSystem) Update(_ time.Duration) {
	now := s.world.Clock.Now()
	s.expire(now)

	contacts := s.world.Frame.Value.Contacts
	hits := make([]meleeHit, 0, len(contacts))
	for _, pair := range contacts {
		if hit, ok := s.roles(pair); ok {
			hits = append(hits, hit)
		}
	}
	groups := partition(hits, func(h meleeHit) (ecs.EntityID, bool) { return h.enemy, true })
	eachGroup(groups, s.workers, func(g group[meleeHit]) {
		for _, hit := range g.items {
			s.strike(hit, now)
		}
	})
}

// expire clears every active cooldown whose expiry time has been reached.
func (s *MeleeSystem) expire(now float64) {
	cds := s.world.Cooldowns
	cds.EachEnabled(func(id ecs.EntityID, cd *component.EnemyCooldown) {
		if now >= cd.ExpiresAt {
			cds.SetEnabled(id, false)
		}
	})
}

// roles reports false when the pair is not exactly one enemy attacker and
// one player, in either order.
func (s *MeleeSystem) roles(p world.Pair) (meleeHit, bool) {
	ws := s.world
	isEnemy := func(id ecs.EntityID) bool { return ws.EnemyAttacks.Has(id) && ws.Cooldowns.Has(id) }
	switch {
	case isEnemy(p.A) && ws.Players.Has(p.B):
		return meleeHit{enemy: p.A, player: p.B}, true
	case isEnemy(p.B) && ws.Players.Has(p.A):
		return meleeHit{enemy: p.B, player: p.A}, true
	}
	return meleeHit{}, false
}

// strike applies one contact. Runs sequentially per enemy, so the first
// contact to find the cooldown inactive wins and arms it for the rest.
func (s *MeleeSystem) strike(hit meleeHit, now float64) {
	ws := s.world
	if ws.Pending(hit.enemy) || ws.Pending(hit.player) {
		return
	}
	if ws.Cooldowns.Enabled(hit.enemy) {
		return
	}
	atk, ok := ws.EnemyAttacks.Get(hit.enemy)
	if !ok {
		return
	}
	cd, _ := ws.Cooldowns.Get(hit.enemy)
	cd.ExpiresAt = now + atk.Cooldown
	ws.Cooldowns.SetEnabled(hit.enemy, true)
	if ws.Damage.Append(hit.player, atk.Power) {
		s.log.Debug("melee hit",
			zap.Stringer("enemy", hit.enemy),
			zap.Stringer("player", hit.player),
			zap.Float64("power", atk.Power),
			zap.Float64("ready_at", cd.ExpiresAt))
	}
}
