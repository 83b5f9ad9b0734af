package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// ProjectileMoveSystem flies every live projectile along its heading and
// flags it once its lifetime runs out. Phase 2 (Move).
type ProjectileMoveSystem struct {
	world *world.State
}

func NewProjectileMoveSystem(ws *world.State) *ProjectileMoveSystem {
	return &ProjectileMoveSystem{world: ws}
}

func (s *ProjectileMoveSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *ProjectileMoveSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.Transforms, ws.Projectiles, ws.Destroy)
}

func (s *ProjectileMoveSystem) Update(dt time.Duration) {
	ws := s.world
	step := dt.Seconds()
	ecs.Each2(ws.Projectiles, ws.Transforms, func(id ecs.EntityID, p *component.Projectile, tr *component.Transform) {
		if ws.Pending(id) {
			return
		}
		tr.Position = tr.Position.Add(vmath.Forward(tr.Heading).Scale(p.Speed * step))
		p.Remaining -= step
		if p.Remaining <= 0 {
			ws.Flag(id)
		}
	})
}

// projectileHit is one trigger pair resolved into roles.
type projectileHit struct {
	projectile ecs.EntityID
	enemy      ecs.EntityID
}

// ProjectileHitSystem applies projectile damage from trigger overlaps. A
// projectile is consumed by its first live enemy; later overlaps in the same
// tick find it pending and are dropped. Phase 4 (React).
type ProjectileHitSystem struct {
	world   *world.State
	workers int
	log     *zap.Logger
}

func NewProjectileHitSystem(ws *world.State, workers int, log *zap.Logger) *ProjectileHitSystem {
	return &ProjectileHitSystem{world: ws, workers: workers, log: log}
}

func (s *ProjectileHitSystem) Phase() coresys.Phase { return coresys.PhaseReact }

func (s *ProjectileHitSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.Destroy, ws.DamageBuffers).Read(ws.Frame, ws.Projectiles, ws.Enemies)
}

func (s *ProjectileHitSystem) Update(_ time.Duration) {
	triggers := s.world.Frame.Value.Triggers
	hits := make([]projectileHit, 0, len(triggers))
	for _, pair := range triggers {
		if hit, ok := s.roles(pair); ok {
			hits = append(hits, hit)
		}
	}
	groups := partition(hits, func(h projectileHit) (ecs.EntityID, bool) { return h.projectile, true })
	eachGroup(groups, s.workers, func(g group[projectileHit]) {
		for _, hit := range g.items {
			if s.consume(hit) {
				return
			}
		}
	})
}

func (s *ProjectileHitSystem) roles(p world.Pair) (projectileHit, bool) {
	ws := s.world
	switch {
	case ws.Projectiles.Has(p.A) && ws.Enemies.Has(p.B):
		return projectileHit{projectile: p.A, enemy: p.B}, true
	case ws.Projectiles.Has(p.B) && ws.Enemies.Has(p.A):
		return projectileHit{projectile: p.B, enemy: p.A}, true
	}
	return projectileHit{}, false
}

// consume reports whether the projectile is spent after this hit.
// The enemy's own destroy flag is only read here; the projectile's is
// written, and only by the goroutine owning its group.
func (s *ProjectileHitSystem) consume(hit projectileHit) bool {
	ws := s.world
	if ws.Pending(hit.projectile) {
		return true
	}
	if ws.Pending(hit.enemy) {
		return false
	}
	p, ok := ws.Projectiles.Get(hit.projectile)
	if !ok {
		return true
	}
	if !ws.Damage.Append(hit.enemy, p.Damage) {
		return false
	}
	ws.Flag(hit.projectile)
	s.log.Debug("projectile hit",
		zap.Stringer("projectile", hit.projectile),
		zap.Stringer("enemy", hit.enemy),
		zap.Float64("damage", p.Damage))
	return true
}
