package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// TargetingSystem fires the player's ranged attack at the nearest hostile in
// the detection box once the attack is ready. An empty box or an unknown
// projectile template costs nothing; the cooldown is only consumed by a shot.
// Phase 6 (Attack).
type TargetingSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewTargetingSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *TargetingSystem {
	return &TargetingSystem{world: ws, bus: bus, log: log}
}

func (s *TargetingSystem) Phase() coresys.Phase { return coresys.PhaseAttack }

func (s *TargetingSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.AttackReady).Read(ws.Players, ws.PlayerAttacks, ws.Transforms, ws.Destroy)
}

func (s *TargetingSystem) Update(_ time.Duration) {
	ws := s.world
	physics := ws.Ctx.Physics
	if physics == nil {
		return
	}
	now := ws.Clock.Now()
	ecs.Each3(ws.Players, ws.PlayerAttacks, ws.AttackReady, func(id ecs.EntityID, _ *component.PlayerTag, atk *component.PlayerAttack, ready *component.AttackReady) {
		if ws.Pending(id) || now < ready.At {
			return
		}
		origin, ok := ws.Position(id)
		if !ok {
			return
		}
		hits := physics.OverlapAABB(world.BoxAround(origin, atk.HalfExtents), atk.Filter)
		target, ok := s.nearest(id, origin, hits)
		if !ok {
			return
		}
		heading := vmath.Heading(target.Position.Sub(origin).XY())
		if !ws.SpawnProjectile(atk.Template, origin, heading, nil) {
			s.log.Debug("unknown projectile template", zap.String("template", atk.Template))
			return
		}
		ready.At = now + atk.Cooldown
		if s.bus != nil {
			event.Emit(s.bus, event.ProjectileFired{
				Shooter:  id,
				Target:   target.Entity,
				Template: atk.Template,
				At:       now,
			})
		}
	})
}

// nearest picks the hit closest to origin. Equal distances go to the lowest
// entity id so the choice never depends on the collaborator's result order.
// The shooter itself and pending entities are never targets.
func (s *TargetingSystem) nearest(self ecs.EntityID, origin vmath.Vec3, hits []world.Hit) (world.Hit, bool) {
	var (
		best   world.Hit
		bestSq float64
		found  bool
	)
	for _, h := range hits {
		if h.Entity == self || s.world.Pending(h.Entity) {
			continue
		}
		d := origin.DistSq(h.Position)
		if !found || d < bestSq || (d == bestSq && h.Entity < best.Entity) {
			best, bestSq, found = h, d, true
		}
	}
	return best, found
}
