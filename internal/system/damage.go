package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// DamageSystem drains every actor's damage buffer into its health and flags
// the actor once health reaches zero. Pending actors are drained too so a
// terminal tick never leaves entries behind. Phase 5 (Resolve).
type DamageSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewDamageSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *DamageSystem {
	return &DamageSystem{world: ws, bus: bus, log: log}
}

func (s *DamageSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *DamageSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.DamageBuffers, ws.Healths, ws.Destroy).Read(ws.Players)
}

func (s *DamageSystem) Update(_ time.Duration) {
	ws := s.world
	now := ws.Clock.Now()
	ecs.Each2(ws.DamageBuffers, ws.Healths, func(id ecs.EntityID, buf *component.DamageBuffer, hp *component.Health) {
		total, ok := world.Drain(buf)
		if !ok {
			return
		}
		hp.Current -= total
		player := ws.Players.Has(id)
		if s.bus != nil {
			event.Emit(s.bus, event.DamageResolved{
				Entity: id,
				Amount: total,
				Health: hp.Current,
				Player: player,
				At:     now,
			})
		}
		if hp.Current <= 0 && ws.Flag(id) {
			s.log.Debug("actor defeated",
				zap.Stringer("entity", id),
				zap.Bool("player", player),
				zap.Float64("health", hp.Current))
		}
	})
}
