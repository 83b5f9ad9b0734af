package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// PhysicsSystem steps the physics collaborator and publishes this tick's
// contact and trigger pairs into the frame resource. Without a collaborator
// the frame is left empty. Phase 3 (Physics).
type PhysicsSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewPhysicsSystem(ws *world.State, log *zap.Logger) *PhysicsSystem {
	return &PhysicsSystem{world: ws, log: log}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.Frame, ws.Transforms).Read(ws.Velocities, ws.Bodies)
}

func (s *PhysicsSystem) Update(dt time.Duration) {
	frame := &s.world.Frame.Value
	frame.Contacts = frame.Contacts[:0]
	frame.Triggers = frame.Triggers[:0]
	p := s.world.Ctx.Physics
	if p == nil {
		return
	}
	contacts, triggers := p.Step(dt)
	frame.Contacts = append(frame.Contacts, contacts...)
	frame.Triggers = append(frame.Triggers, triggers...)
	if len(contacts)+len(triggers) > 0 {
		s.log.Debug("physics events", zap.Int("contacts", len(contacts)), zap.Int("triggers", len(triggers)))
	}
}
