package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
)

// EventDispatchSystem rotates the event bus and delivers last tick's events.
// Phase 0 (Input), registered first.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }
func (s *EventDispatchSystem) Access() ecs.Access   { return ecs.Access{} }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// InputSystem copies the input collaborator's move intent onto the player's
// move direction. Phase 0 (Input).
type InputSystem struct {
	world *world.State
}

func NewInputSystem(ws *world.State) *InputSystem {
	return &InputSystem{world: ws}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Access() ecs.Access {
	return ecs.Writes(s.world.MoveDirs).Read(s.world.Players, s.world.Destroy)
}

func (s *InputSystem) Update(_ time.Duration) {
	in := s.world.Ctx.Input
	if in == nil {
		return
	}
	player, ok := s.world.Player()
	if !ok || s.world.Pending(player) {
		return
	}
	dir, ok := s.world.MoveDirs.Get(player)
	if !ok {
		return
	}
	dir.Value = in.MoveIntent(s.world.Clock.Now())
}
