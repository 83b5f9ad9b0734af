package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
)

// CameraSystem hands the followed entity's position to the camera after
// physics has moved it. Phase 7 (PostUpdate).
type CameraSystem struct {
	world *world.State
}

func NewCameraSystem(ws *world.State) *CameraSystem {
	return &CameraSystem{world: ws}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *CameraSystem) Access() ecs.Access {
	return ecs.Reads(s.world.CameraTargets, s.world.Transforms)
}

func (s *CameraSystem) Update(_ time.Duration) {
	cam := s.world.Ctx.Camera
	if cam == nil {
		return
	}
	ecs.Each2(s.world.CameraTargets, s.world.Transforms, func(_ ecs.EntityID, _ *component.CameraTarget, tr *component.Transform) {
		cam.Follow(tr.Position)
	})
}
