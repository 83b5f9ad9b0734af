package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: event dispatch, player input, wave spawns
	PhaseIntent                  // 1: one-shot init, enemy steering
	PhaseMove                    // 2: velocity/facing, projectile advance
	PhasePhysics                 // 3: collaborator step, contact/trigger frame
	PhaseReact                   // 4: melee + projectile contact handling
	PhaseResolve                 // 5: drain damage buffers
	PhaseAttack                  // 6: ranged targeting
	PhasePostUpdate              // 7: camera, presentation
	PhasePersist                 // 8: stats flush
	PhaseCleanup                 // 9: sweep flagged entities, command playback
)

var phaseNames = [...]string{"input", "intent", "move", "physics", "react", "resolve", "attack", "post_update", "persist", "cleanup"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// System is the interface every ECS system implements. Access declares the
// stores and resources Update reads and writes; the runner only overlaps
// systems of the same phase whose declarations do not conflict.
type System interface {
	Phase() Phase
	Access() ecs.Access
	Update(dt time.Duration)
}
