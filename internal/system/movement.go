package system

import (
	"math"
	"runtime"
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/vmath"
	"github.com/l1jgo/survivors/internal/world"
	"golang.org/x/sync/errgroup"
)

// DefaultDeadzone is the |step.x| below which facing is left unchanged.
const DefaultDeadzone = 0.15

// movementShardSize is the row count under which movement runs on one goroutine.
const movementShardSize = 512

// MovementSystem turns move direction × speed into a planar velocity and
// updates facing and, for the player, the animation selector.
// Rows are independent, so large populations are sharded across goroutines.
// Phase 2 (Move).
type MovementSystem struct {
	world    *world.State
	deadzone float64
	workers  int
}

func NewMovementSystem(ws *world.State, deadzone float64, workers int) *MovementSystem {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &MovementSystem{world: ws, deadzone: deadzone, workers: workers}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMove }

func (s *MovementSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Reads(ws.MoveDirs, ws.MoveSpeeds, ws.Destroy, ws.Players).
		Write(ws.Velocities, ws.Facings, ws.Animations)
}

func (s *MovementSystem) Update(_ time.Duration) {
	n := s.world.MoveDirs.Len()
	if n <= movementShardSize || s.workers == 1 {
		s.moveRange(0, n)
		return
	}
	shard := (n + s.workers - 1) / s.workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += shard {
		g.Go(func() error {
			s.moveRange(lo, lo+shard)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *MovementSystem) moveRange(lo, hi int) {
	ws := s.world
	ws.MoveDirs.EachRange(lo, hi, func(id ecs.EntityID, dir *component.MoveDirection) {
		if ws.Pending(id) {
			if vel, ok := ws.Velocities.Get(id); ok {
				vel.Linear = vmath.Vec3{}
			}
			return
		}
		speed, ok := ws.MoveSpeeds.Get(id)
		if !ok {
			return
		}
		step := dir.Value.Scale(speed.Value)
		if vel, ok := ws.Velocities.Get(id); ok {
			vel.Linear = step.Vec3()
		}
		if facing, ok := ws.Facings.Get(id); ok && math.Abs(step.X) > s.deadzone {
			facing.Sign = vmath.Sign(step.X)
		}
		if ws.Players.Has(id) {
			if anim, ok := ws.Animations.Get(id); ok {
				if step.LenSq() > epsilon {
					anim.Value = component.AnimMovement
				} else {
					anim.Value = component.AnimIdle
				}
			}
		}
	})
}

// epsilon is the squared step length under which the player counts as idle.
const epsilon = math.SmallestNonzeroFloat32
