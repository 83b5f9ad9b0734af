package system

import (
	"time"

	"github.com/l1jgo/survivors/internal/component"
	"github.com/l1jgo/survivors/internal/core/ecs"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
)

// CharacterInitSystem runs once per new character: locks body rotation and
// clears the one-shot flag. Phase 1 (Intent).
type CharacterInitSystem struct {
	world *world.State
}

func NewCharacterInitSystem(ws *world.State) *CharacterInitSystem {
	return &CharacterInitSystem{world: ws}
}

func (s *CharacterInitSystem) Phase() coresys.Phase { return coresys.PhaseIntent }

func (s *CharacterInitSystem) Access() ecs.Access {
	return ecs.Writes(s.world.Initialized, s.world.Bodies)
}

func (s *CharacterInitSystem) Update(_ time.Duration) {
	ws := s.world
	ws.Initialized.EachEnabled(func(id ecs.EntityID, _ *component.InitializedFlag) {
		if body, ok := ws.Bodies.Get(id); ok {
			body.FixedRotation = true
		}
		ws.Initialized.SetEnabled(id, false)
	})
}

// EnemyChaseSystem steers every live enemy straight at the player.
// No player means no steering this tick. Phase 1 (Intent).
type EnemyChaseSystem struct {
	world *world.State
}

func NewEnemyChaseSystem(ws *world.State) *EnemyChaseSystem {
	return &EnemyChaseSystem{world: ws}
}

func (s *EnemyChaseSystem) Phase() coresys.Phase { return coresys.PhaseIntent }

func (s *EnemyChaseSystem) Access() ecs.Access {
	ws := s.world
	return ecs.Writes(ws.MoveDirs).Read(ws.Enemies, ws.Transforms, ws.Players, ws.Destroy)
}

func (s *EnemyChaseSystem) Update(_ time.Duration) {
	ws := s.world
	player, ok := ws.Player()
	if !ok {
		return
	}
	target, ok := ws.Position(player)
	if !ok {
		return
	}
	ecs.Each3(ws.Enemies, ws.Transforms, ws.MoveDirs, func(id ecs.EntityID, _ *component.EnemyTag, tr *component.Transform, dir *component.MoveDirection) {
		if ws.Pending(id) {
			return
		}
		dir.Value = target.Sub(tr.Position).XY().Normalize()
	})
}
