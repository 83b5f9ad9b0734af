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

// CleanupSystem sweeps every flagged entity into the deferred queue, tells
// the presenter when the player goes, then replays the queue. Playback is the
// tick's only structural sync point. Phase 9 (Cleanup).
type CleanupSystem struct {
	world    *world.State
	bus      *event.Bus
	log      *zap.Logger
	gameOver bool
}

func NewCleanupSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, bus: bus, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

// Access is empty: playback touches every store, so the sweep runs alone.
func (s *CleanupSystem) Access() ecs.Access { return ecs.Access{} }

// GameOver reports whether the player has been swept.
func (s *CleanupSystem) GameOver() bool { return s.gameOver }

func (s *CleanupSystem) Update(_ time.Duration) {
	ws := s.world
	now := ws.Clock.Now()
	ws.Destroy.EachEnabled(func(id ecs.EntityID, _ *component.DestroyFlag) {
		player := ws.Players.Has(id)
		if player && !s.gameOver {
			s.gameOver = true
			s.log.Info("player defeated", zap.Stringer("entity", id), zap.Float64("at", now))
			if p := ws.Ctx.Presenter; p != nil {
				p.GameOver()
			}
		}
		ws.ECS.MarkForDestruction(id)
		if s.bus != nil {
			event.Emit(s.bus, event.EntityDestroyed{
				Entity:     id,
				Player:     player,
				Enemy:      ws.Enemies.Has(id),
				Projectile: ws.Projectiles.Has(id),
				At:         now,
			})
		}
	})

	st := ws.ECS.Playback()
	if st.Spawned+st.Destroyed+st.Edited+st.Skipped > 0 {
		s.log.Debug("playback",
			zap.Int("spawned", st.Spawned),
			zap.Int("destroyed", st.Destroyed),
			zap.Int("edited", st.Edited),
			zap.Int("skipped", st.Skipped))
	}
}
