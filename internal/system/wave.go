package system

import (
	"sort"
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// WaveSystem queues enemy waves once the clock reaches each wave's start
// time. Spawns land at this tick's playback. Phase 0 (Input).
type WaveSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
	waves []world.Wave
	next  int
}

func NewWaveSystem(ws *world.State, bus *event.Bus, waves []world.Wave, log *zap.Logger) *WaveSystem {
	sorted := append([]world.Wave(nil), waves...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &WaveSystem{world: ws, bus: bus, waves: sorted, log: log}
}

func (s *WaveSystem) Phase() coresys.Phase { return coresys.PhaseInput }
func (s *WaveSystem) Access() ecs.Access   { return ecs.Access{} }

// Remaining returns the number of waves not yet spawned.
func (s *WaveSystem) Remaining() int { return len(s.waves) - s.next }

func (s *WaveSystem) Update(_ time.Duration) {
	now := s.world.Clock.Now()
	for s.next < len(s.waves) && now >= s.waves[s.next].At {
		w := s.waves[s.next]
		for _, spec := range w.Enemies {
			s.world.SpawnEnemy(spec, nil)
		}
		event.Emit(s.bus, event.WaveSpawned{Wave: s.next + 1, Enemies: len(w.Enemies), At: now})
		s.log.Info("wave queued", zap.Int("wave", s.next+1), zap.Int("enemies", len(w.Enemies)), zap.Float64("at", now))
		s.next++
	}
}
