package system

import (
	"context"
	"time"

	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/persist"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// RunSink stores run statistics. Implemented by persist.RunRepo.
type RunSink interface {
	AppendKills(ctx context.Context, runID int64, kills []persist.KillRow) error
	FinishRun(ctx context.Context, runID int64, s persist.RunSummary) error
}

// StatsSystem tallies the run from bus events and periodically flushes the
// kill log to the sink. A nil sink keeps the tally in memory only.
// Phase 8 (Persist).
type StatsSystem struct {
	world     *world.State
	sink      RunSink
	runID     int64
	log       *zap.Logger
	tickCount int
	interval  int // flush every N ticks

	summary persist.RunSummary
	kills   []persist.KillRow
	over    bool
}

func NewStatsSystem(ws *world.State, bus *event.Bus, sink RunSink, runID int64, log *zap.Logger, intervalTicks int) *StatsSystem {
	if intervalTicks <= 0 {
		intervalTicks = 1
	}
	s := &StatsSystem{
		world:    ws,
		sink:     sink,
		runID:    runID,
		log:      log,
		interval: intervalTicks,
	}
	s.summary.Survived = true
	event.Subscribe(bus, s.onDestroyed)
	event.Subscribe(bus, func(event.ProjectileFired) { s.summary.Shots++ })
	event.Subscribe(bus, s.onDamage)
	event.Subscribe(bus, func(event.WaveSpawned) { s.summary.Waves++ })
	return s
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePersist }
func (s *StatsSystem) Access() ecs.Access   { return ecs.Access{} }

func (s *StatsSystem) onDestroyed(ev event.EntityDestroyed) {
	switch {
	case ev.Enemy:
		s.summary.Kills++
		s.kills = append(s.kills, persist.KillRow{Entity: ev.Entity.String(), At: ev.At})
	case ev.Player:
		s.summary.Survived = false
		s.over = true
	}
}

func (s *StatsSystem) onDamage(ev event.DamageResolved) {
	if ev.Player {
		s.summary.DamageTaken += ev.Amount
		return
	}
	s.summary.DamageDealt += ev.Amount
}

// Summary returns the tally so far.
func (s *StatsSystem) Summary() persist.RunSummary {
	sum := s.summary
	sum.SimSeconds = s.world.Clock.Now()
	return sum
}

func (s *StatsSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval && !s.over {
		return
	}
	s.tickCount = 0
	s.flushKills()
}

func (s *StatsSystem) flushKills() {
	if s.sink == nil || len(s.kills) == 0 {
		s.kills = s.kills[:0]
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sink.AppendKills(ctx, s.runID, s.kills); err != nil {
		// Kept for the next flush.
		s.log.Error("kill log flush failed", zap.Int("pending", len(s.kills)), zap.Error(err))
		return
	}
	s.log.Debug("kill log flushed", zap.Int("kills", len(s.kills)))
	s.kills = s.kills[:0]
}

// Finish flushes what is left and writes the final tally.
// Called once by the driver at shutdown.
func (s *StatsSystem) Finish(ctx context.Context) error {
	s.flushKills()
	sum := s.Summary()
	s.log.Info("run finished",
		zap.Float64("sim_seconds", sum.SimSeconds),
		zap.Int("kills", sum.Kills),
		zap.Int("shots", sum.Shots),
		zap.Int("waves", sum.Waves),
		zap.Float64("damage_taken", sum.DamageTaken),
		zap.Float64("damage_dealt", sum.DamageDealt),
		zap.Bool("survived", sum.Survived))
	if s.sink == nil {
		return nil
	}
	return s.sink.FinishRun(ctx, s.runID, sum)
}
