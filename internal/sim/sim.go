// Package sim assembles the world state, event bus and system runner into
// one fixed-tick simulation.
package sim

import (
	"context"
	"time"

	"github.com/l1jgo/survivors/internal/core/event"
	coresys "github.com/l1jgo/survivors/internal/core/system"
	"github.com/l1jgo/survivors/internal/persist"
	"github.com/l1jgo/survivors/internal/system"
	"github.com/l1jgo/survivors/internal/world"
	"go.uber.org/zap"
)

// Options configures the systems. Zero values pick defaults.
type Options struct {
	Workers       int     // goroutine cap per batch and shard; 0 = GOMAXPROCS
	Deadzone      float64 // facing deadzone; 0 = system.DefaultDeadzone
	Waves         []world.Wave
	Sink          system.RunSink // nil keeps stats in memory
	RunID         int64
	FlushInterval int // stats flush every N ticks
}

// Simulation owns one world and drives it tick by tick. Not safe for
// concurrent use; parallelism happens inside Step.
type Simulation struct {
	State *world.State
	Bus   *event.Bus

	runner  *coresys.Runner
	cleanup *system.CleanupSystem
	waves   *system.WaveSystem
	stats   *system.StatsSystem
	log     *zap.Logger
}

func New(ctx world.Context, opts Options, log *zap.Logger) *Simulation {
	if opts.Deadzone <= 0 {
		opts.Deadzone = system.DefaultDeadzone
	}
	ws := world.NewState(ctx, log)
	bus := event.NewBus()
	s := &Simulation{
		State:  ws,
		Bus:    bus,
		runner: coresys.NewRunner(opts.Workers, log),
		log:    log,
	}

	s.waves = system.NewWaveSystem(ws, bus, opts.Waves, log)
	s.stats = system.NewStatsSystem(ws, bus, opts.Sink, opts.RunID, log, opts.FlushInterval)
	s.cleanup = system.NewCleanupSystem(ws, bus, log)

	// Registration order is kept between conflicting systems of a phase.
	s.runner.Register(system.NewEventDispatchSystem(bus))
	s.runner.Register(system.NewInputSystem(ws))
	s.runner.Register(s.waves)
	s.runner.Register(system.NewCharacterInitSystem(ws))
	s.runner.Register(system.NewEnemyChaseSystem(ws))
	s.runner.Register(system.NewMovementSystem(ws, opts.Deadzone, opts.Workers))
	s.runner.Register(system.NewProjectileMoveSystem(ws))
	s.runner.Register(system.NewPhysicsSystem(ws, log))
	s.runner.Register(system.NewMeleeSystem(ws, opts.Workers, log))
	s.runner.Register(system.NewProjectileHitSystem(ws, opts.Workers, log))
	s.runner.Register(system.NewDamageSystem(ws, bus, log))
	s.runner.Register(system.NewTargetingSystem(ws, bus, log))
	s.runner.Register(system.NewCameraSystem(ws))
	s.runner.Register(s.stats)
	s.runner.Register(s.cleanup)
	return s
}

// Step runs one tick of length dt. It returns after the tick's command
// playback, so the world is consistent between calls.
func (s *Simulation) Step(dt time.Duration) {
	s.State.Clock.Begin(dt)
	s.runner.Tick(dt)
	s.State.Clock.Advance()
}

// Flush applies queued setup spawns without advancing time.
func (s *Simulation) Flush() {
	s.State.ECS.Playback()
}

// GameOver reports whether the player has been removed.
func (s *Simulation) GameOver() bool { return s.cleanup.GameOver() }

// WavesRemaining returns the number of waves not yet spawned.
func (s *Simulation) WavesRemaining() int { return s.waves.Remaining() }

func (s *Simulation) Schedule() []string { return s.runner.Schedule() }

// Finish delivers the last tick's events and writes the run summary.
func (s *Simulation) Finish(ctx context.Context) error {
	s.Bus.SwapBuffers()
	s.Bus.DispatchAll()
	return s.stats.Finish(ctx)
}

// Stats returns the tally so far. Events from the latest tick are only
// counted once the next tick (or Finish) dispatches them.
func (s *Simulation) Stats() persist.RunSummary { return s.stats.Summary() }
