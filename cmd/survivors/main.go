package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/survivors/internal/config"
	"github.com/l1jgo/survivors/internal/core/ecs"
	"github.com/l1jgo/survivors/internal/data"
	"github.com/l1jgo/survivors/internal/persist"
	"github.com/l1jgo/survivors/internal/physics"
	"github.com/l1jgo/survivors/internal/scripting"
	"github.com/l1jgo/survivors/internal/sim"
	"github.com/l1jgo/survivors/internal/system"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             survivors  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       headless combat simulation          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mscene:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

var counts = message.NewPrinter(language.English)

func printStat(label string, count int) {
	numStr := counts.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("SURVIVORS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// Every log line of this run carries its key, database or not.
	runKey := uuid.New()
	log = log.With(zap.Stringer("run", runKey))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Load templates
	printBanner(cfg.Server.Name)
	printSection("data")

	actors, err := data.LoadActorTable(cfg.Data.Actors)
	if err != nil {
		return fmt.Errorf("load actors: %w", err)
	}
	printStat("actor templates", actors.Count())

	projectiles, err := data.LoadProjectileTable(cfg.Data.Projectiles)
	if err != nil {
		return fmt.Errorf("load projectiles: %w", err)
	}
	printStat("projectile templates", projectiles.Count())

	if err := actors.Check(projectiles); err != nil {
		return fmt.Errorf("check templates: %w", err)
	}

	// 4. Scene script
	luaEngine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	scene, err := luaEngine.LoadScene(cfg.Data.Scene)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	setup, err := scene.Resolve(actors)
	if err != nil {
		return fmt.Errorf("resolve scene: %w", err)
	}
	printStat("enemies", len(setup.Enemies))
	printStat("waves", len(setup.Waves))
	printOK(fmt.Sprintf("scene %s loaded (%s)", scene.Name, scene.Digest))
	fmt.Println()

	// 5. Optional run statistics
	var (
		sink  system.RunSink
		runID int64
	)
	if cfg.PersistEnabled() {
		printSection("database")
		db, repo, id, err := openStats(ctx, cfg, scene, runKey, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		sink, runID = repo, id
		printOK(fmt.Sprintf("run %d recorded", runID))
		fmt.Println()
	}

	// 6. Build the simulation
	phys := physics.New(cfg.Simulation.CellSize, nil, log)
	wctx := world.Context{
		Physics:   phys,
		Presenter: &logPresenter{log: log},
		Camera:    &logCamera{log: log},
	}
	if ap := luaEngine.Autopilot(); ap != nil {
		wctx.Input = ap
	}
	s := sim.New(wctx, sim.Options{
		Workers:       cfg.Simulation.Workers,
		Deadzone:      cfg.Simulation.Deadzone,
		Waves:         setup.Waves,
		Sink:          sink,
		RunID:         runID,
		FlushInterval: cfg.Database.FlushInterval,
	}, log)
	phys.Bind(s.State)
	projectiles.RegisterAll(s.State)

	s.State.SpawnPlayer(setup.Player, func(id ecs.EntityID) {
		log.Info("player ready", zap.Stringer("entity", id))
	})
	for _, e := range setup.Enemies {
		s.State.SpawnEnemy(e, nil)
	}
	s.Flush()

	printSection("ready")
	for _, line := range s.Schedule() {
		printReady(line)
	}
	printReady(fmt.Sprintf("tick %s, max %d ticks", cfg.Simulation.TickRate, cfg.Simulation.MaxTicks))
	fmt.Println()

	// 7. Tick loop
	loopErr := loop(ctx, s, cfg.Simulation, log)

	// 8. Final tally
	finishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Finish(finishCtx); err != nil {
		log.Error("write run summary", zap.Error(err))
	}
	return loopErr
}

// loop ticks until game over, max_ticks, or ctx is done. The context is only
// observed between ticks.
func loop(ctx context.Context, s *sim.Simulation, cfg config.SimulationConfig, log *zap.Logger) error {
	var tick <-chan time.Time
	if cfg.Realtime {
		t := time.NewTicker(cfg.TickRate)
		defer t.Stop()
		tick = t.C
	}
	for n := 0; cfg.MaxTicks == 0 || n < cfg.MaxTicks; n++ {
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				log.Info("shutdown signal", zap.Error(context.Cause(ctx)))
				return nil
			}
		} else if err := ctx.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("shutdown signal")
				return nil
			}
			return err
		}
		s.Step(cfg.TickRate)
		if s.GameOver() {
			log.Info("game over", zap.Float64("at", s.State.Elapsed()))
			return nil
		}
	}
	enemies, projectiles := s.State.Counts()
	log.Info("tick limit reached",
		zap.Int("ticks", cfg.MaxTicks),
		zap.Int("enemies", enemies),
		zap.Int("projectiles", projectiles),
		zap.Int("waves_left", s.WavesRemaining()))
	return nil
}

// openStats connects, migrates and opens a run row.
func openStats(ctx context.Context, cfg *config.Config, scene *scripting.Scene, key uuid.UUID, log *zap.Logger) (*persist.DB, *persist.RunRepo, int64, error) {
	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(dbCtx, cfg.Database, log)
	if err != nil {
		return nil, nil, 0, err
	}
	printOK("PostgreSQL connected")

	if _, err := db.Migrate(dbCtx); err != nil {
		db.Close()
		return nil, nil, 0, fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")

	repo := persist.NewRunRepo(db)
	id, err := repo.CreateRun(dbCtx, persist.RunRow{
		Key:      key.String(),
		Scene:    scene.Name,
		Digest:   scene.Digest,
		TickRate: int(time.Second / cfg.Simulation.TickRate),
	})
	if err != nil {
		db.Close()
		return nil, nil, 0, err
	}
	return db, repo, id, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
