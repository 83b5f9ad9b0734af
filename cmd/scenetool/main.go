// scenetool validates, dumps and dry-runs scene scripts against the YAML
// templates without touching the database.
//
// Usage:
//
//	go run ./cmd/scenetool <command> [-config path] [-out path] [-ticks n] [-profile cpu|mem]
//
// Commands: check, dump, dry
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/l1jgo/survivors/internal/config"
	"github.com/l1jgo/survivors/internal/data"
	"github.com/l1jgo/survivors/internal/physics"
	"github.com/l1jgo/survivors/internal/scripting"
	"github.com/l1jgo/survivors/internal/sim"
	"github.com/l1jgo/survivors/internal/world"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML output structs
// ---------------------------------------------------------------------------

type sceneYAML struct {
	Name    string      `yaml:"name"`
	Player  actorYAML   `yaml:"player"`
	Enemies []actorYAML `yaml:"enemies"`
	Waves   []waveYAML  `yaml:"waves"`
}

type actorYAML struct {
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	MaxHealth float64 `yaml:"max_health"`
	MoveSpeed float64 `yaml:"move_speed"`
	Power     float64 `yaml:"attack_power,omitempty"`
}

type waveYAML struct {
	At      float64     `yaml:"at"`
	Enemies []actorYAML `yaml:"enemies"`
}

type summaryYAML struct {
	Scene       string  `yaml:"scene"`
	Ticks       int     `yaml:"ticks"`
	SimSeconds  float64 `yaml:"sim_seconds"`
	Kills       int     `yaml:"kills"`
	Shots       int     `yaml:"shots"`
	Waves       int     `yaml:"waves"`
	DamageTaken float64 `yaml:"damage_taken"`
	DamageDealt float64 `yaml:"damage_dealt"`
	Survived    bool    `yaml:"survived"`
	EnemiesLeft int     `yaml:"enemies_left"`
}

func enemyYAML(e world.EnemySpec) actorYAML {
	return actorYAML{
		X:         e.Position.X,
		Y:         e.Position.Y,
		MaxHealth: e.MaxHealth,
		MoveSpeed: e.MoveSpeed,
		Power:     e.AttackPower,
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

type loaded struct {
	cfg         *config.Config
	projectiles *data.ProjectileTable
	engine      *scripting.Engine
	scene       *scripting.Scene
	setup       *scripting.Setup
}

func load(cfgPath string, log *zap.Logger) (*loaded, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	actors, err := data.LoadActorTable(cfg.Data.Actors)
	if err != nil {
		return nil, err
	}
	projectiles, err := data.LoadProjectileTable(cfg.Data.Projectiles)
	if err != nil {
		return nil, err
	}
	if err := actors.Check(projectiles); err != nil {
		return nil, err
	}
	engine, err := scripting.NewEngine(cfg.Data.ScriptsDir, log)
	if err != nil {
		return nil, err
	}
	scene, err := engine.LoadScene(cfg.Data.Scene)
	if err != nil {
		engine.Close()
		return nil, err
	}
	setup, err := scene.Resolve(actors)
	if err != nil {
		engine.Close()
		return nil, err
	}
	return &loaded{cfg: cfg, projectiles: projectiles, engine: engine, scene: scene, setup: setup}, nil
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func check(l *loaded, w io.Writer) error {
	total := len(l.setup.Enemies)
	for _, wv := range l.setup.Waves {
		total += len(wv.Enemies)
	}
	fmt.Fprintf(w, "scene %q: %d initial enemies, %d waves, %d enemies total\n",
		l.scene.Name, len(l.setup.Enemies), len(l.setup.Waves), total)
	return nil
}

func dump(l *loaded, w io.Writer) error {
	p := l.setup.Player
	out := sceneYAML{
		Name: l.scene.Name,
		Player: actorYAML{
			X:         p.Position.X,
			Y:         p.Position.Y,
			MaxHealth: p.MaxHealth,
			MoveSpeed: p.MoveSpeed,
		},
	}
	for _, e := range l.setup.Enemies {
		out.Enemies = append(out.Enemies, enemyYAML(e))
	}
	for _, wv := range l.setup.Waves {
		wy := waveYAML{At: wv.At}
		for _, e := range wv.Enemies {
			wy.Enemies = append(wy.Enemies, enemyYAML(e))
		}
		out.Waves = append(out.Waves, wy)
	}
	return writeYAML(w, out, "# resolved scene "+l.scene.Name)
}

// dry runs the scene in memory as fast as possible for up to ticks ticks.
func dry(l *loaded, w io.Writer, ticks int, log *zap.Logger) error {
	phys := physics.New(l.cfg.Simulation.CellSize, nil, log)
	wctx := world.Context{Physics: phys}
	if ap := l.engine.Autopilot(); ap != nil {
		wctx.Input = ap
	}
	s := sim.New(wctx, sim.Options{
		Workers:  l.cfg.Simulation.Workers,
		Deadzone: l.cfg.Simulation.Deadzone,
		Waves:    l.setup.Waves,
	}, log)
	phys.Bind(s.State)
	l.projectiles.RegisterAll(s.State)
	s.State.SpawnPlayer(l.setup.Player, nil)
	for _, e := range l.setup.Enemies {
		s.State.SpawnEnemy(e, nil)
	}
	s.Flush()

	n := 0
	for ; n < ticks && !s.GameOver(); n++ {
		s.Step(l.cfg.Simulation.TickRate)
	}
	if err := s.Finish(context.Background()); err != nil {
		return err
	}
	sum := s.Stats()
	enemies, _ := s.State.Counts()
	return writeYAML(w, summaryYAML{
		Scene:       l.scene.Name,
		Ticks:       n,
		SimSeconds:  sum.SimSeconds,
		Kills:       sum.Kills,
		Shots:       sum.Shots,
		Waves:       sum.Waves,
		DamageTaken: sum.DamageTaken,
		DamageDealt: sum.DamageDealt,
		Survived:    sum.Survived,
		EnemiesLeft: enemies,
	}, "")
}

// startProfile starts the named profile and returns its stop function.
func startProfile(kind string) func() {
	var mode func(*profile.Profile)
	switch kind {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		return func() {}
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

// ---------------------------------------------------------------------------
// YAML writer
// ---------------------------------------------------------------------------

func writeYAML(w io.Writer, v any, comment string) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if comment != "" {
		fmt.Fprintln(w, comment)
	}
	_, err = w.Write(out)
	return err
}

// ---------------------------------------------------------------------------
// main
// ---------------------------------------------------------------------------

func printUsage() {
	fmt.Println("Usage: scenetool <command> [-config path] [-out path] [-ticks n] [-profile cpu|mem] [-v]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  check  Load templates and the scene, report what it spawns")
	fmt.Println("  dump   Write the resolved scene as YAML")
	fmt.Println("  dry    Run the scene headless in memory and write a summary")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfgPath := fs.String("config", "config/server.toml", "server config")
	outPath := fs.String("out", "", "output file (default stdout)")
	ticks := fs.Int("ticks", 600, "tick limit for dry")
	verbose := fs.Bool("v", false, "log simulation events")
	prof := fs.String("profile", "", "write a cpu or mem profile of dry into the working directory")
	_ = fs.Parse(os.Args[2:])

	log := zap.NewNop()
	if *verbose {
		log, _ = zap.NewDevelopment()
	}
	defer log.Sync()

	l, err := load(*cfgPath, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	defer l.engine.Close()

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: create %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	start := time.Now()
	switch cmd {
	case "check":
		err = check(l, w)
	case "dump":
		err = dump(l, w)
	case "dry":
		stop := startProfile(*prof)
		err = dry(l, w, *ticks, log)
		stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: %v\n", cmd, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Done in %s\n", time.Since(start).Round(time.Millisecond))
}
