package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	ErrTickRate = errors.New("simulation.tick_rate must be positive")
	ErrDeadzone = errors.New("simulation.deadzone must be in [0, 1)")
	ErrWorkers  = errors.New("simulation.workers must not be negative")
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Simulation SimulationConfig `toml:"simulation"`
	Data       DataConfig       `toml:"data"`
	Database   DatabaseConfig   `toml:"database"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until game over or signal
	Workers  int           `toml:"workers"`   // 0 = GOMAXPROCS
	Deadzone float64       `toml:"deadzone"`
	Realtime bool          `toml:"realtime"`  // pace ticks on a wall-clock ticker
	CellSize float64       `toml:"cell_size"` // physics broadphase cell edge
}

type DataConfig struct {
	Actors      string `toml:"actors"`
	Projectiles string `toml:"projectiles"`
	Scene       string `toml:"scene"`
	ScriptsDir  string `toml:"scripts_dir"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables run statistics
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
	FlushInterval   int           `toml:"flush_interval"` // ticks between kill log flushes
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return ErrTickRate
	}
	if c.Simulation.Deadzone < 0 || c.Simulation.Deadzone >= 1 {
		return ErrDeadzone
	}
	if c.Simulation.Workers < 0 {
		return ErrWorkers
	}
	return nil
}

// PersistEnabled reports whether run statistics go to PostgreSQL.
func (c *Config) PersistEnabled() bool { return c.Database.DSN != "" }

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "survivors",
		},
		Simulation: SimulationConfig{
			TickRate: 100 * time.Millisecond,
			MaxTicks: 600,
			Deadzone: 0.15,
			CellSize: 4,
		},
		Data: DataConfig{
			Actors:      "data/yaml/actors.yaml",
			Projectiles: "data/yaml/projectiles.yaml",
			Scene:       "scripts/scene.lua",
			ScriptsDir:  "scripts",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			FlushInterval:   50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
