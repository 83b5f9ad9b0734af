package persist

import (
	"context"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// RunRow is the header written when a simulation run starts.
type RunRow struct {
	Key      string // run key carried by every log line of the run
	Scene    string
	Digest   string // scene script fingerprint
	TickRate int
}

// KillRow is one enemy removed during a run.
type KillRow struct {
	Entity string
	At     float64 // simulation seconds
}

// RunSummary is the final tally written when a run ends.
type RunSummary struct {
	SimSeconds  float64
	Kills       int
	Shots       int
	Waves       int
	DamageTaken float64
	DamageDealt float64
	Survived    bool
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// CreateRun inserts a run header and returns its id.
func (r *RunRepo) CreateRun(ctx context.Context, row RunRow) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (run_key, scene, scene_digest, tick_rate) VALUES ($1, $2, $3, $4) RETURNING id`,
		row.Key, row.Scene, row.Digest, row.TickRate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// AppendKills writes a batch of kills in a single transaction.
func (r *RunRepo) AppendKills(ctx context.Context, runID int64, kills []KillRow) error {
	if len(kills) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("kills begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, k := range kills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_kills (run_id, entity, at) VALUES ($1, $2, $3)`,
			runID, k.Entity, k.At,
		); err != nil {
			return fmt.Errorf("kills insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// FinishRun stamps the run's final tally.
func (r *RunRepo) FinishRun(ctx context.Context, runID int64, s RunSummary) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), sim_seconds = $2, kills = $3, shots = $4,
		        waves = $5, damage_taken = $6, damage_dealt = $7, survived = $8
		 WHERE id = $1`,
		runID, s.SimSeconds, s.Kills, s.Shots, s.Waves, s.DamageTaken, s.DamageDealt, s.Survived,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish run %d: %w", runID, ErrRunNotFound)
	}
	return nil
}
