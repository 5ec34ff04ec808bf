package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/l1jgo/groundzero/internal/config"
	"github.com/l1jgo/groundzero/internal/groundzero"
)

// RunRecord is one finished devastation run.
type RunRecord struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	LayoutDigest string
	Tile         int
	Seed         int64
	Scenario     config.ScenarioConfig
	SessionTicks int
	Report       groundzero.Report
}

// RunRow is a saved run header as read back.
type RunRow struct {
	ID           int64
	StartedAt    time.Time
	LayoutDigest string
	Tile         int
	Percent      int
	Aborted      bool
	Counts       map[string]int
}

type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Save writes the run header and its non-zero counters in one transaction
// and returns the new run id.
func (r *RunRepo) Save(ctx context.Context, rec RunRecord) (int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("save run begin: %w", err)
	}
	defer tx.Rollback(ctx)

	s := rec.Scenario
	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO devastation_runs (started_at, finished_at, layout_digest, map_tile, map_seed,
		        resource_return_percent, keep_bodies, kill_plants, stone_terrain_only,
		        forbid_everything, trees_drop_wood, rock_terrain, session_ticks, aborted, abort_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		rec.StartedAt, rec.FinishedAt, rec.LayoutDigest, rec.Tile, rec.Seed,
		s.ResourceReturn, s.KeepBodies, s.KillPlants, s.StoneTerrainOnly,
		s.ForbidEverything, s.TreesDropWood, rec.Report.RockTerrain, rec.SessionTicks,
		rec.Report.Aborted, rec.Report.AbortReason,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save run insert: %w", err)
	}

	for _, c := range runCounts(rec.Report) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO devastation_run_counts (run_id, name, value) VALUES ($1, $2, $3)`,
			id, c.Name, c.Value,
		); err != nil {
			return 0, fmt.Errorf("save run count %s: %w", c.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("save run commit: %w", err)
	}
	return id, nil
}

// Recent returns the latest runs for a layout, newest first.
func (r *RunRepo) Recent(ctx context.Context, digest string, limit int) ([]RunRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, started_at, layout_digest, map_tile, resource_return_percent, aborted
		 FROM devastation_runs WHERE layout_digest = $1
		 ORDER BY started_at DESC, id DESC LIMIT $2`, digest, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var percent int16
		if err := rows.Scan(&row.ID, &row.StartedAt, &row.LayoutDigest, &row.Tile, &percent, &row.Aborted); err != nil {
			return nil, err
		}
		row.Percent = int(percent)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		counts, err := r.counts(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Counts = counts
	}
	return out, nil
}

func (r *RunRepo) counts(ctx context.Context, id int64) (map[string]int, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT name, value FROM devastation_run_counts WHERE run_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var value int32
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		counts[name] = int(value)
	}
	return counts, rows.Err()
}

// runCounts keeps the counters worth a row.
func runCounts(rep groundzero.Report) []groundzero.Count {
	var out []groundzero.Count
	for _, c := range rep.Counts() {
		if c.Value != 0 {
			out = append(out, c)
		}
	}
	return out
}
