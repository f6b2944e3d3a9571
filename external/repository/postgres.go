package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/speedkit/splitvault/internal/repository"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) InsertRun(ctx context.Context, input repository.InsertRunInput) (*repository.ImportedRun, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`INSERT INTO runs (game_name, category_name, attempt_count, offset_ns, platform_name, region_name, uses_emulator, external_id, source_path, segment_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, imported_at`,
		input.GameName, input.CategoryName, input.AttemptCount, input.Offset.Nanoseconds(),
		input.PlatformName, input.RegionName, input.UsesEmulator, input.ExternalID,
		input.SourcePath, len(input.Segments))
	run := repository.ImportedRun{
		GameName:     input.GameName,
		CategoryName: input.CategoryName,
		AttemptCount: input.AttemptCount,
		Offset:       input.Offset,
		PlatformName: input.PlatformName,
		RegionName:   input.RegionName,
		UsesEmulator: input.UsesEmulator,
		ExternalID:   input.ExternalID,
		SourcePath:   input.SourcePath,
		SegmentCount: len(input.Segments),
	}
	if err := row.Scan(&run.ID, &run.ImportedAt); err != nil {
		return nil, err
	}

	for _, seg := range input.Segments {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_segments (run_id, position, name, best_segment_real_ns, best_segment_game_ns)
			 VALUES ($1, $2, $3, $4, $5)`,
			run.ID, seg.Position, seg.Name, durationNS(seg.BestSegmentReal), durationNS(seg.BestSegmentGame)); err != nil {
			return nil, err
		}
	}
	for _, a := range input.Attempts {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_attempts (run_id, attempt_index, real_time_ns, game_time_ns, pause_time_ns, started_at, started_synced, ended_at, ended_synced)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			run.ID, a.AttemptIndex, durationNS(a.RealTime), durationNS(a.GameTime), durationNS(a.PauseTime),
			a.StartedAt, a.StartedSynced, a.EndedAt, a.EndedSynced); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *PostgresRepository) GetRunByID(ctx context.Context, id string) (*repository.ImportedRun, error) {
	row := r.pool.QueryRow(ctx, selectRunColumns+` WHERE id = $1`, id)
	run, err := scanRun(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return run, nil
}

func (r *PostgresRepository) ListRuns(ctx context.Context) ([]repository.ImportedRun, error) {
	rows, err := r.pool.Query(ctx, selectRunColumns+` ORDER BY imported_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.ImportedRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *run)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) ListSegmentsByRunID(ctx context.Context, runID string) ([]repository.RunSegment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, run_id, position, name, best_segment_real_ns, best_segment_game_ns
		 FROM run_segments WHERE run_id = $1 ORDER BY position ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.RunSegment
	for rows.Next() {
		var seg repository.RunSegment
		var realNS, gameNS *int64
		if err := rows.Scan(&seg.ID, &seg.RunID, &seg.Position, &seg.Name, &realNS, &gameNS); err != nil {
			return nil, err
		}
		seg.BestSegmentReal = nsDuration(realNS)
		seg.BestSegmentGame = nsDuration(gameNS)
		list = append(list, seg)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) ListAttemptsByRunID(ctx context.Context, runID string) ([]repository.RunAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, run_id, attempt_index, real_time_ns, game_time_ns, pause_time_ns, started_at, started_synced, ended_at, ended_synced
		 FROM run_attempts WHERE run_id = $1 ORDER BY attempt_index ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []repository.RunAttempt
	for rows.Next() {
		var a repository.RunAttempt
		var realNS, gameNS, pauseNS *int64
		if err := rows.Scan(&a.ID, &a.RunID, &a.AttemptIndex, &realNS, &gameNS, &pauseNS,
			&a.StartedAt, &a.StartedSynced, &a.EndedAt, &a.EndedSynced); err != nil {
			return nil, err
		}
		a.RealTime = nsDuration(realNS)
		a.GameTime = nsDuration(gameNS)
		a.PauseTime = nsDuration(pauseNS)
		list = append(list, a)
	}
	return list, rows.Err()
}

const selectRunColumns = `SELECT id, game_name, category_name, attempt_count, offset_ns, platform_name, region_name, uses_emulator, external_id, source_path, segment_count, imported_at FROM runs`

func scanRun(row pgx.Row) (*repository.ImportedRun, error) {
	var run repository.ImportedRun
	var offsetNS int64
	if err := row.Scan(&run.ID, &run.GameName, &run.CategoryName, &run.AttemptCount, &offsetNS,
		&run.PlatformName, &run.RegionName, &run.UsesEmulator, &run.ExternalID,
		&run.SourcePath, &run.SegmentCount, &run.ImportedAt); err != nil {
		return nil, err
	}
	run.Offset = time.Duration(offsetNS)
	return &run, nil
}

func durationNS(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	ns := d.Nanoseconds()
	return &ns
}

func nsDuration(ns *int64) *time.Duration {
	if ns == nil {
		return nil
	}
	d := time.Duration(*ns)
	return &d
}
