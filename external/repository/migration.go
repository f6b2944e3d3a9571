package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		game_name TEXT NOT NULL,
		category_name TEXT NOT NULL,
		attempt_count BIGINT NOT NULL DEFAULT 0,
		offset_ns BIGINT NOT NULL DEFAULT 0,
		platform_name TEXT NOT NULL DEFAULT '',
		region_name TEXT NOT NULL DEFAULT '',
		uses_emulator BOOLEAN NOT NULL DEFAULT FALSE,
		external_id TEXT NOT NULL DEFAULT '',
		source_path TEXT NOT NULL DEFAULT '',
		segment_count INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_imported_at ON runs (imported_at DESC)`,
	`CREATE TABLE IF NOT EXISTS run_segments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		best_segment_real_ns BIGINT,
		best_segment_game_ns BIGINT,
		UNIQUE(run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_segments_run ON run_segments (run_id, position)`,
	`CREATE TABLE IF NOT EXISTS run_attempts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		attempt_index INTEGER NOT NULL,
		real_time_ns BIGINT,
		game_time_ns BIGINT,
		pause_time_ns BIGINT,
		started_at TIMESTAMPTZ,
		started_synced BOOLEAN NOT NULL DEFAULT FALSE,
		ended_at TIMESTAMPTZ,
		ended_synced BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_attempts_run ON run_attempts (run_id, attempt_index)`,
}

func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	for _, s := range migrationStatements {
		stmt := strings.TrimSpace(s)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
