package repository

import (
	"context"
	"time"
)

type InsertSegmentInput struct {
	Position        int
	Name            string
	BestSegmentReal *time.Duration
	BestSegmentGame *time.Duration
}

type InsertAttemptInput struct {
	AttemptIndex  int32
	RealTime      *time.Duration
	GameTime      *time.Duration
	PauseTime     *time.Duration
	StartedAt     *time.Time
	StartedSynced bool
	EndedAt       *time.Time
	EndedSynced   bool
}

type InsertRunInput struct {
	GameName     string
	CategoryName string
	AttemptCount int64
	Offset       time.Duration
	PlatformName string
	RegionName   string
	UsesEmulator bool
	ExternalID   string
	SourcePath   string
	Segments     []InsertSegmentInput
	Attempts     []InsertAttemptInput
}

type RunRepository interface {
	// InsertRun stores the run with its segments and attempts atomically.
	InsertRun(ctx context.Context, input InsertRunInput) (*ImportedRun, error)
	GetRunByID(ctx context.Context, id string) (*ImportedRun, error)
	ListRuns(ctx context.Context) ([]ImportedRun, error)
}

type SegmentRepository interface {
	ListSegmentsByRunID(ctx context.Context, runID string) ([]RunSegment, error)
}

type AttemptRepository interface {
	ListAttemptsByRunID(ctx context.Context, runID string) ([]RunAttempt, error)
}

type Repository interface {
	RunRepository
	SegmentRepository
	AttemptRepository
}
