package repository

import "time"

// ImportedRun is one archived save-file import.
type ImportedRun struct {
	ID           string
	GameName     string
	CategoryName string
	AttemptCount int64
	Offset       time.Duration
	PlatformName string
	RegionName   string
	UsesEmulator bool
	ExternalID   string
	SourcePath   string
	SegmentCount int
	ImportedAt   time.Time
}

// RunSegment is one checkpoint of an archived run, in split order.
type RunSegment struct {
	ID              string
	RunID           string
	Position        int
	Name            string
	BestSegmentReal *time.Duration
	BestSegmentGame *time.Duration
}

// RunAttempt is one historical attempt of an archived run.
type RunAttempt struct {
	ID            string
	RunID         string
	AttemptIndex  int32
	RealTime      *time.Duration
	GameTime      *time.Duration
	PauseTime     *time.Duration
	StartedAt     *time.Time
	StartedSynced bool
	EndedAt       *time.Time
	EndedSynced   bool
}
