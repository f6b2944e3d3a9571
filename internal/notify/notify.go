package notify

import "context"

// ImportAnnouncement summarizes one archived run for human-facing channels.
type ImportAnnouncement struct {
	GameName     string
	CategoryName string
	AttemptCount int64
	SegmentCount int
	SourcePath   string
}

type Announcer interface {
	AnnounceImport(ctx context.Context, a ImportAnnouncement) error
}

// Noop is the announcer used when no announcement channel is configured.
type Noop struct{}

func (Noop) AnnounceImport(context.Context, ImportAnnouncement) error {
	return nil
}
