package ingest

import (
	"time"

	"github.com/speedkit/splitvault/internal/repository"
	"github.com/speedkit/splitvault/internal/splits"
	"github.com/speedkit/splitvault/internal/webhook"
)

func buildImportWebhookPayload(importID string, stored *repository.ImportedRun, run *splits.Run) webhook.ImportWebhookPayload {
	segments := make([]webhook.ImportWebhookSegment, 0, len(run.Segments))
	for i, seg := range run.Segments {
		segments = append(segments, webhook.ImportWebhookSegment{
			Position:               i,
			Name:                   seg.Name,
			BestSegmentRealSeconds: spanSeconds(seg.BestSegmentTime.RealTime),
			BestSegmentGameSeconds: spanSeconds(seg.BestSegmentTime.GameTime),
		})
	}

	return webhook.ImportWebhookPayload{
		SchemaVersion:       webhook.ImportWebhookSchemaVersion,
		ImportID:            importID,
		RunID:               stored.ID,
		ExternalID:          run.Metadata.RunID,
		GameName:            run.GameName,
		CategoryName:        run.CategoryName,
		AttemptCount:        int64(run.AttemptCount),
		AttemptHistoryCount: len(run.AttemptHistory),
		SegmentCount:        len(run.Segments),
		CustomComparisons:   run.CustomComparisons,
		SourcePath:          run.Path,
		ImportedAt:          stored.ImportedAt.Format(time.RFC3339),
		Segments:            segments,
	}
}

func spanSeconds(ts *splits.TimeSpan) *float64 {
	if ts == nil {
		return nil
	}
	s := ts.Seconds()
	return &s
}

func spanDuration(ts *splits.TimeSpan) *time.Duration {
	if ts == nil {
		return nil
	}
	d := ts.Duration()
	return &d
}
