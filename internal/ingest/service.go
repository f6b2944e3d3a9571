// Package ingest turns uploaded save files into archived runs: it parses
// the document, persists the result and fans out notifications.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/speedkit/splitvault/internal/config"
	"github.com/speedkit/splitvault/internal/notify"
	"github.com/speedkit/splitvault/internal/parser"
	"github.com/speedkit/splitvault/internal/repository"
	"github.com/speedkit/splitvault/internal/splits"
	"github.com/speedkit/splitvault/internal/webhook"
)

type Result struct {
	ImportID string
	Run      *repository.ImportedRun
}

type Importer interface {
	Import(ctx context.Context, source string, data []byte) (*Result, error)
}

type Service struct {
	cfg       *config.Config
	repo      repository.Repository
	webhook   webhook.Sender
	announcer notify.Announcer
}

func NewService(cfg *config.Config, repo repository.Repository, wh webhook.Sender, announcer notify.Announcer) *Service {
	return &Service{
		cfg:       cfg,
		repo:      repo,
		webhook:   wh,
		announcer: announcer,
	}
}

// Import parses one save-file document and archives it. A parse failure is
// returned as-is (a *parser.Error) and nothing is persisted. Notification
// failures after the run is stored are logged, not returned: the archive is
// already the source of truth at that point.
func (s *Service) Import(ctx context.Context, source string, data []byte) (*Result, error) {
	run, err := parser.Parse(bytes.NewReader(data), source)
	if err != nil {
		return nil, err
	}

	importID := uuid.NewString()
	slog.Info("save file parsed", "import_id", importID, "source", source,
		"game", run.GameName, "category", run.CategoryName, "segments", len(run.Segments))

	stored, err := s.repo.InsertRun(ctx, buildInsertRunInput(run))
	if err != nil {
		return nil, fmt.Errorf("failed to archive run: %w", err)
	}
	slog.Info("run archived", "import_id", importID, "run_id", stored.ID)

	payload := buildImportWebhookPayload(importID, stored, run)
	if err := s.webhook.SendImport(ctx, payload); err != nil {
		slog.Error("import webhook failed", "error", err, "import_id", importID, "run_id", stored.ID)
	}
	if err := s.announcer.AnnounceImport(ctx, buildImportAnnouncement(stored)); err != nil {
		slog.Error("import announcement failed", "error", err, "import_id", importID, "run_id", stored.ID)
	}

	return &Result{ImportID: importID, Run: stored}, nil
}

func buildImportAnnouncement(stored *repository.ImportedRun) notify.ImportAnnouncement {
	return notify.ImportAnnouncement{
		GameName:     stored.GameName,
		CategoryName: stored.CategoryName,
		AttemptCount: stored.AttemptCount,
		SegmentCount: stored.SegmentCount,
		SourcePath:   stored.SourcePath,
	}
}

func buildInsertRunInput(run *splits.Run) repository.InsertRunInput {
	input := repository.InsertRunInput{
		GameName:     run.GameName,
		CategoryName: run.CategoryName,
		AttemptCount: int64(run.AttemptCount),
		Offset:       run.Offset.Duration(),
		PlatformName: run.Metadata.PlatformName,
		RegionName:   run.Metadata.RegionName,
		UsesEmulator: run.Metadata.UsesEmulator,
		ExternalID:   run.Metadata.RunID,
		SourcePath:   run.Path,
	}
	for i, seg := range run.Segments {
		input.Segments = append(input.Segments, repository.InsertSegmentInput{
			Position:        i,
			Name:            seg.Name,
			BestSegmentReal: spanDuration(seg.BestSegmentTime.RealTime),
			BestSegmentGame: spanDuration(seg.BestSegmentTime.GameTime),
		})
	}
	for _, a := range run.AttemptHistory {
		attempt := repository.InsertAttemptInput{
			AttemptIndex: a.Index,
			RealTime:     spanDuration(a.Time.RealTime),
			GameTime:     spanDuration(a.Time.GameTime),
			PauseTime:    spanDuration(a.PauseTime),
		}
		if a.Started != nil {
			started := a.Started.Time
			attempt.StartedAt = &started
			attempt.StartedSynced = a.Started.Synced
		}
		if a.Ended != nil {
			ended := a.Ended.Time
			attempt.EndedAt = &ended
			attempt.EndedSynced = a.Ended.Synced
		}
		input.Attempts = append(input.Attempts, attempt)
	}
	return input
}
