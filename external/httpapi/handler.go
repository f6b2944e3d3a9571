package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/speedkit/splitvault/internal/ingest"
	"github.com/speedkit/splitvault/internal/parser"
	"github.com/speedkit/splitvault/internal/repository"
)

type Handler struct {
	importer ingest.Importer
	repo     repository.Repository
}

func NewHandler(importer ingest.Importer, repo repository.Repository) *Handler {
	return &Handler{importer: importer, repo: repo}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/runs", h.ImportRun)
	e.GET("/api/v1/runs", h.ListRuns)
	e.GET("/api/v1/runs/:run_id", h.GetRun)
	e.GET("/health", h.Health)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

type runResponse struct {
	ID            string  `json:"id"`
	GameName      string  `json:"game_name"`
	CategoryName  string  `json:"category_name"`
	AttemptCount  int64   `json:"attempt_count"`
	OffsetSeconds float64 `json:"offset_seconds"`
	PlatformName  string  `json:"platform_name,omitempty"`
	RegionName    string  `json:"region_name,omitempty"`
	UsesEmulator  bool    `json:"uses_emulator"`
	ExternalID    string  `json:"external_id,omitempty"`
	SourcePath    string  `json:"source_path,omitempty"`
	SegmentCount  int     `json:"segment_count"`
	ImportedAt    string  `json:"imported_at"`
}

type segmentResponse struct {
	Position               int      `json:"position"`
	Name                   string   `json:"name"`
	BestSegmentRealSeconds *float64 `json:"best_segment_real_seconds,omitempty"`
	BestSegmentGameSeconds *float64 `json:"best_segment_game_seconds,omitempty"`
}

type attemptResponse struct {
	AttemptIndex     int32    `json:"attempt_index"`
	RealTimeSeconds  *float64 `json:"real_time_seconds,omitempty"`
	GameTimeSeconds  *float64 `json:"game_time_seconds,omitempty"`
	PauseTimeSeconds *float64 `json:"pause_time_seconds,omitempty"`
	StartedAt        *string  `json:"started_at,omitempty"`
	StartedSynced    bool     `json:"started_synced"`
	EndedAt          *string  `json:"ended_at,omitempty"`
	EndedSynced      bool     `json:"ended_synced"`
}

// ImportRun ingests one uploaded save file.
// POST /api/v1/runs
func (h *Handler) ImportRun(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file is required"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to open uploaded file"})
	}
	defer func() {
		_ = f.Close()
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read uploaded file"})
	}

	result, err := h.importer.Import(ctx, fileHeader.Filename, data)
	if err != nil {
		var pe *parser.Error
		if errors.As(err, &pe) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{
				"error": pe.Error(),
				"kind":  pe.Kind.String(),
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"import_id": result.ImportID,
		"run":       toRunResponse(result.Run),
	})
}

// ListRuns lists archived runs, newest first.
// GET /api/v1/runs
func (h *Handler) ListRuns(c echo.Context) error {
	runs, err := h.repo.ListRuns(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	list := make([]runResponse, 0, len(runs))
	for i := range runs {
		list = append(list, toRunResponse(&runs[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"runs": list})
}

// GetRun returns one archived run with its segments and attempts.
// GET /api/v1/runs/:run_id
func (h *Handler) GetRun(c echo.Context) error {
	ctx := c.Request().Context()
	runID := c.Param("run_id")

	run, err := h.repo.GetRunByID(ctx, runID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if run == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	segments, err := h.repo.ListSegmentsByRunID(ctx, runID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	attempts, err := h.repo.ListAttemptsByRunID(ctx, runID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	segs := make([]segmentResponse, 0, len(segments))
	for _, s := range segments {
		segs = append(segs, segmentResponse{
			Position:               s.Position,
			Name:                   s.Name,
			BestSegmentRealSeconds: durationSeconds(s.BestSegmentReal),
			BestSegmentGameSeconds: durationSeconds(s.BestSegmentGame),
		})
	}
	atts := make([]attemptResponse, 0, len(attempts))
	for _, a := range attempts {
		atts = append(atts, attemptResponse{
			AttemptIndex:     a.AttemptIndex,
			RealTimeSeconds:  durationSeconds(a.RealTime),
			GameTimeSeconds:  durationSeconds(a.GameTime),
			PauseTimeSeconds: durationSeconds(a.PauseTime),
			StartedAt:        timeRFC3339(a.StartedAt),
			StartedSynced:    a.StartedSynced,
			EndedAt:          timeRFC3339(a.EndedAt),
			EndedSynced:      a.EndedSynced,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"run":      toRunResponse(run),
		"segments": segs,
		"attempts": atts,
	})
}

func toRunResponse(run *repository.ImportedRun) runResponse {
	return runResponse{
		ID:            run.ID,
		GameName:      run.GameName,
		CategoryName:  run.CategoryName,
		AttemptCount:  run.AttemptCount,
		OffsetSeconds: run.Offset.Seconds(),
		PlatformName:  run.PlatformName,
		RegionName:    run.RegionName,
		UsesEmulator:  run.UsesEmulator,
		ExternalID:    run.ExternalID,
		SourcePath:    run.SourcePath,
		SegmentCount:  run.SegmentCount,
		ImportedAt:    run.ImportedAt.Format(time.RFC3339),
	}
}

func durationSeconds(d *time.Duration) *float64 {
	if d == nil {
		return nil
	}
	s := d.Seconds()
	return &s
}

func timeRFC3339(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
