package webhook

import "context"

const ImportWebhookSchemaVersion = "2026-08-31"

type ImportWebhookSegment struct {
	Position               int      `json:"position"`
	Name                   string   `json:"name"`
	BestSegmentRealSeconds *float64 `json:"best_segment_real_seconds,omitempty"`
	BestSegmentGameSeconds *float64 `json:"best_segment_game_seconds,omitempty"`
}

type ImportWebhookPayload struct {
	SchemaVersion       string                 `json:"schema_version"`
	ImportID            string                 `json:"import_id"`
	RunID               string                 `json:"run_id"`
	ExternalID          string                 `json:"external_id,omitempty"`
	GameName            string                 `json:"game_name"`
	CategoryName        string                 `json:"category_name"`
	AttemptCount        int64                  `json:"attempt_count"`
	AttemptHistoryCount int                    `json:"attempt_history_count"`
	SegmentCount        int                    `json:"segment_count"`
	CustomComparisons   []string               `json:"custom_comparisons,omitempty"`
	SourcePath          string                 `json:"source_path,omitempty"`
	ImportedAt          string                 `json:"imported_at"`
	Segments            []ImportWebhookSegment `json:"segments"`
}

type Sender interface {
	SendImport(ctx context.Context, payload ImportWebhookPayload) error
}
