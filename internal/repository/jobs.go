package repository

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

// ExtractionJob is one ledger row: the terminal outcome of a single webhook
// invocation. The extracted statement itself is deliberately not stored.
type ExtractionJob struct {
	ID           uuid.UUID `json:"id"`
	Bucket       string    `json:"bucket"`
	ObjectName   string    `json:"object_name"`
	ContentType  string    `json:"content_type,omitempty"`
	EventType    string    `json:"event_type,omitempty"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ModelName    string    `json:"model_name,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// JobRepository records pipeline outcomes. Writes are best-effort from the
// pipeline's point of view: a ledger failure never changes a terminal result.
type JobRepository interface {
	RecordJob(ctx context.Context, job *ExtractionJob) error
	ListRecent(ctx context.Context, limit int) ([]*ExtractionJob, error)
	HealthCheck(ctx context.Context) error
	Close()
}

// NewJobRepository selects a backend from the DSN: postgres URLs open a pgx
// pool, anything else is treated as a sqlite file path, and an empty DSN
// disables persistence.
func NewJobRepository(ctx context.Context, cfg Config, logger *slog.Logger) (JobRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch {
	case cfg.DSN == "":
		logger.Info("ledger disabled, outcomes will not be recorded")
		return NopJobRepository{}, nil
	case strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://"):
		return newPostgresJobRepository(ctx, cfg, logger)
	default:
		return newSQLiteJobRepository(ctx, cfg.DSN, logger)
	}
}

// NopJobRepository satisfies JobRepository without persisting anything.
type NopJobRepository struct{}

func (NopJobRepository) RecordJob(context.Context, *ExtractionJob) error { return nil }

func (NopJobRepository) ListRecent(context.Context, int) ([]*ExtractionJob, error) {
	return nil, nil
}

func (NopJobRepository) HealthCheck(context.Context) error { return nil }

func (NopJobRepository) Close() {}

func validateJob(job *ExtractionJob) error {
	if job == nil {
		return common.NewAppError("LEDGER_ERROR", "nil job", common.ErrInvalidInput)
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		return common.NewAppError("LEDGER_ERROR", "job status is required", common.ErrInvalidInput)
	}
	return nil
}
