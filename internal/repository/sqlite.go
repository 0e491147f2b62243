package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

const sqliteCreateJobsTable = `
CREATE TABLE IF NOT EXISTS extraction_job (
	id            TEXT PRIMARY KEY,
	bucket        TEXT NOT NULL,
	object_name   TEXT NOT NULL,
	content_type  TEXT NOT NULL DEFAULT '',
	event_type    TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	reason        TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	model_name    TEXT NOT NULL DEFAULT '',
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL
)`

const sqliteInsertJob = `
INSERT INTO extraction_job
	(id, bucket, object_name, content_type, event_type, status, reason, error_message, model_name, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const sqliteListRecent = `
SELECT id, bucket, object_name, content_type, event_type, status, reason, error_message, model_name, started_at, finished_at
FROM extraction_job
ORDER BY started_at DESC
LIMIT ?`

// sqliteJobRepository is the zero-dependency local backend, used for
// development and tests. Timestamps are stored as RFC 3339 strings.
type sqliteJobRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func newSQLiteJobRepository(ctx context.Context, path string, logger *slog.Logger) (JobRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "opening sqlite ledger")
	}
	// modernc sqlite serializes writes; a single connection avoids lock errors.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteCreateJobsTable); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "ensuring extraction_job table")
	}
	logger.Info("ledger ready", "backend", "sqlite", "path", path)
	return &sqliteJobRepository{db: db, logger: logger}, nil
}

func (r *sqliteJobRepository) RecordJob(ctx context.Context, job *ExtractionJob) error {
	if err := validateJob(job); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, sqliteInsertJob,
		job.ID.String(), job.Bucket, job.ObjectName, job.ContentType, job.EventType,
		job.Status, job.Reason, job.ErrorMessage, job.ModelName,
		job.StartedAt.UTC().Format(time.RFC3339Nano),
		job.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		r.logger.Error("failed to record extraction job", "job_id", job.ID, "error", err)
		return common.WrapError(err, "inserting extraction job")
	}
	return nil
}

func (r *sqliteJobRepository) ListRecent(ctx context.Context, limit int) ([]*ExtractionJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, sqliteListRecent, limit)
	if err != nil {
		return nil, common.WrapError(err, "listing extraction jobs")
	}
	defer rows.Close()

	var jobs []*ExtractionJob
	for rows.Next() {
		var (
			j                     ExtractionJob
			id, started, finished string
		)
		if err := rows.Scan(
			&id, &j.Bucket, &j.ObjectName, &j.ContentType, &j.EventType,
			&j.Status, &j.Reason, &j.ErrorMessage, &j.ModelName,
			&started, &finished,
		); err != nil {
			return nil, common.WrapError(err, "scanning extraction job")
		}
		if j.ID, err = uuid.Parse(id); err != nil {
			return nil, common.WrapError(err, "parsing job id")
		}
		if j.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, common.WrapError(err, "parsing started_at")
		}
		if j.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, common.WrapError(err, "parsing finished_at")
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (r *sqliteJobRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteJobRepository) Close() {
	if err := r.db.Close(); err != nil {
		r.logger.Warn("closing sqlite ledger", "error", err)
	}
}
