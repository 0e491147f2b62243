package repository

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
)

const pgCreateJobsTable = `
CREATE TABLE IF NOT EXISTS extraction_job (
	id            UUID PRIMARY KEY,
	bucket        TEXT NOT NULL,
	object_name   TEXT NOT NULL,
	content_type  TEXT NOT NULL DEFAULT '',
	event_type    TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	reason        TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	model_name    TEXT NOT NULL DEFAULT '',
	started_at    TIMESTAMPTZ NOT NULL,
	finished_at   TIMESTAMPTZ NOT NULL
)`

const pgInsertJob = `
INSERT INTO extraction_job
	(id, bucket, object_name, content_type, event_type, status, reason, error_message, model_name, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const pgListRecent = `
SELECT id, bucket, object_name, content_type, event_type, status, reason, error_message, model_name, started_at, finished_at
FROM extraction_job
ORDER BY started_at DESC
LIMIT $1`

type postgresJobRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func newPostgresJobRepository(ctx context.Context, cfg Config, logger *slog.Logger) (JobRepository, error) {
	pool, err := openPool(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgCreateJobsTable); err != nil {
		pool.Close()
		return nil, common.WrapError(err, "ensuring extraction_job table")
	}
	logger.Info("ledger ready", "backend", "postgres")
	return &postgresJobRepository{pool: pool, logger: logger}, nil
}

func (r *postgresJobRepository) RecordJob(ctx context.Context, job *ExtractionJob) error {
	if err := validateJob(job); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, pgInsertJob,
		job.ID, job.Bucket, job.ObjectName, job.ContentType, job.EventType,
		job.Status, job.Reason, job.ErrorMessage, job.ModelName,
		job.StartedAt, job.FinishedAt,
	)
	if err != nil {
		r.logger.Error("failed to record extraction job", "job_id", job.ID, "error", err)
		return common.WrapError(err, "inserting extraction job")
	}
	return nil
}

func (r *postgresJobRepository) ListRecent(ctx context.Context, limit int) ([]*ExtractionJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, pgListRecent, limit)
	if err != nil {
		return nil, common.WrapError(err, "listing extraction jobs")
	}
	defer rows.Close()

	var jobs []*ExtractionJob
	for rows.Next() {
		var j ExtractionJob
		if err := rows.Scan(
			&j.ID, &j.Bucket, &j.ObjectName, &j.ContentType, &j.EventType,
			&j.Status, &j.Reason, &j.ErrorMessage, &j.ModelName,
			&j.StartedAt, &j.FinishedAt,
		); err != nil {
			return nil, common.WrapError(err, "scanning extraction job")
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

func (r *postgresJobRepository) HealthCheck(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *postgresJobRepository) Close() {
	r.pool.Close()
}
