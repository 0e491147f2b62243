package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newMemoryLedger(t *testing.T) JobRepository {
	t.Helper()
	repo, err := NewJobRepository(context.Background(), Config{DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("opening in-memory ledger: %v", err)
	}
	t.Cleanup(repo.Close)
	return repo
}

func TestDispatchEmptyDSN(t *testing.T) {
	repo, err := NewJobRepository(context.Background(), Config{}, nil)
	if err != nil {
		t.Fatalf("NewJobRepository: %v", err)
	}
	if _, ok := repo.(NopJobRepository); !ok {
		t.Fatalf("empty DSN selected %T, want NopJobRepository", repo)
	}
	if err := repo.RecordJob(context.Background(), &ExtractionJob{Status: "success"}); err != nil {
		t.Errorf("nop RecordJob: %v", err)
	}
	jobs, err := repo.ListRecent(context.Background(), 5)
	if err != nil || jobs != nil {
		t.Errorf("nop ListRecent = %v, %v", jobs, err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := newMemoryLedger(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	first := &ExtractionJob{
		Bucket:      "statements",
		ObjectName:  "feb.pdf",
		ContentType: "application/pdf",
		EventType:   "OBJECT_FINALIZE",
		Status:      "success",
		ModelName:   "gemini-2.5-flash",
		StartedAt:   base,
		FinishedAt:  base.Add(3 * time.Second),
	}
	second := &ExtractionJob{
		Bucket:       "statements",
		ObjectName:   "march.pdf",
		Status:       "error",
		Reason:       "extraction-failed",
		ErrorMessage: "backend unavailable",
		StartedAt:    base.Add(time.Second),
		FinishedAt:   base.Add(2 * time.Second),
	}
	for _, job := range []*ExtractionJob{first, second} {
		if err := repo.RecordJob(ctx, job); err != nil {
			t.Fatalf("RecordJob(%s): %v", job.ObjectName, err)
		}
		if job.ID == uuid.Nil {
			t.Fatalf("RecordJob left %s without an id", job.ObjectName)
		}
	}

	jobs, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("ListRecent returned %d rows, want 2", len(jobs))
	}
	// Newest started_at first.
	if jobs[0].ObjectName != "march.pdf" || jobs[1].ObjectName != "feb.pdf" {
		t.Fatalf("order = [%s, %s], want [march.pdf, feb.pdf]", jobs[0].ObjectName, jobs[1].ObjectName)
	}

	got := jobs[1]
	if got.ID != first.ID {
		t.Errorf("id = %s, want %s", got.ID, first.ID)
	}
	if got.Bucket != "statements" || got.ContentType != "application/pdf" || got.EventType != "OBJECT_FINALIZE" {
		t.Errorf("row = %+v", got)
	}
	if got.ModelName != "gemini-2.5-flash" || got.Status != "success" || got.Reason != "" {
		t.Errorf("row = %+v", got)
	}
	if !got.StartedAt.Equal(first.StartedAt) || !got.FinishedAt.Equal(first.FinishedAt) {
		t.Errorf("timestamps = %s / %s", got.StartedAt, got.FinishedAt)
	}
	if jobs[0].ErrorMessage != "backend unavailable" {
		t.Errorf("error row = %+v", jobs[0])
	}
}

func TestSQLiteListRecentLimit(t *testing.T) {
	repo := newMemoryLedger(t)
	ctx := context.Background()

	base := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		job := &ExtractionJob{
			Bucket:     "b",
			ObjectName: "x.pdf",
			Status:     "ignored",
			StartedAt:  base.Add(time.Duration(i) * time.Second),
			FinishedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.RecordJob(ctx, job); err != nil {
			t.Fatalf("RecordJob: %v", err)
		}
	}

	jobs, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("ListRecent(3) returned %d rows", len(jobs))
	}
}

func TestRecordJobValidation(t *testing.T) {
	repo := newMemoryLedger(t)
	ctx := context.Background()

	if err := repo.RecordJob(ctx, nil); err == nil {
		t.Error("nil job accepted")
	}
	if err := repo.RecordJob(ctx, &ExtractionJob{Bucket: "b", ObjectName: "x.pdf"}); err == nil {
		t.Error("job without status accepted")
	}
}

func TestSQLiteHealthCheck(t *testing.T) {
	repo := newMemoryLedger(t)
	if err := repo.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}
