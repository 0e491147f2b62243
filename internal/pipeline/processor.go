package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/statement-extractor/constants"
	"github.com/joseph-ayodele/statement-extractor/internal/common"
	"github.com/joseph-ayodele/statement-extractor/internal/event"
	"github.com/joseph-ayodele/statement-extractor/internal/llm"
	"github.com/joseph-ayodele/statement-extractor/internal/repository"
)

// Result is the single terminal outcome of one invocation. It is returned by
// value; the "ignored" branch is a normal result, not an error.
type Result struct {
	Status    constants.Status `json:"status"`
	Reason    constants.Reason `json:"reason,omitempty"`
	Message   string           `json:"message"`
	Detail    string           `json:"detail,omitempty"`
	Statement json.RawMessage  `json:"statement,omitempty"`
}

// HTTPStatus maps the result onto the webhook's response codes.
func (r Result) HTTPStatus() int {
	switch r.Status {
	case constants.StatusSuccess, constants.StatusIgnored:
		return 200
	case constants.StatusError:
		if r.Reason == constants.ReasonDecodeError {
			return 400
		}
		return 500
	default:
		return 500
	}
}

// Processor composes decode, filter and extraction into one linear pass.
// It holds no mutable state; concurrent invocations share only the extractor
// and the ledger, both of which are safe for concurrent use.
type Processor struct {
	extractor llm.StatementExtractor
	jobs      repository.JobRepository
	logger    *slog.Logger
	modelName string
}

func NewProcessor(extractor llm.StatementExtractor, jobs repository.JobRepository, modelName string, logger *slog.Logger) *Processor {
	if jobs == nil {
		jobs = repository.NopJobRepository{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		extractor: extractor,
		jobs:      jobs,
		logger:    logger,
		modelName: modelName,
	}
}

// Process decodes one notification body and drives it to a terminal result.
// Every failure is converted into a Result; nothing escapes, including panics.
// One inbound request yields exactly one terminal result, with no retries.
func (p *Processor) Process(ctx context.Context, body []byte) (res Result) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
		ctx = common.WithRequestID(ctx, rid)
	}
	start := time.Now()
	var ev event.StorageEvent

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline.process.panic",
				"req_id", rid, "panic", r, "stack", string(debug.Stack()),
			)
			res = Result{
				Status:  constants.StatusError,
				Reason:  constants.ReasonUnexpectedError,
				Message: "unexpected error processing event",
				Detail:  fmt.Sprint(r),
			}
		}
		p.record(ctx, ev, res, start)
	}()

	ev, err := event.Decode(body)
	if err != nil {
		p.logger.Warn("pipeline.decode.failed", "req_id", rid, "error", err)
		return Result{
			Status:  constants.StatusError,
			Reason:  constants.ReasonDecodeError,
			Message: decodeMessage(err),
		}
	}
	p.logger.Info("pipeline.decode.ok",
		"req_id", rid,
		"bucket", ev.Bucket,
		"object", ev.ObjectName,
		"content_type", ev.ContentType,
		"event_type", ev.EventType,
	)

	if !event.IsStatementPDF(ev) {
		p.logger.Info("pipeline.filter.skipped", "req_id", rid, "object", ev.ObjectName)
		return Result{
			Status:  constants.StatusIgnored,
			Reason:  constants.ReasonUnsupportedType,
			Message: fmt.Sprintf("object %q is not a PDF statement, skipping", ev.ObjectName),
		}
	}

	uri, err := ev.URI()
	if err != nil {
		p.logger.Warn("pipeline.locator.failed", "req_id", rid, "error", err)
		return Result{
			Status:  constants.StatusError,
			Reason:  constants.ReasonDecodeError,
			Message: "event is missing the bucket or object name",
		}
	}

	raw, err := p.extractor.ExtractStatement(ctx, llm.ExtractRequest{
		DocumentURI: uri,
		MIMEType:    constants.PDFContentType,
	})
	if err != nil {
		p.logger.Error("pipeline.extract.failed",
			"req_id", rid, "uri", uri, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{
			Status:  constants.StatusError,
			Reason:  constants.ReasonExtractionFailed,
			Message: "extracting statement failed",
			Detail:  err.Error(),
		}
	}

	p.logger.Info("pipeline.process.ok",
		"req_id", rid, "uri", uri,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return Result{
		Status:    constants.StatusSuccess,
		Message:   "event processed successfully",
		Statement: raw,
	}
}

// record writes the terminal outcome to the ledger. Best-effort: failures are
// logged and never alter the result.
func (p *Processor) record(ctx context.Context, ev event.StorageEvent, res Result, start time.Time) {
	// The request deadline may already be spent; the write should still land.
	ctx = context.WithoutCancel(ctx)
	job := &repository.ExtractionJob{
		ID:           uuid.New(),
		Bucket:       ev.Bucket,
		ObjectName:   ev.ObjectName,
		ContentType:  ev.ContentType,
		EventType:    ev.EventType,
		Status:       string(res.Status),
		Reason:       string(res.Reason),
		ErrorMessage: res.Detail,
		ModelName:    p.modelName,
		StartedAt:    start,
		FinishedAt:   time.Now(),
	}
	if err := p.jobs.RecordJob(ctx, job); err != nil {
		p.logger.Warn("pipeline.ledger.record_failed", "job_id", job.ID, "error", err)
	}
}

func decodeMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrEmptyPayload):
		return "no JSON payload received"
	case errors.Is(err, common.ErrMalformedEnvelope):
		return "notification envelope could not be decoded"
	default:
		return "decoding notification failed"
	}
}
