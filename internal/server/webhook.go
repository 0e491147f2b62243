package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/statement-extractor/constants"
	"github.com/joseph-ayodele/statement-extractor/internal/common"
	"github.com/joseph-ayodele/statement-extractor/internal/pipeline"
)

// maxBodyBytes caps the notification body. Storage notifications are small;
// anything larger is not a notification.
const maxBodyBytes = 1 << 20

// WebhookHandler accepts storage-change notifications on POST / and replies
// with the pipeline's terminal result.
type WebhookHandler struct {
	processor *pipeline.Processor
	logger    *slog.Logger
}

func NewWebhookHandler(processor *pipeline.Processor, logger *slog.Logger) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebhookHandler{processor: processor, logger: logger}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, pipeline.Result{
			Status:  constants.StatusError,
			Reason:  constants.ReasonDecodeError,
			Message: "only POST is supported",
		})
		return
	}

	rid := uuid.New().String()
	ctx := common.WithRequestID(r.Context(), rid)
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("webhook.read_body.failed", "req_id", rid, "error", err)
		writeJSON(w, http.StatusBadRequest, pipeline.Result{
			Status:  constants.StatusError,
			Reason:  constants.ReasonDecodeError,
			Message: "reading request body failed",
		})
		return
	}

	res := h.processor.Process(ctx, body)

	h.logger.Info("webhook.request.done",
		"req_id", rid,
		"status", res.Status,
		"reason", res.Reason,
		"http_status", res.HTTPStatus(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, res.HTTPStatus(), res)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", constants.JSONContentType)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
