package gemini

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/joseph-ayodele/statement-extractor/constants"
	"github.com/joseph-ayodele/statement-extractor/internal/common"
	"github.com/joseph-ayodele/statement-extractor/internal/llm"
)

// Client implements llm.StatementExtractor against Gemini. One extraction is
// one GenerateContent call: a file part referencing the document by URI, the
// fixed instruction, and the statement response schema. The client never
// retries; retry policy belongs to callers.
type Client struct {
	cfg    Config
	genai  *genai.Client
	schema *genai.Schema
	logger *slog.Logger
}

func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	cc := &genai.ClientConfig{}
	if cfg.APIKey != "" {
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	} else {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, common.WrapError(err, "creating genai client")
	}

	schema, err := toResponseSchema(llm.StatementJSONSchema())
	if err != nil {
		return nil, common.WrapError(err, "converting response schema")
	}

	return &Client{cfg: cfg, genai: gc, schema: schema, logger: logger}, nil
}

// ExtractStatement submits the document to the model and returns the response
// text verbatim. The backend is responsible for schema conformance; when
// ValidateOutput is set the response is additionally checked locally before
// being returned.
func (c *Client) ExtractStatement(ctx context.Context, req llm.ExtractRequest) (json.RawMessage, error) {
	rid := uuid.New().String()
	start := time.Now()

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = constants.PDFContentType
	}

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"uri", req.DocumentURI,
		"mime_type", mimeType,
	)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(req.DocumentURI, mimeType),
			genai.NewPartFromText(llm.ExtractionPrompt),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.cfg.Temperature),
		ResponseMIMEType: constants.JSONContentType,
		ResponseSchema:   c.schema,
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.cfg.Model, contents, config)
	if err != nil {
		c.logger.Error("llm.extract.backend_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("EXTRACTION_ERROR", err.Error(), common.ErrExtraction)
	}

	text := resp.Text()
	if text == "" {
		c.logger.Error("llm.extract.empty_response",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.NewAppError("EXTRACTION_ERROR", "empty response from model", common.ErrExtraction)
	}
	raw := json.RawMessage(text)

	if c.cfg.ValidateOutput {
		if err := llm.ValidateJSONAgainstSchema(llm.StatementJSONSchema(), raw); err != nil {
			c.logger.Error("llm.extract.schema_validation_failed",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return nil, common.NewAppError("EXTRACTION_ERROR", err.Error(), common.ErrExtraction)
		}
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return raw, nil
}

// Model reports the configured model name, for ledger rows and diagnostics.
func (c *Client) Model() string {
	return c.cfg.Model
}
