// Command extract runs one statement extraction for a storage URI and prints
// the raw JSON to stdout. Useful for trying the backend without the webhook.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/statement-extractor/constants"
	"github.com/joseph-ayodele/statement-extractor/internal/common"
	"github.com/joseph-ayodele/statement-extractor/internal/llm"
	"github.com/joseph-ayodele/statement-extractor/internal/llm/gemini"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: extract gs://bucket/statement.pdf")
		os.Exit(2)
	}
	uri := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx := context.Background()
	client, err := gemini.NewClient(ctx, gemini.Config{
		Model:          cfg.LLM.Model,
		Project:        cfg.LLM.Project,
		Location:       cfg.LLM.Location,
		APIKey:         cfg.LLM.APIKey,
		Temperature:    cfg.LLM.Temperature,
		Timeout:        cfg.LLM.Timeout,
		ValidateOutput: cfg.LLM.ValidateOutput,
	}, logger)
	if err != nil {
		logger.Error("creating extraction client", "error", err)
		os.Exit(1)
	}

	raw, err := client.ExtractStatement(ctx, llm.ExtractRequest{
		DocumentURI: uri,
		MIMEType:    constants.PDFContentType,
	})
	if err != nil {
		logger.Error("extraction failed", "uri", uri, "error", err)
		os.Exit(1)
	}
	fmt.Println(string(raw))
}
