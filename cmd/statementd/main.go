package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/statement-extractor/internal/common"
	"github.com/joseph-ayodele/statement-extractor/internal/llm/gemini"
	"github.com/joseph-ayodele/statement-extractor/internal/pipeline"
	"github.com/joseph-ayodele/statement-extractor/internal/repository"
	"github.com/joseph-ayodele/statement-extractor/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs, err := repository.NewJobRepository(ctx, repository.Config{
		DSN:             cfg.Ledger.DSN,
		MaxConns:        cfg.Ledger.MaxConns,
		MinConns:        cfg.Ledger.MinConns,
		MaxConnLifetime: cfg.Ledger.MaxConnLifetime,
		MaxConnIdleTime: cfg.Ledger.MaxConnIdleTime,
		DialTimeout:     cfg.Ledger.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening ledger", "error", err)
		os.Exit(1)
	}
	defer jobs.Close()
	if err := jobs.HealthCheck(ctx); err != nil {
		logger.Error("ledger health failed", "error", err)
		os.Exit(1)
	}

	extractor, err := gemini.NewClient(ctx, gemini.Config{
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

	processor := pipeline.NewProcessor(extractor, jobs, extractor.Model(), logger)

	srv := server.New(cfg.Server, processor, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
