// Command export converts an extracted statement JSON file into an XLSX
// workbook: export statement.json out.xlsx
package main

import (
	"log/slog"
	"os"

	"github.com/joseph-ayodele/statement-extractor/internal/export"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		logger.Error("usage: export <statement.json> <out.xlsx>")
		os.Exit(2)
	}
	inPath, outPath := os.Args[1], os.Args[2]

	raw, err := os.ReadFile(inPath)
	if err != nil {
		logger.Error("reading statement", "path", inPath, "error", err)
		os.Exit(1)
	}

	svc := export.NewService(logger)
	xlsx, err := svc.StatementXLSX(raw)
	if err != nil {
		logger.Error("building workbook", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outPath, xlsx, 0o644); err != nil {
		logger.Error("writing workbook", "path", outPath, "error", err)
		os.Exit(1)
	}
	logger.Info("workbook written", "path", outPath, "bytes", len(xlsx))
}
