package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/statement-extractor/internal/llm"
)

// Service renders one extracted statement as an XLSX workbook: a summary
// sheet plus one sheet each for transactions and credits. This is an offline
// utility; the webhook path never touches it.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

const (
	sheetStatement    = "Statement"
	sheetTransactions = "Transactions"
	sheetCredits      = "Credits"
)

// StatementXLSX parses raw extraction output and returns workbook bytes.
func (s *Service) StatementXLSX(raw json.RawMessage) ([]byte, error) {
	start := time.Now()

	fields, err := llm.ParseStatement(raw)
	if err != nil {
		return nil, fmt.Errorf("parse statement: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetStatement); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetCredits); err != nil {
		return nil, err
	}

	writeSummary(f, fields)
	writeLineItems(f, sheetTransactions, fields.Transactions)
	writeLineItems(f, sheetCredits, fields.Credits)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"transactions", len(fields.Transactions),
		"credits", len(fields.Credits),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, fields llm.StatementFields) {
	rows := [][2]any{
		{"Credit Card Company", fields.CreditCardCompany},
		{"Card Last 4", fields.CreditCardLast4},
		{"Statement Date", fields.StatementDate},
		{"Due Date", fields.DueDate},
		{"Statement Balance", fields.StatementBalance},
		{"Minimum Payment", fields.MinimumPayment},
		{"Interest Rate", fields.InterestRate},
	}
	for i, kv := range rows {
		keyCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valCell, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(sheetStatement, keyCell, kv[0])
		_ = f.SetCellValue(sheetStatement, valCell, kv[1])
	}
	_ = f.SetColWidth(sheetStatement, "A", "A", 22)
	_ = f.SetColWidth(sheetStatement, "B", "B", 18)
}

func writeLineItems(f *excelize.File, sheet string, items []llm.LineItem) {
	headers := []string{"Date", "Description", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, item := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, item.Date())
		write(2, item.Description)
		write(3, item.Amount)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "C", 14)
}
