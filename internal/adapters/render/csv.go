package render

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// renderCSV writes the report as RFC 4180 CSV: header, data rows, a blank
// line, then the summary block.
func renderCSV(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(rowCells(row)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, fmt.Errorf("failed to write csv separator: %w", err)
	}
	for _, line := range summaryLines(summary) {
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("failed to write csv summary line: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &domain.ReportFile{
		FileName:    fileName(spec),
		ContentType: "text/csv",
		Bytes:       buf.Bytes(),
	}, nil
}
