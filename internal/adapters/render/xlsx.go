package render

import (
	"fmt"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

// renderXLSX writes the report as a single-sheet spreadsheet: header row,
// data rows, then the summary block two rows below the table.
func renderXLSX(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := writeRow(f, 1, reportHeader); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(reportHeader), 1)
		_ = f.SetCellStyle(reportSheet, "A1", endCell, headerStyle)
	}

	for i, row := range rows {
		if err := writeRow(f, i+2, rowCells(row)); err != nil {
			return nil, err
		}
	}

	summaryStart := len(rows) + 4
	for i, line := range summaryLines(summary) {
		if err := writeRow(f, summaryStart+i, line); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize xlsx: %w", err)
	}

	return &domain.ReportFile{
		FileName:    fileName(spec),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Bytes:       buf.Bytes(),
	}, nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	for col, value := range cells {
		cellName, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(reportSheet, cellName, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cellName, err)
		}
	}
	return nil
}
