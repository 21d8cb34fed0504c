package render

import (
	"bytes"
	"fmt"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/jung-kurt/gofpdf"
)

// pdfColWidths allocates the landscape A4 width across the report columns.
var pdfColWidths = []float64{22, 14, 28, 24, 24, 18, 22, 28, 97}

// renderPDF writes the report as a landscape A4 table with the summary block
// at the end. Long tables flow across pages; the header repeats on each.
func renderPDF(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range reportHeader {
			pdf.CellFormat(pdfColWidths[i], 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 10, "Crusher Business Report", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		rangeLine := fmt.Sprintf("%s to %s",
			spec.StartDate.Format("2006-01-02"), spec.EndDate.Format("2006-01-02"))
		pdf.CellFormat(0, 6, rangeLine, "", 1, "C", false, 0, "")
		pdf.Ln(2)
		writeHeader()
	})
	pdf.AddPage()

	for _, row := range rows {
		for i, cell := range rowCells(row) {
			pdf.CellFormat(pdfColWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range summaryLines(summary) {
		pdf.CellFormat(60, 7, line[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, line[1], "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize pdf: %w", err)
	}

	return &domain.ReportFile{
		FileName:    fileName(spec),
		ContentType: "application/pdf",
		Bytes:       buf.Bytes(),
	}, nil
}
