package render

import (
	"fmt"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/utils"
)

// reportHeader is the column order shared by every format.
var reportHeader = []string{
	"Date", "Time", "Truck Number", "Entry Type", "Material",
	"Units", "Rate/Unit", "Total Amount", "Description",
}

// Renderer dispatches to the per-format renderers. All output is produced
// in memory; nothing touches the filesystem.
type Renderer struct{}

// NewRenderer creates the format-dispatching report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Ensure Renderer implements the port.
var _ portssvc.ReportRenderer = (*Renderer)(nil)

// Render produces the report file for the spec's format.
func (r *Renderer) Render(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error) {
	switch spec.Format {
	case domain.FormatCSV:
		return renderCSV(spec, rows, summary)
	case domain.FormatXLSX:
		return renderXLSX(spec, rows, summary)
	case domain.FormatPDF:
		return renderPDF(spec, rows, summary)
	}
	return nil, fmt.Errorf("%w: unsupported report format %q", apperrors.ErrValidation, spec.Format)
}

// fileName derives the attachment name from the spec's date range and format.
func fileName(spec domain.ReportSpec) string {
	return fmt.Sprintf("crusher-report_%s_%s.%s",
		spec.StartDate.Format("2006-01-02"),
		spec.EndDate.Format("2006-01-02"),
		spec.Format)
}

// rowCells renders an export row into the shared column order. Expense rows
// have no units or rate and leave those cells empty.
func rowCells(row domain.ExportRow) []string {
	units, rate := "", ""
	if row.Units != nil {
		units = utils.FormatUnits(*row.Units)
	}
	if row.RatePerUnit != nil {
		rate = utils.FormatAmount(*row.RatePerUnit)
	}
	return []string{
		row.Date,
		row.Time,
		row.TruckNumber,
		row.EntryType,
		row.MaterialType,
		units,
		rate,
		utils.FormatAmount(row.TotalAmount),
		row.Description,
	}
}

// summaryLines renders the financial rollup appended below the row table.
func summaryLines(summary domain.Summary) [][]string {
	return [][]string{
		{"Total Sales", utils.FormatAmount(summary.TotalSales)},
		{"Total Raw Stone", utils.FormatAmount(summary.TotalRawStone)},
		{"Total Other Expenses", utils.FormatAmount(summary.TotalOtherExpenses)},
		{"Total Expenses", utils.FormatAmount(summary.TotalExpenses)},
		{"Net Profit", utils.FormatAmount(summary.NetProfit)},
		{"Total Entries", fmt.Sprintf("%d", summary.TotalEntries)},
	}
}
