package render

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSpec(format domain.ReportFormat) domain.ReportSpec {
	return domain.ReportSpec{
		OrganizationID: "org-1",
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Format:         format,
		RequestedBy:    "user-1",
		CreatedAt:      time.Now().UTC(),
	}
}

func sampleRows() []domain.ExportRow {
	units := decimal.NewFromInt(10)
	rate := decimal.NewFromInt(22000)
	return []domain.ExportRow{
		{
			Date:         "2025-03-05",
			Time:         "09:30",
			TruckNumber:  "KA01AB1234",
			EntryType:    "Sales",
			MaterialType: "DUST",
			Units:        &units,
			RatePerUnit:  &rate,
			TotalAmount:  decimal.NewFromInt(220000),
		},
		{
			Date:        "2025-03-07",
			EntryType:   "Expense",
			TotalAmount: decimal.NewFromInt(5000),
			Description: "Diesel",
		},
	}
}

func sampleSummary() domain.Summary {
	return domain.SummaryParts{
		TotalSales:         decimal.NewFromInt(220000),
		TotalOtherExpenses: decimal.NewFromInt(5000),
		SalesCount:         1,
		OtherExpensesCount: 1,
	}.Combine()
}

func TestRenderCSV(t *testing.T) {
	file, err := NewRenderer().Render(sampleSpec(domain.FormatCSV), sampleRows(), sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, "crusher-report_2025-03-01_2025-03-31.csv", file.FileName)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Bytes)).ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 3)
	assert.Equal(t, reportHeader, records[0])
	assert.Equal(t, "KA01AB1234", records[1][2])
	assert.Equal(t, "220000.00", records[1][7])

	// Expense rows carry no units or rate.
	assert.Equal(t, "", records[2][5])
	assert.Equal(t, "", records[2][6])

	last := records[len(records)-1]
	assert.Equal(t, "Total Entries", last[0])
	assert.Equal(t, "2", last[1])
}

func TestRenderCSV_SummaryBlock(t *testing.T) {
	file, err := NewRenderer().Render(sampleSpec(domain.FormatCSV), sampleRows(), sampleSummary())
	require.NoError(t, err)

	content := string(file.Bytes)
	assert.Contains(t, content, "Total Sales,220000.00")
	assert.Contains(t, content, "Net Profit,215000.00")
}

func TestRenderXLSX(t *testing.T) {
	file, err := NewRenderer().Render(sampleSpec(domain.FormatXLSX), sampleRows(), sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, "crusher-report_2025-03-01_2025-03-31.xlsx", file.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(file.Bytes))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	truck, err := f.GetCellValue("Report", "C2")
	require.NoError(t, err)
	assert.Equal(t, "KA01AB1234", truck)
}

func TestRenderPDF(t *testing.T) {
	file, err := NewRenderer().Render(sampleSpec(domain.FormatPDF), sampleRows(), sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Bytes, []byte("%PDF")))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := NewRenderer().Render(sampleSpec(domain.ReportFormat("docx")), sampleRows(), sampleSummary())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
