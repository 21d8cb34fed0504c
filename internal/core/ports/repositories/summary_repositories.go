package repositories

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryTypeTotal is one row of the grouped aggregation query: the sum and
// count of truck entries of a single entry type.
type EntryTypeTotal struct {
	EntryType domain.EntryType
	Total     decimal.Decimal
	Count     int
}

// SummaryRepository exposes the grouped aggregation queries used by the
// primary summarization path. The fallback path deliberately bypasses this
// interface and rescans raw rows through the entry/expense repositories.
type SummaryRepository interface {
	// GetEntryTypeTotals returns SUM(total_amount) and COUNT(*) of active
	// truck entries grouped by entry type for the organization, date range
	// and filter. Entry types with no rows are absent from the result.
	GetEntryTypeTotals(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]EntryTypeTotal, error)

	// GetExpenseTotals returns SUM(amount) and COUNT(*) of active expenses
	// for the organization within the date range.
	GetExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (decimal.Decimal, int, error)
}
