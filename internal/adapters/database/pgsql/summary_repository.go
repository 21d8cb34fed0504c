package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SummaryRepository runs the grouped aggregation queries backing the primary
// summarization path.
type SummaryRepository struct {
	db *pgxpool.Pool
}

func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Ensure SummaryRepository implements the port.
var _ portsrepo.SummaryRepository = (*SummaryRepository)(nil)

// GetEntryTypeTotals sums active truck entries grouped by entry type. COALESCE
// keeps rows whose derived total was stored as NULL from poisoning the sum;
// such rows are repaired properly by the rescan path.
func (r *SummaryRepository) GetEntryTypeTotals(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]portsrepo.EntryTypeTotal, error) {
	args := []any{organizationID, from, to}
	query := `
        SELECT entry_type, COALESCE(SUM(total_amount), 0), COUNT(*)
        FROM truck_entries
        WHERE organization_id = $1
          AND status = 'ACTIVE'
          AND entry_date >= $2
          AND entry_date <= $3
    `
	query, args = appendFilterClauses(query, args, filter)
	query += " GROUP BY entry_type;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry type totals: %w", err)
	}
	defer rows.Close()

	totals := []portsrepo.EntryTypeTotal{}
	for rows.Next() {
		var t portsrepo.EntryTypeTotal
		if err := rows.Scan(&t.EntryType, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan entry type total row: %w", err)
		}
		totals = append(totals, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating entry type total rows: %w", rows.Err())
	}
	return totals, nil
}

// GetExpenseTotals sums active expenses within the date range.
func (r *SummaryRepository) GetExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (decimal.Decimal, int, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0), COUNT(*)
        FROM other_expenses
        WHERE organization_id = $1
          AND is_active = TRUE
          AND expense_date >= $2
          AND expense_date <= $3;
    `
	var total decimal.Decimal
	var count int
	err := r.db.QueryRow(ctx, query, organizationID, from, to).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to query expense totals: %w", err)
	}
	return total, count, nil
}
