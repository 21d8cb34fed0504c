package repositories

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// TruckEntryRepositoryFacade defines persistence operations for truck entries.
type TruckEntryRepositoryFacade interface {
	// SaveTruckEntry inserts a new truck entry.
	SaveTruckEntry(ctx context.Context, entry domain.TruckEntry) error

	// FindTruckEntryByID retrieves an entry by ID regardless of status.
	FindTruckEntryByID(ctx context.Context, entryID string) (*domain.TruckEntry, error)

	// UpdateTruckEntry persists changes to an existing entry.
	UpdateTruckEntry(ctx context.Context, entry domain.TruckEntry) error

	// MarkTruckEntryDeleted soft-deletes an entry.
	MarkTruckEntryDeleted(ctx context.Context, entryID string, userID string, now time.Time) error

	// ListTruckEntries returns a page of active entries for the organization
	// and date range, newest first, using keyset pagination on
	// (entry_date, created_at). It returns the next page token, or "" when
	// the page was the last one.
	ListTruckEntries(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, limit int, nextToken string) ([]domain.TruckEntry, string, error)

	// ListTruckEntriesForRange returns every active entry matching the
	// organization, date range and filter. Used by the aggregation fallback
	// and by report generation, which need the full record set.
	ListTruckEntriesForRange(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]domain.TruckEntry, error)
}
