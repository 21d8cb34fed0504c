package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// SummarySvc computes financial summaries for a filtered date range.
type SummarySvc interface {
	// Summarize aggregates truck entries and expenses into a Summary.
	// It fails only when the record store is unreachable; a suspicious
	// all-zero grouped result is re-derived from raw rows transparently.
	Summarize(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, requestingUserID string) (domain.Summary, error)
}

// SummaryComputer is the authorization-free core of SummarySvc, used by the
// export pipeline which authorizes at issuance time and must not re-check the
// (absent) caller at download time.
type SummaryComputer interface {
	ComputeSummary(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) (domain.Summary, error)
}
