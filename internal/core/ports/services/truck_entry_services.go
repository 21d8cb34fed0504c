package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
)

// TruckEntrySvcFacade defines truck entry management operations.
type TruckEntrySvcFacade interface {
	// CreateTruckEntry validates and records a truck movement, deriving
	// TotalAmount and prefilling a missing sales rate from the latest
	// effective material rate.
	CreateTruckEntry(ctx context.Context, organizationID string, req dto.CreateTruckEntryRequest, creatorUserID string) (*domain.TruckEntry, error)

	// GetTruckEntry retrieves an entry scoped to the organization.
	GetTruckEntry(ctx context.Context, organizationID, entryID string, requestingUserID string) (*domain.TruckEntry, error)

	// ListTruckEntries returns a page of entries plus a next-page token.
	ListTruckEntries(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, limit int, nextToken string, requestingUserID string) ([]domain.TruckEntry, string, error)

	// UpdateTruckEntry applies a partial edit, re-deriving TotalAmount when
	// units or rate change.
	UpdateTruckEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateTruckEntryRequest, requestingUserID string) (*domain.TruckEntry, error)

	// DeleteTruckEntry soft-deletes an entry.
	DeleteTruckEntry(ctx context.Context, organizationID, entryID string, requestingUserID string) error
}
