package repositories

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// RateRepositoryFacade defines persistence operations for material rates.
type RateRepositoryFacade interface {
	// SaveRate inserts a new rate record.
	SaveRate(ctx context.Context, rate domain.MaterialRate) error

	// FindRateByID retrieves a rate record by ID.
	FindRateByID(ctx context.Context, rateID string) (*domain.MaterialRate, error)

	// ListRates returns all rate records for an organization, newest effective date first.
	ListRates(ctx context.Context, organizationID string) ([]domain.MaterialRate, error)

	// FindLatestRate returns the rate record for the material with the
	// latest effective_from not after asOf, or apperrors.ErrNotFound.
	FindLatestRate(ctx context.Context, organizationID string, material domain.MaterialType, asOf time.Time) (*domain.MaterialRate, error)

	// UpdateRate persists changes to an existing rate record.
	UpdateRate(ctx context.Context, rate domain.MaterialRate) error

	// DeleteRate removes a rate record.
	DeleteRate(ctx context.Context, rateID string) error
}
