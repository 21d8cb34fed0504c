package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
)

// RateSvcFacade defines material rate management operations.
type RateSvcFacade interface {
	// CreateRate publishes a new rate record. Manager or above.
	CreateRate(ctx context.Context, organizationID string, req dto.CreateRateRequest, creatorUserID string) (*domain.MaterialRate, error)

	// ListRates returns all rate records for an organization.
	ListRates(ctx context.Context, organizationID string, requestingUserID string) ([]domain.MaterialRate, error)

	// GetLatestRate returns the effective rate for a material as of a date.
	GetLatestRate(ctx context.Context, organizationID string, material domain.MaterialType, asOf time.Time, requestingUserID string) (*domain.MaterialRate, error)

	// UpdateRate corrects an existing rate record. Manager or above.
	UpdateRate(ctx context.Context, organizationID, rateID string, req dto.UpdateRateRequest, requestingUserID string) (*domain.MaterialRate, error)

	// DeleteRate removes a rate record. Manager or above.
	DeleteRate(ctx context.Context, organizationID, rateID string, requestingUserID string) error
}
