package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/google/uuid"
)

// rateService implements the RateSvcFacade interface.
type rateService struct {
	BaseService
	rateRepo portsrepo.RateRepositoryFacade
}

// RateServiceOption is a functional option for configuring the rate service.
type RateServiceOption func(*rateService)

// WithRateOrganizationAuthorizer sets the organization authorizer for the rate service.
func WithRateOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) RateServiceOption {
	return func(s *rateService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewRateService creates a new rate service with the provided options.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, options ...RateServiceOption) portssvc.RateSvcFacade {
	svc := &rateService{
		rateRepo: rateRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// CreateRate publishes a new rate record.
func (s *rateService) CreateRate(ctx context.Context, organizationID string, req dto.CreateRateRequest, creatorUserID string) (*domain.MaterialRate, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.RatePerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: ratePerUnit must not be negative", apperrors.ErrValidation)
	}
	effectiveFrom, err := parseEntryDate(req.EffectiveFrom)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rate := domain.MaterialRate{
		RateID:         uuid.NewString(),
		OrganizationID: organizationID,
		MaterialType:   req.MaterialType,
		RatePerUnit:    req.RatePerUnit,
		EffectiveFrom:  effectiveFrom,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save material rate",
			slog.String("organization_id", organizationID),
			slog.String("material_type", string(req.MaterialType)))
		return nil, fmt.Errorf("failed to create rate: %w", err)
	}

	s.LogInfo(ctx, "Material rate published",
		slog.String("rate_id", rate.RateID),
		slog.String("material_type", string(rate.MaterialType)),
		slog.String("rate_per_unit", rate.RatePerUnit.String()))
	return &rate, nil
}

// ListRates returns all rate records for an organization.
func (s *rateService) ListRates(ctx context.Context, organizationID string, requestingUserID string) ([]domain.MaterialRate, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	rates, err := s.rateRepo.ListRates(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

// GetLatestRate returns the effective rate for a material as of a date.
func (s *rateService) GetLatestRate(ctx context.Context, organizationID string, material domain.MaterialType, asOf time.Time, requestingUserID string) (*domain.MaterialRate, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.rateRepo.FindLatestRate(ctx, organizationID, material, asOf)
}

// UpdateRate corrects an existing rate record.
func (s *rateService) UpdateRate(ctx context.Context, organizationID, rateID string, req dto.UpdateRateRequest, requestingUserID string) (*domain.MaterialRate, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}

	if req.RatePerUnit != nil {
		if req.RatePerUnit.IsNegative() {
			return nil, fmt.Errorf("%w: ratePerUnit must not be negative", apperrors.ErrValidation)
		}
		rate.RatePerUnit = *req.RatePerUnit
	}
	if req.EffectiveFrom != nil {
		effectiveFrom, err := parseEntryDate(*req.EffectiveFrom)
		if err != nil {
			return nil, err
		}
		rate.EffectiveFrom = effectiveFrom
	}

	rate.LastUpdatedAt = time.Now().UTC()
	rate.LastUpdatedBy = requestingUserID

	if err := s.rateRepo.UpdateRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "Failed to update material rate", slog.String("rate_id", rateID))
		return nil, fmt.Errorf("failed to update rate: %w", err)
	}
	return rate, nil
}

// DeleteRate removes a rate record.
func (s *rateService) DeleteRate(ctx context.Context, organizationID, rateID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return err
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return err
	}
	if rate.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}

	if err := s.rateRepo.DeleteRate(ctx, rateID); err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	s.LogInfo(ctx, "Material rate deleted", slog.String("rate_id", rateID))
	return nil
}
