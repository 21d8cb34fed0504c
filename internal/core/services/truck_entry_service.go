package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// truckEntryService implements the TruckEntrySvcFacade interface.
type truckEntryService struct {
	BaseService
	entryRepo portsrepo.TruckEntryRepositoryFacade
	rateRepo  portsrepo.RateRepositoryFacade
}

// TruckEntryServiceOption is a functional option for configuring the truck entry service.
type TruckEntryServiceOption func(*truckEntryService)

// WithTruckEntryOrganizationAuthorizer sets the organization authorizer for the truck entry service.
func WithTruckEntryOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) TruckEntryServiceOption {
	return func(s *truckEntryService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewTruckEntryService creates a new truck entry service with the provided options.
func NewTruckEntryService(
	entryRepo portsrepo.TruckEntryRepositoryFacade,
	rateRepo portsrepo.RateRepositoryFacade,
	options ...TruckEntryServiceOption,
) portssvc.TruckEntrySvcFacade {
	svc := &truckEntryService{
		entryRepo: entryRepo,
		rateRepo:  rateRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.TruckEntrySvcFacade = (*truckEntryService)(nil)

// CreateTruckEntry validates and records a truck movement. TotalAmount is
// always derived from units and rate; a missing sales rate is prefilled from
// the latest effective material rate as of the entry date.
func (s *truckEntryService) CreateTruckEntry(ctx context.Context, organizationID string, req dto.CreateTruckEntryRequest, creatorUserID string) (*domain.TruckEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	entryDate, err := parseEntryDate(req.EntryDate)
	if err != nil {
		return nil, err
	}
	if err := validateUnits(req.Units); err != nil {
		return nil, err
	}
	if req.EntryType == domain.EntrySales && req.MaterialType == "" {
		return nil, fmt.Errorf("%w: materialType is required for sales entries", apperrors.ErrValidation)
	}

	rate, err := s.resolveRate(ctx, organizationID, req, entryDate)
	if err != nil {
		return nil, err
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("%w: ratePerUnit must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entry := domain.TruckEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryType:      req.EntryType,
		MaterialType:   req.MaterialType,
		TruckNumber:    req.TruckNumber,
		Units:          req.Units,
		RatePerUnit:    rate,
		EntryDate:      entryDate,
		EntryTime:      req.EntryTime,
		Status:         domain.EntryActive,
		Description:    req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	entry.RecomputeTotal()

	if err := s.entryRepo.SaveTruckEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save truck entry",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create truck entry: %w", err)
	}

	s.LogInfo(ctx, "Truck entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("total_amount", entry.TotalAmount.String()))
	return &entry, nil
}

// GetTruckEntry retrieves an entry scoped to the organization.
func (s *truckEntryService) GetTruckEntry(ctx context.Context, organizationID, entryID string, requestingUserID string) (*domain.TruckEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindTruckEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID || entry.Status == domain.EntryDeleted {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListTruckEntries returns a page of entries plus a next-page token.
func (s *truckEntryService) ListTruckEntries(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, limit int, nextToken string, requestingUserID string) ([]domain.TruckEntry, string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, "", err
	}
	if from.After(to) {
		return nil, "", fmt.Errorf("%w: fromDate must not be after toDate", apperrors.ErrValidation)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, next, err := s.entryRepo.ListTruckEntries(ctx, organizationID, from, to, filter, limit, nextToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list truck entries: %w", err)
	}
	return entries, next, nil
}

// UpdateTruckEntry applies a partial edit, re-deriving TotalAmount whenever
// units or rate change.
func (s *truckEntryService) UpdateTruckEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateTruckEntryRequest, requestingUserID string) (*domain.TruckEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	entry, err := s.entryRepo.FindTruckEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID || entry.Status == domain.EntryDeleted {
		return nil, apperrors.ErrNotFound
	}

	if req.MaterialType != nil {
		entry.MaterialType = *req.MaterialType
	}
	if req.TruckNumber != nil {
		entry.TruckNumber = *req.TruckNumber
	}
	if req.Units != nil {
		if err := validateUnits(*req.Units); err != nil {
			return nil, err
		}
		entry.Units = *req.Units
	}
	if req.RatePerUnit != nil {
		if req.RatePerUnit.IsNegative() {
			return nil, fmt.Errorf("%w: ratePerUnit must not be negative", apperrors.ErrValidation)
		}
		entry.RatePerUnit = *req.RatePerUnit
	}
	if req.EntryDate != nil {
		entryDate, err := parseEntryDate(*req.EntryDate)
		if err != nil {
			return nil, err
		}
		entry.EntryDate = entryDate
	}
	if req.EntryTime != nil {
		entry.EntryTime = *req.EntryTime
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	entry.RecomputeTotal()
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = requestingUserID

	if err := s.entryRepo.UpdateTruckEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update truck entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update truck entry: %w", err)
	}
	return entry, nil
}

// DeleteTruckEntry soft-deletes an entry.
func (s *truckEntryService) DeleteTruckEntry(ctx context.Context, organizationID, entryID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return err
	}

	entry, err := s.entryRepo.FindTruckEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.OrganizationID != organizationID || entry.Status == domain.EntryDeleted {
		return apperrors.ErrNotFound
	}

	if err := s.entryRepo.MarkTruckEntryDeleted(ctx, entryID, requestingUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete truck entry: %w", err)
	}
	s.LogInfo(ctx, "Truck entry deleted", slog.String("entry_id", entryID))
	return nil
}

// resolveRate returns the rate the entry is priced at. Sales entries may omit
// the rate and inherit the latest effective material rate; raw stone entries
// must always state theirs.
func (s *truckEntryService) resolveRate(ctx context.Context, organizationID string, req dto.CreateTruckEntryRequest, entryDate time.Time) (rate decimal.Decimal, err error) {
	if req.RatePerUnit != nil {
		return *req.RatePerUnit, nil
	}
	if req.EntryType != domain.EntrySales {
		return rate, fmt.Errorf("%w: ratePerUnit is required for raw stone entries", apperrors.ErrValidation)
	}

	latest, err := s.rateRepo.FindLatestRate(ctx, organizationID, req.MaterialType, entryDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return rate, fmt.Errorf("%w: no rate configured for material %s", apperrors.ErrValidation, req.MaterialType)
		}
		return rate, fmt.Errorf("failed to look up material rate: %w", err)
	}
	return latest.RatePerUnit, nil
}

func parseEntryDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return d, nil
}

func validateUnits(units decimal.Decimal) error {
	if !units.IsPositive() {
		return fmt.Errorf("%w: units must be positive", apperrors.ErrValidation)
	}
	if units.GreaterThan(domain.MaxUnitsPerTrip) {
		return fmt.Errorf("%w: units exceed the maximum of %s per trip", apperrors.ErrValidation, domain.MaxUnitsPerTrip)
	}
	return nil
}
