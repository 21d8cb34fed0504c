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
	"github.com/google/uuid"
)

// organizationService implements the OrganizationSvcFacade interface.
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo: orgRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// roleRank orders roles by privilege for authorization checks.
var roleRank = map[domain.UserOrganizationRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleManager:  2,
	domain.RoleOwner:    3,
}

// AuthorizeUserAction checks whether the user holds at least requiredRole in
// the organization. Non-members and removed members are forbidden.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	role, err := s.orgRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to look up organization role: %w", err)
	}

	if role == domain.RoleRemoved || roleRank[role] < roleRank[requiredRole] {
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateOrganization persists a new organization and makes the creator its owner.
func (s *organizationService) CreateOrganization(ctx context.Context, name, location, creatorUserID string) (*domain.Organization, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           name,
		Location:       location,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("name", name))
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	membership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: org.OrganizationID,
		Role:           domain.RoleOwner,
		JoinedAt:       now,
	}
	if err := s.orgRepo.AddUserToOrganization(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as organization owner",
			slog.String("organization_id", org.OrganizationID))
		return nil, fmt.Errorf("failed to add creator membership: %w", err)
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("organization_id", org.OrganizationID),
		slog.String("name", name))
	return &org, nil
}

// FindOrganizationByID retrieves a specific organization by its ID.
func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

// ListUserOrganizations retrieves organizations a user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListUserOrganizations(ctx, userID, includeDisabled)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations for user: %w", err)
	}
	return orgs, nil
}

// ListOrganizationUsers retrieves all users and their roles for an organization.
func (s *organizationService) ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization users: %w", err)
	}
	return members, nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
func (s *organizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleOwner); err != nil {
		return err
	}
	if _, ok := roleRank[role]; !ok {
		return fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, role)
	}

	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       time.Now().UTC(),
	}
	if err := s.orgRepo.AddUserToOrganization(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("organization_id", organizationID),
			slog.String("target_user_id", targetUserID))
		return fmt.Errorf("failed to add user to organization: %w", err)
	}
	return nil
}

// UpdateUserOrganizationRole updates a member's role.
func (s *organizationService) UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleOwner); err != nil {
		return err
	}
	if _, ok := roleRank[newRole]; !ok {
		return fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, newRole)
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: owners cannot change their own role", apperrors.ErrValidation)
	}

	if err := s.orgRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, newRole); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

// RemoveUserFromOrganization removes a member by marking the membership removed.
func (s *organizationService) RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleOwner); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: owners cannot remove themselves", apperrors.ErrValidation)
	}

	if err := s.orgRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, domain.RoleRemoved); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// DeactivateOrganization marks an organization as inactive.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleOwner); err != nil {
		return err
	}

	if err := s.orgRepo.SetOrganizationActive(ctx, organizationID, false, requestingUserID); err != nil {
		return fmt.Errorf("failed to deactivate organization: %w", err)
	}
	s.LogInfo(ctx, "Organization deactivated", slog.String("organization_id", organizationID))
	return nil
}
