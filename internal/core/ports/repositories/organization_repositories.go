package repositories

import (
	"context"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// OrganizationRepositoryFacade defines persistence operations for organizations
// and their memberships.
type OrganizationRepositoryFacade interface {
	// SaveOrganization inserts a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// FindOrganizationByID retrieves an organization by ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations returns the organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// ListOrganizationUsers returns all memberships of an organization.
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)

	// FindUserOrganizationRole returns the role a user holds in an
	// organization, or apperrors.ErrNotFound when not a member.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error)

	// AddUserToOrganization records a membership with the given role.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserOrganizationRole changes an existing membership's role.
	UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error

	// SetOrganizationActive toggles the organization's active flag.
	SetOrganizationActive(ctx context.Context, organizationID string, active bool, updatedBy string) error
}
