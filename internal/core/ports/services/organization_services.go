package services

import (
	"context"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data.
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// ListOrganizationUsers retrieves all users and their roles for an
	// organization. Only members may read this.
	ListOrganizationUsers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data.
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization; the creator becomes its owner.
	CreateOrganization(ctx context.Context, name, location, creatorUserID string) (*domain.Organization, error)

	// DeactivateOrganization marks an organization as inactive. Owner only.
	DeactivateOrganization(ctx context.Context, organizationID string, requestingUserID string) error
}

// OrganizationMembershipSvc defines operations for managing organization membership.
type OrganizationMembershipSvc interface {
	// AddUserToOrganization adds a user with a specific role. Owner only.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error

	// UpdateUserOrganizationRole updates a member's role. Owner only.
	UpdateUserOrganizationRole(ctx context.Context, requestingUserID, targetUserID, organizationID string, newRole domain.UserOrganizationRole) error

	// RemoveUserFromOrganization removes a member. Owner only.
	RemoveUserFromOrganization(ctx context.Context, requestingUserID, targetUserID, organizationID string) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for an organization.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces.
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
