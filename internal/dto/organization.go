package dto

import (
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// CreateOrganizationRequest holds the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

// AddOrganizationUserRequest adds a user to an organization with a role.
type AddOrganizationUserRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=OWNER MANAGER READONLY"`
}

// UpdateOrganizationUserRoleRequest changes a member's role.
type UpdateOrganizationUserRoleRequest struct {
	Role domain.UserOrganizationRole `json:"role" binding:"required,oneof=OWNER MANAGER READONLY"`
}

// OrganizationResponse is the API representation of an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Location       string    `json:"location,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToOrganizationResponse converts a domain organization to its API representation.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		Location:       o.Location,
		IsActive:       o.IsActive,
		CreatedAt:      o.CreatedAt,
	}
}

// ToOrganizationResponses converts a slice of domain organizations.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	out := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		out[i] = ToOrganizationResponse(&orgs[i])
	}
	return out
}

// OrganizationUserResponse is the API representation of a membership.
type OrganizationUserResponse struct {
	UserID   string                      `json:"userID"`
	UserName string                      `json:"userName"`
	Role     domain.UserOrganizationRole `json:"role"`
	JoinedAt time.Time                   `json:"joinedAt"`
}

// ToOrganizationUserResponses converts a slice of domain memberships.
func ToOrganizationUserResponses(members []domain.UserOrganization) []OrganizationUserResponse {
	out := make([]OrganizationUserResponse, len(members))
	for i, m := range members {
		out[i] = OrganizationUserResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return out
}
