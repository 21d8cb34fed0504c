package domain

import "time"

// Organization represents a single crushing site / business unit. All truck
// entries, expenses and rates are scoped to exactly one organization.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (UUID)
	Name           string `json:"name"`
	Location       string `json:"location"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the possible roles a user can have within an organization.
type UserOrganizationRole string

const (
	RoleOwner    UserOrganizationRole = "OWNER"
	RoleManager  UserOrganizationRole = "MANAGER"
	RoleReadOnly UserOrganizationRole = "READONLY"
	RoleRemoved  UserOrganizationRole = "REMOVED"
)

// UserOrganization represents the membership of a User in an Organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`
	UserName       string               `json:"userName"`
	OrganizationID string               `json:"organizationID"`
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}
