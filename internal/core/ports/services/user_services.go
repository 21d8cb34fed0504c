package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
)

// UserSvcFacade defines the user management operations used by handlers and
// the auth flow.
type UserSvcFacade interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers returns users with limit/offset pagination.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)

	// UpdateUser applies a partial profile update. Users may only update themselves.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// DeleteUser soft-deletes a user. Users may only delete themselves.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// SetRefreshToken stores the hash of a newly issued refresh token.
	SetRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken invalidates the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error

	// FindOrCreateGoogleUser matches a verified Google profile to a local
	// user by email, provisioning one on first login.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)
}
