package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements the port.
var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

const userColumns = `
	user_id, name, username, password_hash, email,
	refresh_token_hash, refresh_token_expiry_time, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Username,
		user.PasswordHash,
		nullableString(user.Email),
		nullableString(user.RefreshTokenHash),
		user.RefreshTokenExpiryTime,
		user.DeletedAt,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserWhere(ctx, "user_id = $1", userID)
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserWhere(ctx, "username = $1", username)
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUserWhere(ctx, "email = $1", email)
}

func (r *UserRepository) findUserWhere(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE ` + where + ` AND deleted_at IS NULL;
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE deleted_at IS NULL
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $2,
            email = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Name,
		nullableString(user.Email),
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	query := `
        UPDATE users
        SET deleted_at = $2,
            refresh_token_hash = NULL,
            refresh_token_expiry_time = NULL,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, userID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	query := `
        UPDATE users
        SET refresh_token_hash = $2,
            refresh_token_expiry_time = $3
        WHERE user_id = $1 AND deleted_at IS NULL;
    `
	tag, err := r.db.Exec(ctx, query, userID, nullableString(refreshTokenHash), expiryTime)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var email, refreshTokenHash *string

	err := row.Scan(
		&user.UserID,
		&user.Name,
		&user.Username,
		&user.PasswordHash,
		&email,
		&refreshTokenHash,
		&user.RefreshTokenExpiryTime,
		&user.DeletedAt,
		&user.CreatedAt,
		&user.CreatedBy,
		&user.LastUpdatedAt,
		&user.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if email != nil {
		user.Email = *email
	}
	if refreshTokenHash != nil {
		user.RefreshTokenHash = *refreshTokenHash
	}
	return &user, nil
}
