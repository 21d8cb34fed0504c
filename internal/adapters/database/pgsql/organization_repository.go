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

type OrganizationRepository struct {
	db *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Ensure OrganizationRepository implements the port.
var _ portsrepo.OrganizationRepositoryFacade = (*OrganizationRepository)(nil)

const organizationColumns = `
	organization_id, name, location, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *OrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	query := `
        INSERT INTO organizations (` + organizationColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		org.OrganizationID,
		org.Name,
		org.Location,
		org.IsActive,
		org.CreatedAt,
		org.CreatedBy,
		org.LastUpdatedAt,
		org.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
        SELECT ` + organizationColumns + `
        FROM organizations
        WHERE organization_id = $1;
    `
	org, err := scanOrganization(r.db.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID: %w", err)
	}
	return org, nil
}

func (r *OrganizationRepository) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	query := `
        SELECT o.organization_id, o.name, o.location, o.is_active,
               o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
        FROM organizations o
        JOIN user_organizations uo ON uo.organization_id = o.organization_id
        WHERE uo.user_id = $1 AND uo.role != 'REMOVED'
    `
	if !includeDisabled {
		query += " AND o.is_active = TRUE"
	}
	query += " ORDER BY o.created_at ASC;"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user organizations: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, *org)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", rows.Err())
	}
	return orgs, nil
}

func (r *OrganizationRepository) ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
        SELECT user_id, organization_id, role, joined_at
        FROM user_organizations
        WHERE organization_id = $1 AND role != 'REMOVED'
        ORDER BY joined_at ASC;
    `
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization users: %w", err)
	}
	defer rows.Close()

	members := []domain.UserOrganization{}
	for rows.Next() {
		var m domain.UserOrganization
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", rows.Err())
	}
	return members, nil
}

func (r *OrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (domain.UserOrganizationRole, error) {
	query := `
        SELECT role
        FROM user_organizations
        WHERE user_id = $1 AND organization_id = $2;
    `
	var role domain.UserOrganizationRole
	err := r.db.QueryRow(ctx, query, userID, organizationID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find membership role: %w", err)
	}
	return role, nil
}

func (r *OrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	query := `
        INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id, organization_id) DO UPDATE SET
            role = EXCLUDED.role;
    `
	_, err := r.db.Exec(ctx, query,
		membership.UserID,
		membership.OrganizationID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add user to organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error {
	query := `
        UPDATE user_organizations
        SET role = $3
        WHERE user_id = $1 AND organization_id = $2;
    `
	tag, err := r.db.Exec(ctx, query, userID, organizationID, role)
	if err != nil {
		return fmt.Errorf("failed to update membership role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepository) SetOrganizationActive(ctx context.Context, organizationID string, active bool, updatedBy string) error {
	query := `
        UPDATE organizations
        SET is_active = $2,
            last_updated_at = $3,
            last_updated_by = $4
        WHERE organization_id = $1;
    `
	tag, err := r.db.Exec(ctx, query, organizationID, active, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set organization active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanOrganization(row pgx.Row) (*domain.Organization, error) {
	var org domain.Organization
	err := row.Scan(
		&org.OrganizationID,
		&org.Name,
		&org.Location,
		&org.IsActive,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &org, nil
}
