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

type RateRepository struct {
	db *pgxpool.Pool
}

func NewRateRepository(db *pgxpool.Pool) *RateRepository {
	return &RateRepository{db: db}
}

// Ensure RateRepository implements the port.
var _ portsrepo.RateRepositoryFacade = (*RateRepository)(nil)

const rateColumns = `
	rate_id, organization_id, material_type, rate_per_unit, effective_from,
	created_at, created_by, last_updated_at, last_updated_by
`

func (r *RateRepository) SaveRate(ctx context.Context, rate domain.MaterialRate) error {
	query := `
        INSERT INTO material_rates (` + rateColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		rate.RateID,
		rate.OrganizationID,
		rate.MaterialType,
		rate.RatePerUnit,
		rate.EffectiveFrom,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save material rate: %w", err)
	}
	return nil
}

func (r *RateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.MaterialRate, error) {
	query := `
        SELECT ` + rateColumns + `
        FROM material_rates
        WHERE rate_id = $1;
    `
	rate, err := scanRate(r.db.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate by ID: %w", err)
	}
	return rate, nil
}

func (r *RateRepository) ListRates(ctx context.Context, organizationID string) ([]domain.MaterialRate, error) {
	query := `
        SELECT ` + rateColumns + `
        FROM material_rates
        WHERE organization_id = $1
        ORDER BY effective_from DESC, material_type ASC;
    `
	rows, err := r.db.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query material rates: %w", err)
	}
	defer rows.Close()

	rates := []domain.MaterialRate{}
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		rates = append(rates, *rate)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating rate rows: %w", rows.Err())
	}
	return rates, nil
}

// FindLatestRate returns the newest rate whose effective_from is not after asOf.
func (r *RateRepository) FindLatestRate(ctx context.Context, organizationID string, material domain.MaterialType, asOf time.Time) (*domain.MaterialRate, error) {
	query := `
        SELECT ` + rateColumns + `
        FROM material_rates
        WHERE organization_id = $1
          AND material_type = $2
          AND effective_from <= $3
        ORDER BY effective_from DESC
        LIMIT 1;
    `
	rate, err := scanRate(r.db.QueryRow(ctx, query, organizationID, material, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate: %w", err)
	}
	return rate, nil
}

func (r *RateRepository) UpdateRate(ctx context.Context, rate domain.MaterialRate) error {
	query := `
        UPDATE material_rates
        SET rate_per_unit = $2,
            effective_from = $3,
            last_updated_at = $4,
            last_updated_by = $5
        WHERE rate_id = $1;
    `
	tag, err := r.db.Exec(ctx, query,
		rate.RateID,
		rate.RatePerUnit,
		rate.EffectiveFrom,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update material rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RateRepository) DeleteRate(ctx context.Context, rateID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM material_rates WHERE rate_id = $1;`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete material rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanRate(row pgx.Row) (*domain.MaterialRate, error) {
	var rate domain.MaterialRate
	err := row.Scan(
		&rate.RateID,
		&rate.OrganizationID,
		&rate.MaterialType,
		&rate.RatePerUnit,
		&rate.EffectiveFrom,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
