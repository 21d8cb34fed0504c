package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/StoneLedger/crusher_books_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TruckEntryRepository struct {
	db *pgxpool.Pool
}

func NewTruckEntryRepository(db *pgxpool.Pool) *TruckEntryRepository {
	return &TruckEntryRepository{db: db}
}

// Ensure TruckEntryRepository implements the port.
var _ portsrepo.TruckEntryRepositoryFacade = (*TruckEntryRepository)(nil)

const truckEntryColumns = `
	entry_id, organization_id, entry_type, material_type, truck_number,
	units, rate_per_unit, total_amount, entry_date, entry_time, status,
	description, created_at, created_by, last_updated_at, last_updated_by
`

func (r *TruckEntryRepository) SaveTruckEntry(ctx context.Context, entry domain.TruckEntry) error {
	query := `
        INSERT INTO truck_entries (` + truckEntryColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
    `
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.OrganizationID,
		entry.EntryType,
		nullableString(string(entry.MaterialType)),
		entry.TruckNumber,
		entry.Units,
		entry.RatePerUnit,
		entry.TotalAmount,
		entry.EntryDate,
		nullableString(entry.EntryTime),
		entry.Status,
		entry.Description,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save truck entry: %w", err)
	}
	return nil
}

func (r *TruckEntryRepository) FindTruckEntryByID(ctx context.Context, entryID string) (*domain.TruckEntry, error) {
	query := `
        SELECT ` + truckEntryColumns + `
        FROM truck_entries
        WHERE entry_id = $1;
    `
	entry, err := scanTruckEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find truck entry by ID: %w", err)
	}
	return entry, nil
}

func (r *TruckEntryRepository) UpdateTruckEntry(ctx context.Context, entry domain.TruckEntry) error {
	query := `
        UPDATE truck_entries
        SET material_type = $2,
            truck_number = $3,
            units = $4,
            rate_per_unit = $5,
            total_amount = $6,
            entry_date = $7,
            entry_time = $8,
            description = $9,
            last_updated_at = $10,
            last_updated_by = $11
        WHERE entry_id = $1 AND status = 'ACTIVE';
    `
	tag, err := r.db.Exec(ctx, query,
		entry.EntryID,
		nullableString(string(entry.MaterialType)),
		entry.TruckNumber,
		entry.Units,
		entry.RatePerUnit,
		entry.TotalAmount,
		entry.EntryDate,
		nullableString(entry.EntryTime),
		entry.Description,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update truck entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TruckEntryRepository) MarkTruckEntryDeleted(ctx context.Context, entryID string, userID string, now time.Time) error {
	query := `
        UPDATE truck_entries
        SET status = 'DELETED',
            last_updated_at = $2,
            last_updated_by = $3
        WHERE entry_id = $1 AND status = 'ACTIVE';
    `
	tag, err := r.db.Exec(ctx, query, entryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark truck entry deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListTruckEntries pages active entries newest first with keyset pagination on
// (entry_date, created_at).
func (r *TruckEntryRepository) ListTruckEntries(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, limit int, nextToken string) ([]domain.TruckEntry, string, error) {
	args := []any{organizationID, from, to}
	query := `
        SELECT ` + truckEntryColumns + `
        FROM truck_entries
        WHERE organization_id = $1
          AND status = 'ACTIVE'
          AND entry_date >= $2
          AND entry_date <= $3
    `

	query, args = appendFilterClauses(query, args, filter)

	if nextToken != "" {
		lastDate, lastCreatedAt, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: invalid page token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, lastDate, lastCreatedAt)
	}

	// Fetch one extra row to decide whether another page exists.
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", len(args)+1)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query truck entries: %w", err)
	}
	defer rows.Close()

	entries, err := collectTruckEntries(rows)
	if err != nil {
		return nil, "", err
	}

	newNextToken := ""
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		newNextToken = pagination.EncodeToken(last.EntryDate, last.CreatedAt)
	}
	return entries, newNextToken, nil
}

// ListTruckEntriesForRange returns every active matching entry. The summary
// fallback and report generation need the complete record set, so there is no
// pagination here.
func (r *TruckEntryRepository) ListTruckEntriesForRange(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]domain.TruckEntry, error) {
	args := []any{organizationID, from, to}
	query := `
        SELECT ` + truckEntryColumns + `
        FROM truck_entries
        WHERE organization_id = $1
          AND status = 'ACTIVE'
          AND entry_date >= $2
          AND entry_date <= $3
    `
	query, args = appendFilterClauses(query, args, filter)
	query += " ORDER BY entry_date ASC, created_at ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query truck entries for range: %w", err)
	}
	defer rows.Close()

	return collectTruckEntries(rows)
}

// appendFilterClauses adds WHERE conditions for the optional entry filter.
func appendFilterClauses(query string, args []any, filter domain.EntryFilter) (string, []any) {
	if filter.EntryType != "" {
		query += fmt.Sprintf(" AND entry_type = $%d", len(args)+1)
		args = append(args, filter.EntryType)
	}
	if filter.MaterialType != "" {
		query += fmt.Sprintf(" AND material_type = $%d", len(args)+1)
		args = append(args, filter.MaterialType)
	}
	if filter.TruckNumber != "" {
		query += fmt.Sprintf(" AND truck_number = $%d", len(args)+1)
		args = append(args, filter.TruckNumber)
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND created_by = $%d", len(args)+1)
		args = append(args, filter.UserID)
	}
	return query, args
}

func collectTruckEntries(rows pgx.Rows) ([]domain.TruckEntry, error) {
	entries := []domain.TruckEntry{}
	for rows.Next() {
		entry, err := scanTruckEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan truck entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating truck entry rows: %w", rows.Err())
	}
	return entries, nil
}

func scanTruckEntry(row pgx.Row) (*domain.TruckEntry, error) {
	var entry domain.TruckEntry
	var materialType, entryTime *string

	err := row.Scan(
		&entry.EntryID,
		&entry.OrganizationID,
		&entry.EntryType,
		&materialType,
		&entry.TruckNumber,
		&entry.Units,
		&entry.RatePerUnit,
		&entry.TotalAmount,
		&entry.EntryDate,
		&entryTime,
		&entry.Status,
		&entry.Description,
		&entry.CreatedAt,
		&entry.CreatedBy,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if materialType != nil {
		entry.MaterialType = domain.MaterialType(*materialType)
	}
	if entryTime != nil {
		entry.EntryTime = *entryTime
	}
	return &entry, nil
}

// nullableString maps "" to NULL for optional text columns.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
