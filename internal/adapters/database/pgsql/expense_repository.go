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

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Ensure ExpenseRepository implements the port.
var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

const expenseColumns = `
	expense_id, organization_id, amount, category, description, expense_date,
	is_active, created_at, created_by, last_updated_at, last_updated_by
`

func (r *ExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        INSERT INTO other_expenses (` + expenseColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.OrganizationID,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.ExpenseDate,
		expense.IsActive,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
        SELECT ` + expenseColumns + `
        FROM other_expenses
        WHERE expense_id = $1;
    `
	var x domain.Expense
	err := r.db.QueryRow(ctx, query, expenseID).Scan(
		&x.ExpenseID,
		&x.OrganizationID,
		&x.Amount,
		&x.Category,
		&x.Description,
		&x.ExpenseDate,
		&x.IsActive,
		&x.CreatedAt,
		&x.CreatedBy,
		&x.LastUpdatedAt,
		&x.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return &x, nil
}

func (r *ExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	query := `
        UPDATE other_expenses
        SET amount = $2,
            category = $3,
            description = $4,
            expense_date = $5,
            last_updated_at = $6,
            last_updated_by = $7
        WHERE expense_id = $1 AND is_active = TRUE;
    `
	tag, err := r.db.Exec(ctx, query,
		expense.ExpenseID,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.ExpenseDate,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) DeactivateExpense(ctx context.Context, expenseID string, userID string, now time.Time) error {
	query := `
        UPDATE other_expenses
        SET is_active = FALSE,
            last_updated_at = $2,
            last_updated_by = $3
        WHERE expense_id = $1 AND is_active = TRUE;
    `
	tag, err := r.db.Exec(ctx, query, expenseID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) ListExpensesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Expense, error) {
	query := `
        SELECT ` + expenseColumns + `
        FROM other_expenses
        WHERE organization_id = $1
          AND is_active = TRUE
          AND expense_date >= $2
          AND expense_date <= $3
        ORDER BY expense_date ASC, created_at ASC;
    `
	rows, err := r.db.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		var x domain.Expense
		err := rows.Scan(
			&x.ExpenseID,
			&x.OrganizationID,
			&x.Amount,
			&x.Category,
			&x.Description,
			&x.ExpenseDate,
			&x.IsActive,
			&x.CreatedAt,
			&x.CreatedBy,
			&x.LastUpdatedAt,
			&x.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, x)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}
