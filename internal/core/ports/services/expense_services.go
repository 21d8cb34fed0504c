package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
)

// ExpenseSvcFacade defines other-expense management operations.
type ExpenseSvcFacade interface {
	// CreateExpense validates and records an expense.
	CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// GetExpense retrieves an expense scoped to the organization.
	GetExpense(ctx context.Context, organizationID, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpenses returns active expenses in the date range.
	ListExpenses(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) ([]domain.Expense, error)

	// UpdateExpense applies a partial edit.
	UpdateExpense(ctx context.Context, organizationID, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense soft-deletes an expense.
	DeleteExpense(ctx context.Context, organizationID, expenseID string, requestingUserID string) error
}
