package repositories

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// ExpenseRepositoryFacade defines persistence operations for other-expense records.
type ExpenseRepositoryFacade interface {
	// SaveExpense inserts a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// FindExpenseByID retrieves an expense by ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// UpdateExpense persists changes to an existing expense.
	UpdateExpense(ctx context.Context, expense domain.Expense) error

	// DeactivateExpense soft-deletes an expense.
	DeactivateExpense(ctx context.Context, expenseID string, userID string, now time.Time) error

	// ListExpensesForRange returns every active expense for the organization
	// within the date range, oldest first.
	ListExpensesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Expense, error)
}
