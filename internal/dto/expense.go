package dto

import (
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest holds the payload for recording an other-expense.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expenseDate" binding:"required,dateformat"` // YYYY-MM-DD
}

// UpdateExpenseRequest holds the payload for editing an expense.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Description *string          `json:"description,omitempty"`
	ExpenseDate *string          `json:"expenseDate,omitempty"` // YYYY-MM-DD
}

// ExpenseResponse is the API representation of an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	ExpenseDate string          `json:"expenseDate"`
}

// ToExpenseResponse converts a domain expense to its API representation.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
	}
}

// ToExpenseResponses converts a slice of domain expenses.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}
