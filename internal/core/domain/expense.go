package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a dated, non-truck operating cost (diesel, repairs, wages, ...).
type Expense struct {
	ExpenseID      string          `json:"expenseID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	Amount         decimal.Decimal `json:"amount"` // non-negative
	Category       string          `json:"category,omitempty"`
	Description    string          `json:"description,omitempty"`
	ExpenseDate    time.Time       `json:"expenseDate"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
