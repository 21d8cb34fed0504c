package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/dto"
	"github.com/google/uuid"
)

// expenseService implements the ExpenseSvcFacade interface.
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

// ExpenseServiceOption is a functional option for configuring the expense service.
type ExpenseServiceOption func(*expenseService)

// WithExpenseOrganizationAuthorizer sets the organization authorizer for the expense service.
func WithExpenseOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ExpenseServiceOption {
	return func(s *expenseService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewExpenseService creates a new expense service with the provided options.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// CreateExpense validates and records an expense.
func (s *expenseService) CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	expenseDate, err := parseEntryDate(req.ExpenseDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := domain.Expense{
		ExpenseID:      uuid.NewString(),
		OrganizationID: organizationID,
		Amount:         req.Amount,
		Category:       req.Category,
		Description:    req.Description,
		ExpenseDate:    expenseDate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("amount", expense.Amount.String()))
	return &expense, nil
}

// GetExpense retrieves an expense scoped to the organization.
func (s *expenseService) GetExpense(ctx context.Context, organizationID, expenseID string, requestingUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OrganizationID != organizationID || !expense.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return expense, nil
}

// ListExpenses returns active expenses in the date range.
func (s *expenseService) ListExpenses(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) ([]domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: fromDate must not be after toDate", apperrors.ErrValidation)
	}

	expenses, err := s.expenseRepo.ListExpensesForRange(ctx, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial edit.
func (s *expenseService) UpdateExpense(ctx context.Context, organizationID, expenseID string, req dto.UpdateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OrganizationID != organizationID || !expense.IsActive {
		return nil, apperrors.ErrNotFound
	}

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
		}
		expense.Amount = *req.Amount
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.ExpenseDate != nil {
		expenseDate, err := parseEntryDate(*req.ExpenseDate)
		if err != nil {
			return nil, err
		}
		expense.ExpenseDate = expenseDate
	}

	expense.LastUpdatedAt = time.Now().UTC()
	expense.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.UpdateExpense(ctx, *expense); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, organizationID, expenseID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleManager); err != nil {
		return err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.OrganizationID != organizationID || !expense.IsActive {
		return apperrors.ErrNotFound
	}

	if err := s.expenseRepo.DeactivateExpense(ctx, expenseID, requestingUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
