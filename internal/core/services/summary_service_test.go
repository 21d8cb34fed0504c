package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SummaryRepository ---
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) GetEntryTypeTotals(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]portsrepo.EntryTypeTotal, error) {
	args := m.Called(ctx, organizationID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.EntryTypeTotal), args.Error(1)
}

func (m *MockSummaryRepository) GetExpenseTotals(ctx context.Context, organizationID string, from, to time.Time) (decimal.Decimal, int, error) {
	args := m.Called(ctx, organizationID, from, to)
	return args.Get(0).(decimal.Decimal), args.Int(1), args.Error(2)
}

// --- Mock TruckEntryRepository ---
type MockTruckEntryRepository struct {
	mock.Mock
}

func (m *MockTruckEntryRepository) SaveTruckEntry(ctx context.Context, entry domain.TruckEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTruckEntryRepository) FindTruckEntryByID(ctx context.Context, entryID string) (*domain.TruckEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TruckEntry), args.Error(1)
}

func (m *MockTruckEntryRepository) UpdateTruckEntry(ctx context.Context, entry domain.TruckEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTruckEntryRepository) MarkTruckEntryDeleted(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockTruckEntryRepository) ListTruckEntries(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter, limit int, nextToken string) ([]domain.TruckEntry, string, error) {
	args := m.Called(ctx, organizationID, from, to, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.TruckEntry), args.String(1), args.Error(2)
}

func (m *MockTruckEntryRepository) ListTruckEntriesForRange(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) ([]domain.TruckEntry, error) {
	args := m.Called(ctx, organizationID, from, to, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TruckEntry), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeactivateExpense(ctx context.Context, expenseID string, userID string, now time.Time) error {
	args := m.Called(ctx, expenseID, userID, now)
	return args.Error(0)
}

func (m *MockExpenseRepository) ListExpensesForRange(ctx context.Context, organizationID string, from, to time.Time) ([]domain.Expense, error) {
	args := m.Called(ctx, organizationID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

// --- Mock OrganizationAuthorizer ---
type MockOrganizationAuthorizer struct {
	mock.Mock
}

func (m *MockOrganizationAuthorizer) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Test Suite ---
type SummaryServiceTestSuite struct {
	suite.Suite
	mockSummaryRepo *MockSummaryRepository
	mockEntryRepo   *MockTruckEntryRepository
	mockExpenseRepo *MockExpenseRepository
	mockAuthorizer  *MockOrganizationAuthorizer
	service         portssvc.SummarySvc
	computer        portssvc.SummaryComputer

	orgID  string
	userID string
	from   time.Time
	to     time.Time
}

func (suite *SummaryServiceTestSuite) SetupTest() {
	suite.mockSummaryRepo = new(MockSummaryRepository)
	suite.mockEntryRepo = new(MockTruckEntryRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewSummaryService(
		suite.mockSummaryRepo,
		suite.mockEntryRepo,
		suite.mockExpenseRepo,
		services.WithSummaryOrganizationAuthorizer(suite.mockAuthorizer),
	)
	suite.computer = suite.service.(portssvc.SummaryComputer)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
}

func (suite *SummaryServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.orgID, domain.RoleReadOnly).Return(nil).Once()
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// --- Test Cases ---

func (suite *SummaryServiceTestSuite) TestSummarize_GroupedPath() {
	ctx := context.Background()
	filter := domain.EntryFilter{}
	suite.expectAuthorized()

	// Two sales trips (10 x 22000, 5 x 20000), one raw stone trip (8 x 18000)
	// and one 5000 expense.
	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{
			{EntryType: domain.EntrySales, Total: dec(320000), Count: 2},
			{EntryType: domain.EntryRawStone, Total: dec(144000), Count: 1},
		}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(dec(5000), 1, nil).Once()

	summary, err := suite.service.Summarize(ctx, suite.orgID, suite.from, suite.to, filter, suite.userID)

	suite.Require().NoError(err)
	suite.True(summary.TotalSales.Equal(dec(320000)), "totalSales = %s", summary.TotalSales)
	suite.True(summary.TotalRawStone.Equal(dec(144000)), "totalRawStone = %s", summary.TotalRawStone)
	suite.True(summary.TotalOtherExpenses.Equal(dec(5000)), "totalOtherExpenses = %s", summary.TotalOtherExpenses)
	suite.True(summary.TotalExpenses.Equal(dec(149000)), "totalExpenses = %s", summary.TotalExpenses)
	suite.True(summary.NetProfit.Equal(dec(171000)), "netProfit = %s", summary.NetProfit)
	suite.Equal(2, summary.SalesCount)
	suite.Equal(1, summary.RawStoneCount)
	suite.Equal(1, summary.OtherExpensesCount)
	suite.Equal(4, summary.TotalEntries)

	// The grouped path produced non-zero truck totals, so no raw rescan ran.
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListTruckEntriesForRange")
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "ListExpensesForRange")
	suite.mockSummaryRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestSummarize_Forbidden() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.orgID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.Summarize(ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSummaryRepo.AssertNotCalled(suite.T(), "GetEntryTypeTotals")
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_FallbackWinsOverEmptyGroupedResult() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	// Grouped query reports zero truck totals for the range; records exist.
	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(decimal.Zero, 0, nil).Once()

	sale := domain.TruckEntry{
		EntryType:   domain.EntrySales,
		Units:       dec(10),
		RatePerUnit: dec(22000),
		TotalAmount: dec(220000),
	}
	rawStone := domain.TruckEntry{
		EntryType:   domain.EntryRawStone,
		Units:       dec(8),
		RatePerUnit: dec(18000),
		TotalAmount: dec(144000),
	}
	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]domain.TruckEntry{sale, rawStone}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesForRange", ctx, suite.orgID, suite.from, suite.to).
		Return([]domain.Expense{{Amount: dec(5000)}}, nil).Once()

	summary, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, filter)

	suite.Require().NoError(err)
	suite.True(summary.TotalSales.Equal(dec(220000)))
	suite.True(summary.TotalRawStone.Equal(dec(144000)))
	suite.True(summary.TotalOtherExpenses.Equal(dec(5000)))
	suite.True(summary.TotalExpenses.Equal(dec(149000)))
	suite.True(summary.NetProfit.Equal(dec(71000)))
	suite.Equal(3, summary.TotalEntries)

	suite.mockSummaryRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_RescanRepairsZeroedTotal() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(decimal.Zero, 0, nil).Once()

	// Stored total was never recomputed; the rescan derives it from the factors.
	stale := domain.TruckEntry{
		EntryType:   domain.EntrySales,
		Units:       dec(10),
		RatePerUnit: dec(22000),
		TotalAmount: decimal.Zero,
	}
	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]domain.TruckEntry{stale}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesForRange", ctx, suite.orgID, suite.from, suite.to).
		Return([]domain.Expense{}, nil).Once()

	summary, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, filter)

	suite.Require().NoError(err)
	suite.True(summary.TotalSales.Equal(dec(220000)), "totalSales = %s", summary.TotalSales)
	suite.Equal(1, summary.SalesCount)
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_EmptyPeriodIsValid() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(decimal.Zero, 0, nil).Once()
	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]domain.TruckEntry{}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesForRange", ctx, suite.orgID, suite.from, suite.to).
		Return([]domain.Expense{}, nil).Once()

	summary, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, filter)

	suite.Require().NoError(err)
	suite.True(summary.TotalSales.IsZero())
	suite.True(summary.TotalRawStone.IsZero())
	suite.True(summary.TotalExpenses.IsZero())
	suite.True(summary.NetProfit.IsZero())
	suite.Equal(0, summary.TotalEntries)
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_NoFallbackWhenOnlyRawStonePresent() {
	ctx := context.Background()
	filter := domain.EntryFilter{}

	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{
			{EntryType: domain.EntryRawStone, Total: dec(144000), Count: 1},
		}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(decimal.Zero, 0, nil).Once()

	summary, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, filter)

	suite.Require().NoError(err)
	suite.True(summary.TotalRawStone.Equal(dec(144000)))
	suite.True(summary.NetProfit.Equal(dec(-144000)))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "ListTruckEntriesForRange")
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_GroupedQueryError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}).
		Return(nil, expectedErr).Once()

	_, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{})

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

func (suite *SummaryServiceTestSuite) TestComputeSummary_RescanError() {
	ctx := context.Background()
	expectedErr := assert.AnError
	filter := domain.EntryFilter{}

	suite.mockSummaryRepo.On("GetEntryTypeTotals", ctx, suite.orgID, suite.from, suite.to, filter).
		Return([]portsrepo.EntryTypeTotal{}, nil).Once()
	suite.mockSummaryRepo.On("GetExpenseTotals", ctx, suite.orgID, suite.from, suite.to).
		Return(decimal.Zero, 0, nil).Once()
	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, filter).
		Return(nil, expectedErr).Once()

	_, err := suite.computer.ComputeSummary(ctx, suite.orgID, suite.from, suite.to, filter)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Run Suite ---
func TestSummaryService(t *testing.T) {
	suite.Run(t, new(SummaryServiceTestSuite))
}
