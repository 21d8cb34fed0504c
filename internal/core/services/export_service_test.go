package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SummaryComputer ---
type MockSummaryComputer struct {
	mock.Mock
}

func (m *MockSummaryComputer) ComputeSummary(ctx context.Context, organizationID string, from, to time.Time, filter domain.EntryFilter) (domain.Summary, error) {
	args := m.Called(ctx, organizationID, from, to, filter)
	return args.Get(0).(domain.Summary), args.Error(1)
}

// --- Mock DownloadBroker ---
type MockDownloadBroker struct {
	mock.Mock
}

func (m *MockDownloadBroker) Issue(ctx context.Context, spec domain.ReportSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *MockDownloadBroker) Redeem(ctx context.Context, token string) (*domain.ReportSpec, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSpec), args.Error(1)
}

// --- Mock ReportRenderer ---
type MockReportRenderer struct {
	mock.Mock
}

func (m *MockReportRenderer) Render(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error) {
	args := m.Called(spec, rows, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

// --- Test Suite ---
type ExportServiceTestSuite struct {
	suite.Suite
	mockEntryRepo   *MockTruckEntryRepository
	mockExpenseRepo *MockExpenseRepository
	mockComputer    *MockSummaryComputer
	mockBroker      *MockDownloadBroker
	mockRenderer    *MockReportRenderer
	mockAuthorizer  *MockOrganizationAuthorizer
	service         portssvc.ExportSvcFacade

	orgID  string
	userID string
	from   time.Time
	to     time.Time
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockTruckEntryRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockComputer = new(MockSummaryComputer)
	suite.mockBroker = new(MockDownloadBroker)
	suite.mockRenderer = new(MockReportRenderer)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewExportService(
		suite.mockEntryRepo,
		suite.mockExpenseRepo,
		suite.mockComputer,
		suite.mockBroker,
		suite.mockRenderer,
		"https://api.example.com",
		services.WithExportOrganizationAuthorizer(suite.mockAuthorizer),
	)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.from = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.to = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
}

// --- Test Cases ---

func (suite *ExportServiceTestSuite) TestIssueDownloadLink_Success() {
	ctx := context.Background()
	token := "deadbeefdeadbeefdeadbeefdeadbeef"

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.orgID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockBroker.On("Issue", ctx, mock.MatchedBy(func(spec domain.ReportSpec) bool {
		return spec.OrganizationID == suite.orgID &&
			spec.StartDate.Equal(suite.from) &&
			spec.EndDate.Equal(suite.to) &&
			spec.Format == domain.FormatCSV &&
			spec.RequestedBy == suite.userID
	})).Return(token, nil).Once()

	url, fileName, err := suite.service.IssueDownloadLink(ctx, suite.orgID, suite.from, suite.to, domain.FormatCSV, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("https://api.example.com/download/"+token, url)
	suite.Equal("crusher-report_2025-01-01_2025-01-31.csv", fileName)
	suite.mockBroker.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *ExportServiceTestSuite) TestIssueDownloadLink_UnsupportedFormat() {
	ctx := context.Background()

	_, _, err := suite.service.IssueDownloadLink(ctx, suite.orgID, suite.from, suite.to, domain.ReportFormat("docx"), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "AuthorizeUserAction")
	suite.mockBroker.AssertNotCalled(suite.T(), "Issue")
}

func (suite *ExportServiceTestSuite) TestIssueDownloadLink_InvertedRange() {
	ctx := context.Background()

	_, _, err := suite.service.IssueDownloadLink(ctx, suite.orgID, suite.to, suite.from, domain.FormatPDF, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBroker.AssertNotCalled(suite.T(), "Issue")
}

func (suite *ExportServiceTestSuite) TestIssueDownloadLink_Forbidden() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.orgID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	_, _, err := suite.service.IssueDownloadLink(ctx, suite.orgID, suite.from, suite.to, domain.FormatXLSX, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBroker.AssertNotCalled(suite.T(), "Issue")
}

func (suite *ExportServiceTestSuite) TestBuildReport_RegeneratesFromSpec() {
	ctx := context.Background()
	spec := domain.ReportSpec{
		OrganizationID: suite.orgID,
		StartDate:      suite.from,
		EndDate:        suite.to,
		Format:         domain.FormatCSV,
		RequestedBy:    suite.userID,
	}

	entry := domain.TruckEntry{
		EntryType:   domain.EntrySales,
		TruckNumber: "KA-01-AB-1234",
		Units:       decimal.NewFromInt(10),
		RatePerUnit: decimal.NewFromInt(22000),
		TotalAmount: decimal.NewFromInt(220000),
		EntryDate:   time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		EntryTime:   "09:30",
	}
	expense := domain.Expense{
		Amount:      decimal.NewFromInt(5000),
		Category:    "Diesel",
		ExpenseDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	summary := domain.SummaryParts{
		TotalSales:         decimal.NewFromInt(220000),
		TotalOtherExpenses: decimal.NewFromInt(5000),
		SalesCount:         1,
		OtherExpensesCount: 1,
	}.Combine()
	rendered := &domain.ReportFile{FileName: "crusher-report_2025-01-01_2025-01-31.csv", ContentType: "text/csv", Bytes: []byte("ok")}

	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}).
		Return([]domain.TruckEntry{entry}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesForRange", ctx, suite.orgID, suite.from, suite.to).
		Return([]domain.Expense{expense}, nil).Once()
	suite.mockComputer.On("ComputeSummary", ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}).
		Return(summary, nil).Once()
	suite.mockRenderer.On("Render", spec, mock.MatchedBy(func(rows []domain.ExportRow) bool {
		// Expense precedes the entry (older date) and carries no unit factors.
		return len(rows) == 2 &&
			rows[0].EntryType == "Expense" && rows[0].Units == nil &&
			rows[1].EntryType == "Sales" && rows[1].TruckNumber == "KA-01-AB-1234"
	}), summary).Return(rendered, nil).Once()

	file, err := suite.service.BuildReport(ctx, spec)

	suite.Require().NoError(err)
	suite.Equal(rendered, file)
	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockComputer.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
	// Download-time regeneration never re-checks the caller.
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "AuthorizeUserAction")
}

func (suite *ExportServiceTestSuite) TestExportReport_Inline() {
	ctx := context.Background()
	rendered := &domain.ReportFile{FileName: "crusher-report_2025-01-01_2025-01-31.pdf", ContentType: "application/pdf", Bytes: []byte("%PDF")}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.orgID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockEntryRepo.On("ListTruckEntriesForRange", ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}).
		Return([]domain.TruckEntry{}, nil).Once()
	suite.mockExpenseRepo.On("ListExpensesForRange", ctx, suite.orgID, suite.from, suite.to).
		Return([]domain.Expense{}, nil).Once()
	suite.mockComputer.On("ComputeSummary", ctx, suite.orgID, suite.from, suite.to, domain.EntryFilter{}).
		Return(domain.SummaryParts{}.Combine(), nil).Once()
	suite.mockRenderer.On("Render", mock.AnythingOfType("domain.ReportSpec"), mock.Anything, mock.Anything).
		Return(rendered, nil).Once()

	file, err := suite.service.ExportReport(ctx, suite.orgID, suite.from, suite.to, domain.FormatPDF, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(rendered, file)
}

func TestFlattenExportRows_Ordering(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	entries := []domain.TruckEntry{
		{EntryType: domain.EntrySales, EntryDate: day(10), EntryTime: "14:00", TotalAmount: decimal.NewFromInt(1)},
		{EntryType: domain.EntrySales, EntryDate: day(10), EntryTime: "08:15", TotalAmount: decimal.NewFromInt(2)},
		{EntryType: domain.EntryRawStone, EntryDate: day(2), TotalAmount: decimal.NewFromInt(3)},
	}
	expenses := []domain.Expense{
		{Amount: decimal.NewFromInt(4), Category: "Repairs", ExpenseDate: day(10)},
	}

	rows := services.FlattenExportRows(entries, expenses)

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].EntryType != "Raw Stone" || rows[0].Date != "2025-01-02" {
		t.Errorf("row 0 should be the Jan 2 raw stone entry, got %+v", rows[0])
	}
	// The expense has no time component and sorts before timed entries on
	// the same date.
	if rows[1].EntryType != "Expense" || rows[1].Description != "Repairs" {
		t.Errorf("row 1 should be the expense, got %+v", rows[1])
	}
	if rows[2].Time != "08:15" || rows[3].Time != "14:00" {
		t.Errorf("same-day entries should sort by time, got %s then %s", rows[2].Time, rows[3].Time)
	}
	if rows[1].Units != nil || rows[1].RatePerUnit != nil {
		t.Error("expense rows must not carry unit factors")
	}
}

// --- Run Suite ---
func TestExportService(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}
