package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

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

var _ portssvc.DownloadBrokerSvc = (*MockDownloadBroker)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportReport(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (*domain.ReportFile, error) {
	args := m.Called(ctx, organizationID, from, to, format, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

func (m *MockExportService) IssueDownloadLink(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (string, string, error) {
	args := m.Called(ctx, organizationID, from, to, format, requestingUserID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockExportService) BuildReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportFile, error) {
	args := m.Called(ctx, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFile), args.Error(1)
}

var _ portssvc.ExportSvcFacade = (*MockExportService)(nil)

// --- Test Suite ---
type DownloadHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockBroker *MockDownloadBroker
	mockExport *MockExportService
}

func (suite *DownloadHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockBroker = new(MockDownloadBroker)
	suite.mockExport = new(MockExportService)
	handlers.RegisterDownloadRoutes(suite.router, suite.mockBroker, suite.mockExport)
}

func (suite *DownloadHandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &body)
	suite.Require().NoError(err, "Failed to unmarshal error body")
	return body.Error
}

// --- Test Cases ---

func (suite *DownloadHandlerTestSuite) TestDownload_Success() {
	token := "deadbeefdeadbeefdeadbeefdeadbeef"
	spec := &domain.ReportSpec{
		OrganizationID: uuid.NewString(),
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Format:         domain.FormatCSV,
	}
	file := &domain.ReportFile{
		FileName:    "crusher-report_2025-01-01_2025-01-31.csv",
		ContentType: "text/csv",
		Bytes:       []byte("Date,Time\n"),
	}

	suite.mockBroker.On("Redeem", mock.Anything, token).Return(spec, nil).Once()
	suite.mockExport.On("BuildReport", mock.Anything, *spec).Return(file, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/download/"+token, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), file.FileName)
	suite.Equal("Date,Time\n", w.Body.String())
	suite.mockBroker.AssertExpectations(suite.T())
	suite.mockExport.AssertExpectations(suite.T())
}

func (suite *DownloadHandlerTestSuite) TestDownload_InvalidToken() {
	suite.mockBroker.On("Redeem", mock.Anything, "bogus").Return(nil, apperrors.ErrTokenInvalid).Once()

	req, _ := http.NewRequest(http.MethodGet, "/download/bogus", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(apperrors.ErrTokenInvalid.Error(), suite.errorBody(w))
	suite.mockExport.AssertNotCalled(suite.T(), "BuildReport")
}

func (suite *DownloadHandlerTestSuite) TestDownload_SecondRedemptionLooksIdentical() {
	token := "c0ffee00c0ffee00c0ffee00c0ffee00"
	spec := &domain.ReportSpec{OrganizationID: uuid.NewString(), Format: domain.FormatPDF}
	file := &domain.ReportFile{FileName: "r.pdf", ContentType: "application/pdf", Bytes: []byte("%PDF")}

	suite.mockBroker.On("Redeem", mock.Anything, token).Return(spec, nil).Once()
	suite.mockExport.On("BuildReport", mock.Anything, *spec).Return(file, nil).Once()
	// Token gone after the first hit.
	suite.mockBroker.On("Redeem", mock.Anything, token).Return(nil, apperrors.ErrTokenInvalid).Once()

	req, _ := http.NewRequest(http.MethodGet, "/download/"+token, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(apperrors.ErrTokenInvalid.Error(), suite.errorBody(w))
	suite.mockBroker.AssertExpectations(suite.T())
}

func (suite *DownloadHandlerTestSuite) TestDownload_BuildFailureAfterRedeem() {
	token := "feedfacefeedfacefeedfacefeedface"
	spec := &domain.ReportSpec{OrganizationID: uuid.NewString(), Format: domain.FormatXLSX}

	suite.mockBroker.On("Redeem", mock.Anything, token).Return(spec, nil).Once()
	suite.mockExport.On("BuildReport", mock.Anything, *spec).Return(nil, context.DeadlineExceeded).Once()

	req, _ := http.NewRequest(http.MethodGet, "/download/"+token, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.mockBroker.AssertExpectations(suite.T())
	suite.mockExport.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestDownloadHandler(t *testing.T) {
	suite.Run(t, new(DownloadHandlerTestSuite))
}
