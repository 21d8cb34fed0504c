package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/adapters/cache"
	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/StoneLedger/crusher_books_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportTokenStore ---
type MockReportTokenStore struct {
	mock.Mock
}

func (m *MockReportTokenStore) Put(ctx context.Context, token string, spec domain.ReportSpec, ttl time.Duration) error {
	args := m.Called(ctx, token, spec, ttl)
	return args.Error(0)
}

func (m *MockReportTokenStore) Take(ctx context.Context, token string) (*domain.ReportSpec, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSpec), args.Error(1)
}

func (m *MockReportTokenStore) Sweep(ctx context.Context) {
	m.Called(ctx)
}

// --- Test Suite ---
type DownloadBrokerTestSuite struct {
	suite.Suite
	mockStore *MockReportTokenStore
	spec      domain.ReportSpec
}

func (suite *DownloadBrokerTestSuite) SetupTest() {
	suite.mockStore = new(MockReportTokenStore)
	suite.spec = domain.ReportSpec{
		OrganizationID: uuid.NewString(),
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Format:         domain.FormatCSV,
		RequestedBy:    uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
	}
}

// --- Test Cases ---

func (suite *DownloadBrokerTestSuite) TestIssue_Success() {
	ctx := context.Background()
	ttl := 2 * time.Minute
	broker := services.NewDownloadBroker(suite.mockStore, ttl)

	suite.mockStore.On("Put", ctx, mock.AnythingOfType("string"), suite.spec, ttl).Return(nil).Once()
	suite.mockStore.On("Sweep", ctx).Return().Once()

	token, err := broker.Issue(ctx, suite.spec)

	suite.Require().NoError(err)
	suite.Len(token, 32, "16 random bytes hex encode to 32 characters")
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DownloadBrokerTestSuite) TestIssue_StoreError() {
	ctx := context.Background()
	broker := services.NewDownloadBroker(suite.mockStore, time.Minute)
	expectedErr := assert.AnError

	suite.mockStore.On("Put", ctx, mock.AnythingOfType("string"), suite.spec, time.Minute).Return(expectedErr).Once()

	token, err := broker.Issue(ctx, suite.spec)

	suite.Require().Error(err)
	suite.Empty(token)
	suite.ErrorIs(err, expectedErr)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DownloadBrokerTestSuite) TestRedeem_Success() {
	ctx := context.Background()
	broker := services.NewDownloadBroker(suite.mockStore, time.Minute)
	token := "c0ffee00c0ffee00c0ffee00c0ffee00"

	suite.mockStore.On("Sweep", ctx).Return().Once()
	suite.mockStore.On("Take", ctx, token).Return(&suite.spec, nil).Once()

	got, err := broker.Redeem(ctx, token)

	suite.Require().NoError(err)
	suite.Equal(&suite.spec, got)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DownloadBrokerTestSuite) TestRedeem_AnyStoreFailureIsTokenInvalid() {
	ctx := context.Background()
	broker := services.NewDownloadBroker(suite.mockStore, time.Minute)

	// The caller must not be able to distinguish unknown, expired and
	// already-used tokens, nor see internal store errors.
	for _, storeErr := range []error{apperrors.ErrNotFound, assert.AnError} {
		suite.mockStore.On("Sweep", ctx).Return().Once()
		suite.mockStore.On("Take", ctx, "nope").Return(nil, storeErr).Once()

		got, err := broker.Redeem(ctx, "nope")

		suite.Require().Error(err)
		suite.Nil(got)
		suite.ErrorIs(err, apperrors.ErrTokenInvalid)
	}
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *DownloadBrokerTestSuite) TestIssueThenRedeem_SingleUse() {
	ctx := context.Background()
	broker := services.NewDownloadBroker(cache.NewMemoryTokenStore(), 2*time.Minute)

	token, err := broker.Issue(ctx, suite.spec)
	suite.Require().NoError(err)

	got, err := broker.Redeem(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(suite.spec.OrganizationID, got.OrganizationID)
	suite.Equal(suite.spec.Format, got.Format)

	// Second redemption of the same token fails like any other bad token.
	_, err = broker.Redeem(ctx, token)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (suite *DownloadBrokerTestSuite) TestTokensAreUnique() {
	ctx := context.Background()
	broker := services.NewDownloadBroker(cache.NewMemoryTokenStore(), time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := broker.Issue(ctx, suite.spec)
		suite.Require().NoError(err)
		suite.False(seen[token], "token issued twice: %s", token)
		seen[token] = true
	}
}

// --- Run Suite ---
func TestDownloadBroker(t *testing.T) {
	suite.Run(t, new(DownloadBrokerTestSuite))
}
