package services

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// ExportSvcFacade produces report files and one-time download links.
type ExportSvcFacade interface {
	// ExportReport authorizes the caller, builds the report and returns it
	// inline.
	ExportReport(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (*domain.ReportFile, error)

	// IssueDownloadLink authorizes the caller, binds a ReportSpec and
	// returns the one-time download URL plus the file name the download
	// will carry.
	IssueDownloadLink(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (downloadURL string, fileName string, err error)

	// BuildReport regenerates a report strictly from a bound spec. No
	// authorization happens here; the spec was authorized at issuance.
	BuildReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportFile, error)
}

// ReportRenderer turns flattened export rows plus their summary into file
// bytes in a concrete format. Implementations live in the render adapter.
type ReportRenderer interface {
	Render(spec domain.ReportSpec, rows []domain.ExportRow, summary domain.Summary) (*domain.ReportFile, error)
}

// DownloadBrokerSvc issues and redeems short-lived, single-use download tokens.
type DownloadBrokerSvc interface {
	// Issue generates a cryptographically random opaque token bound to spec.
	Issue(ctx context.Context, spec domain.ReportSpec) (string, error)

	// Redeem consumes a token exactly once, returning its bound spec.
	// Unknown, expired and already-used tokens all yield
	// apperrors.ErrTokenInvalid.
	Redeem(ctx context.Context, token string) (*domain.ReportSpec, error)
}
