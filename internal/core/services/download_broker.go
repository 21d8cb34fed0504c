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
	"github.com/StoneLedger/crusher_books_app/internal/utils"
)

// downloadTokenBytes is the entropy of an issued token: 16 bytes, hex encoded
// to a 32-character opaque string.
const downloadTokenBytes = 16

// downloadBroker implements DownloadBrokerSvc on top of an injected
// ReportTokenStore. A token moves Issued -> Redeemed (removed on first
// successful Redeem) or Issued -> Expired (removed on sweep or lookup);
// nothing else. Failed redemptions are a normal user-facing outcome, not an
// incident, so they log at debug.
type downloadBroker struct {
	BaseService
	store portsrepo.ReportTokenStore
	ttl   time.Duration
}

// NewDownloadBroker creates a broker issuing tokens with the given TTL.
// The TTL is a policy knob, not a protocol invariant: long enough for a
// browser to follow the link once, short enough to bound the table and the
// exposure window of the unauthenticated fetch path.
func NewDownloadBroker(store portsrepo.ReportTokenStore, ttl time.Duration) portssvc.DownloadBrokerSvc {
	return &downloadBroker{
		store: store,
		ttl:   ttl,
	}
}

var _ portssvc.DownloadBrokerSvc = (*downloadBroker)(nil)

// Issue generates an opaque random token and binds spec to it for the TTL.
func (b *downloadBroker) Issue(ctx context.Context, spec domain.ReportSpec) (string, error) {
	token, err := utils.GenerateSecureRandomString(downloadTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate download token: %w", err)
	}

	if err := b.store.Put(ctx, token, spec, b.ttl); err != nil {
		return "", fmt.Errorf("failed to store download token: %w", err)
	}

	b.store.Sweep(ctx)

	b.LogInfo(ctx, "Issued download token",
		slog.String("organization_id", spec.OrganizationID),
		slog.String("format", string(spec.Format)),
		slog.Duration("ttl", b.ttl))
	return token, nil
}

// Redeem consumes the token exactly once. Unknown, expired and already-used
// tokens are indistinguishable to the caller.
func (b *downloadBroker) Redeem(ctx context.Context, token string) (*domain.ReportSpec, error) {
	b.store.Sweep(ctx)

	spec, err := b.store.Take(ctx, token)
	if err != nil {
		b.LogDebug(ctx, "Download token redemption failed", slog.String("error", err.Error()))
		return nil, apperrors.ErrTokenInvalid
	}

	b.LogInfo(ctx, "Redeemed download token",
		slog.String("organization_id", spec.OrganizationID),
		slog.String("format", string(spec.Format)))
	return spec, nil
}
