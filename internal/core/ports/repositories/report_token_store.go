package repositories

import (
	"context"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
)

// ReportTokenStore holds issued download tokens for their short lifetime.
// Values are immutable ReportSpec records keyed by the opaque token.
//
// Take must be atomic with respect to concurrent callers: for any token, at
// most one Take ever succeeds. The in-memory implementation guarantees this
// with a mutex around the lookup-then-delete pair; the Redis implementation
// uses GETDEL.
type ReportTokenStore interface {
	// Put stores the spec under token with the given time to live.
	Put(ctx context.Context, token string, spec domain.ReportSpec, ttl time.Duration) error

	// Take removes and returns the spec for token. It returns
	// apperrors.ErrNotFound if the token is absent, expired, or was already
	// taken; an expired entry found during lookup is removed.
	Take(ctx context.Context, token string) (*domain.ReportSpec, error)

	// Sweep opportunistically removes expired entries. Implementations with
	// native TTL may treat it as a no-op. It is called as a side effect of
	// issue/redeem rather than from a background timer.
	Sweep(ctx context.Context)
}
