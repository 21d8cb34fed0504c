package cache

import (
	"context"
	"sync"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
)

// tokenEntry is a stored spec plus its expiry deadline.
type tokenEntry struct {
	spec      domain.ReportSpec
	expiresAt time.Time
}

// MemoryTokenStore is the in-process ReportTokenStore for single-instance
// deployments. The mutex covers every lookup-then-delete pair, so at most one
// Take ever succeeds for a given token regardless of concurrent requests.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]tokenEntry
	now    func() time.Time
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]tokenEntry),
		now:    time.Now,
	}
}

// Ensure MemoryTokenStore implements the port.
var _ portsrepo.ReportTokenStore = (*MemoryTokenStore)(nil)

// Put stores the spec under token with the given time to live.
func (s *MemoryTokenStore) Put(ctx context.Context, token string, spec domain.ReportSpec, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = tokenEntry{
		spec:      spec,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Take removes and returns the spec for token. Absent, expired and
// already-taken tokens all return apperrors.ErrNotFound.
func (s *MemoryTokenStore) Take(ctx context.Context, token string) (*domain.ReportSpec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	delete(s.tokens, token)

	if s.now().After(entry.expiresAt) {
		return nil, apperrors.ErrNotFound
	}
	spec := entry.spec
	return &spec, nil
}

// Sweep removes expired entries so abandoned links do not accumulate.
func (s *MemoryTokenStore) Sweep(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for token, entry := range s.tokens {
		if now.After(entry.expiresAt) {
			delete(s.tokens, token)
		}
	}
}
