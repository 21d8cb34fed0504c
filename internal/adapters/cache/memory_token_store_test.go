package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec() domain.ReportSpec {
	return domain.ReportSpec{
		OrganizationID: "org-1",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		Format:         domain.FormatCSV,
		RequestedBy:    "user-1",
		CreatedAt:      time.Now().UTC(),
	}
}

func TestMemoryTokenStore_PutAndTake(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	require.NoError(t, store.Put(ctx, "tok-1", testSpec(), time.Minute))

	spec, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "org-1", spec.OrganizationID)
	assert.Equal(t, domain.FormatCSV, spec.Format)
}

func TestMemoryTokenStore_TakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	require.NoError(t, store.Put(ctx, "tok-1", testSpec(), time.Minute))

	_, err := store.Take(ctx, "tok-1")
	require.NoError(t, err)

	_, err = store.Take(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryTokenStore_TakeUnknownToken(t *testing.T) {
	store := NewMemoryTokenStore()

	_, err := store.Take(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryTokenStore_ExpiredTokenIsGone(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "tok-1", testSpec(), 2*time.Minute))

	current = current.Add(2*time.Minute + time.Second)

	_, err := store.Take(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryTokenStore_SweepRemovesExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "stale", testSpec(), time.Minute))
	require.NoError(t, store.Put(ctx, "fresh", testSpec(), time.Hour))

	current = current.Add(5 * time.Minute)
	store.Sweep(ctx)

	store.mu.Lock()
	_, staleExists := store.tokens["stale"]
	_, freshExists := store.tokens["fresh"]
	store.mu.Unlock()

	assert.False(t, staleExists)
	assert.True(t, freshExists)
}

func TestMemoryTokenStore_ConcurrentTakeSucceedsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	require.NoError(t, store.Put(ctx, "tok-1", testSpec(), time.Minute))

	const goroutines = 32
	var wg sync.WaitGroup
	var successes int64
	var mu sync.Mutex

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Take(ctx, "tok-1"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
}
