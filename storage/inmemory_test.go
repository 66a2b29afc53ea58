package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"minibitly/types"
)

func TestInMemoryStorage(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := NewInMemoryStorage(10, logger)

	t.Run("NewInMemoryStorage", func(t *testing.T) {
		store := NewInMemoryStorage(0, logger)
		assert.Equal(t, 1000, store.capacity, "Capacity should be set to default 1000 when input is 0")

		store = NewInMemoryStorage(-5, logger)
		assert.Equal(t, 1000, store.capacity, "Capacity should be set to default 1000 when input is negative")

		store = NewInMemoryStorage(10, nil)
		assert.NotNil(t, store.logger, "Logger should be initialized when input is nil")
	})

	t.Run("CreateShortLink", func(t *testing.T) {
		link, err := store.CreateShortLink(ctx, types.ShortLink{ShortCode: "abc123", OriginalURL: "https://example.com"})
		require.NoError(t, err)
		assert.NotZero(t, link.ID, "Stored link should have an ID assigned")
		assert.False(t, link.CreatedAt.IsZero(), "Stored link should have CreatedAt assigned")

		// Duplicate short code must be rejected
		_, err = store.CreateShortLink(ctx, types.ShortLink{ShortCode: "abc123", OriginalURL: "https://other.com"})
		assert.Equal(t, ErrShortCodeExists, err)
	})

	t.Run("GetByShortCode", func(t *testing.T) {
		link, err := store.GetByShortCode(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", link.OriginalURL)

		_, err = store.GetByShortCode(ctx, "doesnotexist")
		assert.Equal(t, ErrShortLinkNotFound, err)
	})

	t.Run("GetByOriginalURL", func(t *testing.T) {
		link, err := store.GetByOriginalURL(ctx, "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "abc123", link.ShortCode)

		_, err = store.GetByOriginalURL(ctx, "https://unknown.example.com")
		assert.Equal(t, ErrShortLinkNotFound, err)
	})

	t.Run("Visits", func(t *testing.T) {
		count, err := store.CountVisits(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count, "A fresh link should have zero visits")

		t0 := time.Now().UTC()
		require.NoError(t, store.CreateVisit(ctx, types.VisitRecord{ShortCode: "abc123", VisitorAddr: "1.2.3.4", VisitedAt: t0}))
		require.NoError(t, store.CreateVisit(ctx, types.VisitRecord{ShortCode: "abc123", VisitorAddr: "5.6.7.8"}))

		count, err = store.CountVisits(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		err = store.CreateVisit(ctx, types.VisitRecord{ShortCode: "doesnotexist", VisitorAddr: "1.2.3.4"})
		assert.Equal(t, ErrShortLinkNotFound, err)

		_, err = store.CountVisits(ctx, "doesnotexist")
		assert.Equal(t, ErrShortLinkNotFound, err)
	})

	t.Run("CapacityLimit", func(t *testing.T) {
		for i := 0; i < 9; i++ {
			_, err := store.CreateShortLink(ctx, types.ShortLink{ShortCode: fmt.Sprintf("test%d", i), OriginalURL: "https://test.com"})
			require.NoError(t, err)
		}

		_, err := store.CreateShortLink(ctx, types.ShortLink{ShortCode: "overflow", OriginalURL: "https://test.com"})
		assert.Equal(t, ErrStorageCapacityReached, err)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.CreateShortLink(cancelledCtx, types.ShortLink{ShortCode: "ctx123", OriginalURL: "https://example.com"})
		assert.ErrorIs(t, err, context.Canceled)

		_, err = store.GetByShortCode(cancelledCtx, "abc123")
		assert.ErrorIs(t, err, context.Canceled)

		err = store.CreateVisit(cancelledCtx, types.VisitRecord{ShortCode: "abc123"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestInMemoryStorageConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage(1000, zap.NewNop())

	// Many goroutines racing to the same code: exactly one insert wins,
	// the rest observe the uniqueness violation.
	const goroutines = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	conflicts := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateShortLink(ctx, types.ShortLink{ShortCode: "race01", OriginalURL: "https://example.com"})
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				created++
			case ErrShortCodeExists:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "Exactly one concurrent insert should win")
	assert.Equal(t, goroutines-1, conflicts)
}

func TestInMemoryStorageConcurrentVisits(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStorage(10, zap.NewNop())

	_, err := store.CreateShortLink(ctx, types.ShortLink{ShortCode: "visits", OriginalURL: "https://example.com"})
	require.NoError(t, err)

	const visits = 100
	var wg sync.WaitGroup
	for i := 0; i < visits; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := store.CreateVisit(ctx, types.VisitRecord{ShortCode: "visits", VisitorAddr: fmt.Sprintf("10.0.0.%d", n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := store.CountVisits(ctx, "visits")
	require.NoError(t, err)
	assert.Equal(t, int64(visits), count)
}
