package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-calc/domain"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "short", "a", time.Minute))
	require.NoError(t, cache.Set(ctx, "forever", "b", 0))

	val, ok, err := cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", val)

	now = now.Add(time.Minute)

	_, ok, err = cache.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)

	val, ok, _ = cache.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, "b", val)
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCache_SetEvictsUnreadExpiredEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "stale", "a", 10*time.Second))

	// expired, but the last sweep was too recent
	now = now.Add(30 * time.Second)
	require.NoError(t, cache.Set(ctx, "other", "b", 10*time.Minute))
	assert.Equal(t, 2, cache.Len())

	now = now.Add(30 * time.Second)
	require.NoError(t, cache.Set(ctx, "fresh", "c", 10*time.Minute))
	assert.Equal(t, 2, cache.Len())

	cache.mu.Lock()
	_, stillThere := cache.data["stale"]
	cache.mu.Unlock()
	assert.False(t, stillThere)
}

func TestMemoryCache_Miss(t *testing.T) {
	_, ok, err := NewMemoryCache().Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLoanRepositoryMemory_Recent(t *testing.T) {
	ctx := context.Background()
	repo := NewLoanRepositoryMemory(3)

	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Save(ctx, domain.CalculationRecord{ID: id}))
	}

	records, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "d", records[0].ID)
	assert.Equal(t, "b", records[2].ID)

	records, err = repo.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c"}, []string{records[0].ID, records[1].ID})
}
