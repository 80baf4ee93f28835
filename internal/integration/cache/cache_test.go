package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

func newTestCache(t *testing.T) (*RedisAggregateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisAggregateCache(client, time.Minute), mr
}

func TestRedisAggregateCache_Summary(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	categoryID := int64(3)
	filter := entity.TransactionFilter{CategoryID: &categoryID, Search: "Rent"}

	_, token, ok, err := c.GetSummary(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok)

	summary := &entity.TransactionSummary{
		Income:  decimal.RequireFromString("1200.50"),
		Expense: decimal.RequireFromString("300"),
	}
	require.NoError(t, c.SetSummary(ctx, token, filter, summary))

	cached, _, ok, err := c.GetSummary(ctx, entity.TransactionFilter{CategoryID: &categoryID, Search: " rent "})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, summary.Income.Equal(cached.Income))
	assert.True(t, summary.Expense.Equal(cached.Expense))

	other := int64(4)
	_, _, ok, err = c.GetSummary(ctx, entity.TransactionFilter{CategoryID: &other})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisAggregateCache_InvalidateStartsNewGeneration(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	dateRange := entity.DateRange{StartDate: &start}
	aggregates := []*entity.CategoryAggregate{
		{CategoryID: 1, Name: "Savings", Percentage: decimal.NewFromInt(10), Balance: decimal.NewFromInt(50)},
	}

	_, token, ok, err := c.GetAggregates(ctx, dateRange)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, c.SetAggregates(ctx, token, dateRange, aggregates))

	cached, _, ok, err := c.GetAggregates(ctx, dateRange)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cached, 1)
	assert.Equal(t, "Savings", cached[0].Name)

	require.NoError(t, c.Invalidate(ctx))

	_, token, ok, err = c.GetAggregates(ctx, dateRange)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, adapter.CacheToken(1), token)

	gen, err := mr.Get("ledger:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)
}

func TestRedisAggregateCache_LoadFromBeforeInvalidateIsNotServed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	filter := entity.TransactionFilter{}

	// A reader misses and loads the pre-commit state.
	_, staleToken, ok, err := c.GetSummary(ctx, filter)
	require.NoError(t, err)
	require.False(t, ok)
	stale := &entity.TransactionSummary{}

	// A writer commits and invalidates before the reader stores its result.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.SetSummary(ctx, staleToken, filter, stale))

	_, token, ok, err := c.GetSummary(ctx, filter)
	require.NoError(t, err)
	assert.False(t, ok, "summary loaded before the invalidation must not be served")

	fresh := &entity.TransactionSummary{Income: decimal.NewFromInt(100)}
	require.NoError(t, c.SetSummary(ctx, token, filter, fresh))

	cached, _, ok, err := c.GetSummary(ctx, filter)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, cached.Income.Equal(decimal.NewFromInt(100)))
}

func TestRedisAggregateCache_AppliesTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetSummary(ctx, 0, entity.TransactionFilter{}, &entity.TransactionSummary{}))
	mr.FastForward(2 * time.Minute)

	_, _, ok, err := c.GetSummary(ctx, entity.TransactionFilter{})
	require.NoError(t, err)
	assert.False(t, ok)
}

type stubUnitOfWork struct {
	err error
}

func (s stubUnitOfWork) RunAtomic(ctx context.Context, fn func(ctx context.Context, repos adapter.Repositories) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(ctx, adapter.Repositories{})
}

type countingCache struct {
	NoopCache
	invalidations int
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidations++
	return nil
}

func TestInvalidatingUnitOfWork(t *testing.T) {
	ctx := context.Background()
	noop := func(context.Context, adapter.Repositories) error { return nil }

	t.Run("invalidates after commit", func(t *testing.T) {
		counter := &countingCache{}
		uow := NewInvalidatingUnitOfWork(stubUnitOfWork{}, counter)

		require.NoError(t, uow.RunAtomic(ctx, noop))
		assert.Equal(t, 1, counter.invalidations)
	})

	t.Run("keeps cache on rollback", func(t *testing.T) {
		counter := &countingCache{}
		rollback := errors.New("rolled back")
		uow := NewInvalidatingUnitOfWork(stubUnitOfWork{err: rollback}, counter)

		err := uow.RunAtomic(ctx, noop)
		assert.ErrorIs(t, err, rollback)
		assert.Zero(t, counter.invalidations)
	})
}
