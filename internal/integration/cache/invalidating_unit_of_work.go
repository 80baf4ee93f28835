package cache

import (
	"context"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
)

// InvalidatingUnitOfWork drops cached projections after every committed mutation.
type InvalidatingUnitOfWork struct {
	next  adapter.UnitOfWork
	cache adapter.AggregateCache
}

// NewInvalidatingUnitOfWork wraps next so that successful commits invalidate cache.
func NewInvalidatingUnitOfWork(next adapter.UnitOfWork, cache adapter.AggregateCache) *InvalidatingUnitOfWork {
	return &InvalidatingUnitOfWork{
		next:  next,
		cache: cache,
	}
}

// RunAtomic delegates to the wrapped unit of work and invalidates on success.
// A failed invalidation is logged; the mutation itself has already committed.
func (u *InvalidatingUnitOfWork) RunAtomic(ctx context.Context, fn func(ctx context.Context, repos adapter.Repositories) error) error {
	if err := u.next.RunAtomic(ctx, fn); err != nil {
		return err
	}

	if err := u.cache.Invalidate(ctx); err != nil {
		slog.Warn("Failed to invalidate aggregate cache", "error", err)
	}
	return nil
}
