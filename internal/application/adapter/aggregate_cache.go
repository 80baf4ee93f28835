package adapter

import (
	"context"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CacheToken identifies the cache generation a lookup ran against. Set calls
// store under the token's generation, so a value loaded before an Invalidate
// is never served after it.
type CacheToken int64

// AggregateCache stores read projections until the next ledger mutation.
// A miss is reported as ok == false with the token to store the loaded value under.
type AggregateCache interface {
	GetAggregates(ctx context.Context, dateRange entity.DateRange) ([]*entity.CategoryAggregate, CacheToken, bool, error)
	SetAggregates(ctx context.Context, token CacheToken, dateRange entity.DateRange, aggregates []*entity.CategoryAggregate) error
	GetSummary(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionSummary, CacheToken, bool, error)
	SetSummary(ctx context.Context, token CacheToken, filter entity.TransactionFilter, summary *entity.TransactionSummary) error
	// Invalidate drops every cached projection.
	Invalidate(ctx context.Context) error
}
