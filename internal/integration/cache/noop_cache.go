package cache

import (
	"context"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// NoopCache is used when no Redis URL is configured. Every read is a miss.
type NoopCache struct{}

var _ adapter.AggregateCache = NoopCache{}

func (NoopCache) GetAggregates(context.Context, entity.DateRange) ([]*entity.CategoryAggregate, adapter.CacheToken, bool, error) {
	return nil, 0, false, nil
}

func (NoopCache) SetAggregates(context.Context, adapter.CacheToken, entity.DateRange, []*entity.CategoryAggregate) error {
	return nil
}

func (NoopCache) GetSummary(context.Context, entity.TransactionFilter) (*entity.TransactionSummary, adapter.CacheToken, bool, error) {
	return nil, 0, false, nil
}

func (NoopCache) SetSummary(context.Context, adapter.CacheToken, entity.TransactionFilter, *entity.TransactionSummary) error {
	return nil
}

func (NoopCache) Invalidate(context.Context) error {
	return nil
}
