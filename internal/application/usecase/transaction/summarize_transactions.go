package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// SummarizeTransactionsUseCase totals income and expense for a filter.
// Results are served from the aggregate cache when possible.
type SummarizeTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AggregateCache
}

// NewSummarizeTransactionsUseCase creates a new SummarizeTransactionsUseCase instance.
func NewSummarizeTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AggregateCache,
) *SummarizeTransactionsUseCase {
	return &SummarizeTransactionsUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute performs the summary.
func (uc *SummarizeTransactionsUseCase) Execute(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionSummary, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	cached, token, ok, err := uc.cache.GetSummary(ctx, filter)
	if err != nil {
		slog.Warn("Summary cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}
	cacheable := err == nil

	summary, err := uc.transactionRepo.Summarize(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	if cacheable {
		if err := uc.cache.SetSummary(ctx, token, filter, summary); err != nil {
			slog.Warn("Summary cache write failed", "error", err)
		}
	}

	return summary, nil
}
