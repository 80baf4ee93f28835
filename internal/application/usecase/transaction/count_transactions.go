package transaction

import (
	"context"
	"fmt"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CountTransactionsUseCase counts transactions matching a filter.
type CountTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCountTransactionsUseCase creates a new CountTransactionsUseCase instance.
func NewCountTransactionsUseCase(transactionRepo adapter.TransactionRepository) *CountTransactionsUseCase {
	return &CountTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the count.
func (uc *CountTransactionsUseCase) Execute(ctx context.Context, filter entity.TransactionFilter) (int64, error) {
	if err := validateFilter(filter); err != nil {
		return 0, err
	}

	count, err := uc.transactionRepo.Count(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
