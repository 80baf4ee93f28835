package transaction

import (
	"context"
	"fmt"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter entity.TransactionFilter
	Limit  int
	Offset int
}

// ListTransactionsOutput represents one page of transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Limit        int
	Offset       int
	// HasMore is true when the page came back full. A full last page reports
	// true once and the next request returns an empty page.
	HasMore bool
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	defaultLimit    int
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository, defaultLimit int) *ListTransactionsUseCase {
	if defaultLimit < 1 || defaultLimit > MaxPageSize {
		defaultLimit = 20
	}
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		defaultLimit:    defaultLimit,
	}
}

// Execute performs the transaction listing, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if err := validateFilter(input.Filter); err != nil {
		return nil, err
	}
	if input.Offset < 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPagination,
			"offset must not be negative",
			nil,
		)
	}

	limit := input.Limit
	if limit < 1 {
		limit = uc.defaultLimit
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	transactions, err := uc.transactionRepo.List(ctx, input.Filter, entity.Page{Limit: limit, Offset: input.Offset})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Limit:        limit,
		Offset:       input.Offset,
		HasMore:      len(transactions) == limit,
	}, nil
}
