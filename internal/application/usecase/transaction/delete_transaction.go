package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID int64
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Transaction *entity.Transaction
}

// DeleteTransactionUseCase removes a transaction record. It is an administrative
// edit of the history: the category balance is not reversed.
type DeleteTransactionUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(uow adapter.UnitOfWork) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		uow: uow,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	var transaction *entity.Transaction
	err := uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		found, err := repos.Transactions.FindByID(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return transactionNotFound()
			}
			return fmt.Errorf("failed to find transaction: %w", err)
		}

		if err := repos.Transactions.Delete(ctx, found.ID); err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return transactionNotFound()
			}
			return fmt.Errorf("failed to delete transaction: %w", err)
		}
		transaction = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Transaction deleted",
		"transactionID", transaction.ID,
		"categoryID", transaction.CategoryID,
		"type", transaction.Type,
	)

	return &DeleteTransactionOutput{
		Transaction: transaction,
	}, nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
