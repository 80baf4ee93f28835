package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// SplitIncomeInput represents the input for a global income split.
type SplitIncomeInput struct {
	Amount decimal.Decimal
	Note   string
	Date   *time.Time // Optional, defaults to now
}

// SplitIncomeOutput represents the output of a global income split.
type SplitIncomeOutput struct {
	Amount       decimal.Decimal
	Shares       []allocation.Share
	Transactions []*entity.Transaction
}

// SplitIncomeUseCase distributes one income across every active category.
type SplitIncomeUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewSplitIncomeUseCase creates a new SplitIncomeUseCase instance.
func NewSplitIncomeUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *SplitIncomeUseCase {
	return &SplitIncomeUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the global income split. Either every share is credited
// with its income transaction or nothing is.
func (uc *SplitIncomeUseCase) Execute(ctx context.Context, input SplitIncomeInput) (*SplitIncomeOutput, error) {
	amount, err := normalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	note, err := resolveNote(input.Note, noteGlobalIncome)
	if err != nil {
		return nil, err
	}
	date := resolveDate(input.Date, uc.clock)

	output := &SplitIncomeOutput{Amount: amount}
	err = uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		categories, err := repos.Categories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		shares, err := allocation.SplitIncome(amount, categories)
		if err != nil {
			return err
		}

		transactions := make([]*entity.Transaction, 0, len(shares))
		for _, share := range shares {
			if err := repos.Categories.AdjustBalance(ctx, share.CategoryID, share.Amount); err != nil {
				return creditError(share.CategoryID, err)
			}

			txn := entity.NewTransaction(entity.TransactionTypeIncome, share.Amount, share.CategoryID, note, date, uc.clock.Now())
			if err := repos.Transactions.Create(ctx, txn); err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}
			transactions = append(transactions, txn)
		}

		output.Shares = shares
		output.Transactions = transactions
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Income split", "amount", amount.String(), "categories", len(output.Shares))

	return output, nil
}
