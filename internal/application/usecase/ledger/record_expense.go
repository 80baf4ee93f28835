package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// RecordExpenseInput represents the input for an expense.
type RecordExpenseInput struct {
	CategoryID int64
	Amount     decimal.Decimal
	Note       string
	Date       *time.Time // Optional, defaults to now
}

// RecordExpenseOutput represents the output of an expense.
type RecordExpenseOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

// RecordExpenseUseCase debits a category. A balance can never be driven below zero.
type RecordExpenseUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewRecordExpenseUseCase creates a new RecordExpenseUseCase instance.
func NewRecordExpenseUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *RecordExpenseUseCase {
	return &RecordExpenseUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the expense.
func (uc *RecordExpenseUseCase) Execute(ctx context.Context, input RecordExpenseInput) (*RecordExpenseOutput, error) {
	amount, err := normalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	note, err := resolveNote(input.Note, noteExpense)
	if err != nil {
		return nil, err
	}
	date := resolveDate(input.Date, uc.clock)

	output := &RecordExpenseOutput{}
	err = uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		category, err := repos.Categories.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return categoryNotFound(input.CategoryID)
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		if !category.CanCover(amount) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInsufficientFunds,
				fmt.Sprintf("balance %s does not cover %s", category.Balance.StringFixed(2), amount.StringFixed(2)),
				domainerror.ErrInsufficientFunds,
			)
		}

		if err := repos.Categories.AdjustBalance(ctx, category.ID, amount.Neg()); err != nil {
			return fmt.Errorf("failed to debit category: %w", err)
		}

		txn := entity.NewTransaction(entity.TransactionTypeExpense, amount, category.ID, note, date, uc.clock.Now())
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		txn.CategoryName = category.Name

		category.Balance = category.Balance.Sub(amount)
		output.Category = category
		output.Transaction = txn
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrInsufficientFunds) {
			slog.Warn("Expense rejected", "categoryID", input.CategoryID, "amount", amount.String())
		}
		return nil, err
	}

	slog.Info("Expense recorded", "categoryID", input.CategoryID, "transactionID", output.Transaction.ID)

	return output, nil
}
