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

// AddCategoryIncomeInput represents the input for crediting a single category.
type AddCategoryIncomeInput struct {
	CategoryID int64
	Amount     decimal.Decimal
	Note       string
	Date       *time.Time // Optional, defaults to now
}

// AddCategoryIncomeOutput represents the output of crediting a single category.
type AddCategoryIncomeOutput struct {
	Transaction *entity.Transaction
	Category    *entity.Category
}

// AddCategoryIncomeUseCase credits income straight into one category.
type AddCategoryIncomeUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewAddCategoryIncomeUseCase creates a new AddCategoryIncomeUseCase instance.
func NewAddCategoryIncomeUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *AddCategoryIncomeUseCase {
	return &AddCategoryIncomeUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the category income credit.
func (uc *AddCategoryIncomeUseCase) Execute(ctx context.Context, input AddCategoryIncomeInput) (*AddCategoryIncomeOutput, error) {
	amount, err := normalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	note, err := resolveNote(input.Note, noteCategoryIncome)
	if err != nil {
		return nil, err
	}
	date := resolveDate(input.Date, uc.clock)

	output := &AddCategoryIncomeOutput{}
	err = uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		category, err := repos.Categories.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return categoryNotFound(input.CategoryID)
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		if err := repos.Categories.AdjustBalance(ctx, category.ID, amount); err != nil {
			return creditError(category.ID, err)
		}

		txn := entity.NewTransaction(entity.TransactionTypeIncome, amount, category.ID, note, date, uc.clock.Now())
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		txn.CategoryName = category.Name

		category.Balance = category.Balance.Add(amount)
		output.Category = category
		output.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Category income recorded", "categoryID", input.CategoryID, "transactionID", output.Transaction.ID)

	return output, nil
}
