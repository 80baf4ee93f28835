package loan

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

// CreateLoanInput represents the input for loan creation.
type CreateLoanInput struct {
	Name       string
	Amount     decimal.Decimal
	CategoryID int64
	Date       *time.Time // Optional, defaults to now
}

// CreateLoanOutput represents the output of loan creation.
type CreateLoanOutput struct {
	Loan        *entity.Loan
	Transaction *entity.Transaction
}

// CreateLoanUseCase disburses a loan out of a category balance.
type CreateLoanUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewCreateLoanUseCase creates a new CreateLoanUseCase instance.
func NewCreateLoanUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the loan creation. The category is debited, the loan is stored
// as unpaid and a companion expense transaction records the outflow.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, input CreateLoanInput) (*CreateLoanOutput, error) {
	name, err := validateLoanName(input.Name)
	if err != nil {
		return nil, err
	}
	amount, err := normalizeLoanAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	date := resolveDate(input.Date, uc.clock)

	output := &CreateLoanOutput{}
	err = uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		category, err := repos.Categories.FindByID(ctx, input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return domainerror.NewLoanError(
					domainerror.ErrCodeLoanCategoryNotFound,
					fmt.Sprintf("category %d not found", input.CategoryID),
					err,
				)
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		if !category.CanCover(amount) {
			return domainerror.NewLoanError(
				domainerror.ErrCodeLoanInsufficientFunds,
				fmt.Sprintf("balance %s does not cover %s", category.Balance.StringFixed(2), amount.StringFixed(2)),
				domainerror.ErrInsufficientFunds,
			)
		}

		if err := repos.Categories.AdjustBalance(ctx, category.ID, amount.Neg()); err != nil {
			return fmt.Errorf("failed to debit category: %w", err)
		}

		loan := entity.NewLoan(name, amount, category.ID, date, uc.clock.Now())
		if err := repos.Loans.Create(ctx, loan); err != nil {
			return fmt.Errorf("failed to create loan: %w", err)
		}
		loan.CategoryName = category.Name

		txn := entity.NewTransaction(entity.TransactionTypeExpense, amount, category.ID, loanNote("Loan", name), date, uc.clock.Now())
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		txn.CategoryName = category.Name

		output.Loan = loan
		output.Transaction = txn
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Loan created", "loanID", output.Loan.ID, "categoryID", output.Loan.CategoryID)

	return output, nil
}
