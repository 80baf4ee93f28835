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

// PaymentMode selects how much of a loan is being repaid.
type PaymentMode string

const (
	// PaymentModeHalf refunds half of the loan; only allowed on unpaid loans.
	PaymentModeHalf PaymentMode = "half"
	// PaymentModeFull settles whatever is still outstanding.
	PaymentModeFull PaymentMode = "full"
)

// PayLoanInput represents the input for a loan repayment.
type PayLoanInput struct {
	LoanID int64
	Mode   PaymentMode
	Date   *time.Time // Optional, defaults to now
}

// PayLoanOutput represents the output of a loan repayment.
type PayLoanOutput struct {
	Loan     *entity.Loan
	Refunded decimal.Decimal

	// Transaction is nil when the refund rounds down to zero.
	Transaction *entity.Transaction
}

// PayLoanUseCase moves a loan along unpaid -> half -> paid, crediting the category.
type PayLoanUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewPayLoanUseCase creates a new PayLoanUseCase instance.
func NewPayLoanUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *PayLoanUseCase {
	return &PayLoanUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the repayment.
func (uc *PayLoanUseCase) Execute(ctx context.Context, input PayLoanInput) (*PayLoanOutput, error) {
	date := resolveDate(input.Date, uc.clock)

	output := &PayLoanOutput{}
	err := uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		loan, err := repos.Loans.FindByID(ctx, input.LoanID)
		if err != nil {
			if errors.Is(err, domainerror.ErrLoanNotFound) {
				return loanNotFound(input.LoanID)
			}
			return fmt.Errorf("failed to find loan: %w", err)
		}

		var (
			refund decimal.Decimal
			next   entity.LoanStatus
			prefix string
		)
		switch input.Mode {
		case PaymentModeHalf:
			if loan.Status != entity.LoanStatusUnpaid {
				return domainerror.NewLoanError(
					domainerror.ErrCodeLoanNotUnpaid,
					fmt.Sprintf("loan is %s, half payment needs an unpaid loan", loan.Status),
					domainerror.ErrLoanNotUnpaid,
				)
			}
			refund, next, prefix = loan.HalfRefund(), entity.LoanStatusHalf, "Loan half payment"
		case PaymentModeFull:
			if loan.Status == entity.LoanStatusPaid {
				return domainerror.NewLoanError(
					domainerror.ErrCodeLoanAlreadyPaid,
					"loan is already paid",
					domainerror.ErrLoanAlreadyPaid,
				)
			}
			refund, next, prefix = loan.FullRefund(), entity.LoanStatusPaid, "Loan payment"
		default:
			return fmt.Errorf("unknown payment mode %q", input.Mode)
		}

		if refund.IsPositive() {
			if err := repos.Categories.AdjustBalance(ctx, loan.CategoryID, refund); err != nil {
				return refundError(loan.CategoryID, err)
			}

			txn := entity.NewTransaction(entity.TransactionTypeIncome, refund, loan.CategoryID, loanNote(prefix, loan.Name), date, uc.clock.Now())
			if err := repos.Transactions.Create(ctx, txn); err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}
			txn.CategoryName = loan.CategoryName
			output.Transaction = txn
		}

		if err := repos.Loans.UpdateStatus(ctx, loan.ID, next); err != nil {
			return fmt.Errorf("failed to update loan status: %w", err)
		}
		loan.Status = next

		output.Loan = loan
		output.Refunded = refund
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Loan repayment recorded",
		"loanID", output.Loan.ID,
		"status", output.Loan.Status,
		"refunded", output.Refunded.String(),
	)

	return output, nil
}
