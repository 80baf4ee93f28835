package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// DeleteLoanInput represents the input for loan deletion.
type DeleteLoanInput struct {
	LoanID int64
}

// DeleteLoanOutput represents the output of loan deletion.
type DeleteLoanOutput struct {
	Loan *entity.Loan
}

// DeleteLoanUseCase removes a loan record.
//
// Deletion only edits the paper trail: the category balance and the companion
// transactions stay exactly as creation and repayment left them.
type DeleteLoanUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteLoanUseCase creates a new DeleteLoanUseCase instance.
func NewDeleteLoanUseCase(uow adapter.UnitOfWork) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		uow: uow,
	}
}

// Execute performs the loan deletion.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, input DeleteLoanInput) (*DeleteLoanOutput, error) {
	var loan *entity.Loan
	err := uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		found, err := repos.Loans.FindByID(ctx, input.LoanID)
		if err != nil {
			if errors.Is(err, domainerror.ErrLoanNotFound) {
				return loanNotFound(input.LoanID)
			}
			return fmt.Errorf("failed to find loan: %w", err)
		}

		if err := repos.Loans.Delete(ctx, found.ID); err != nil {
			if errors.Is(err, domainerror.ErrLoanNotFound) {
				return loanNotFound(input.LoanID)
			}
			return fmt.Errorf("failed to delete loan: %w", err)
		}
		loan = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outstanding := loan.Outstanding(); outstanding.IsPositive() {
		slog.Warn("Deleted loan was not fully repaid; balance left unchanged",
			"loanID", loan.ID,
			"categoryID", loan.CategoryID,
			"outstanding", outstanding.String(),
		)
	} else {
		slog.Info("Loan deleted", "loanID", loan.ID)
	}

	return &DeleteLoanOutput{Loan: loan}, nil
}
