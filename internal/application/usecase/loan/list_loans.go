package loan

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// ListLoansOutput represents the output of listing loans.
type ListLoansOutput struct {
	Loans       []*entity.Loan
	Outstanding decimal.Decimal
}

// ListLoansUseCase handles listing loans.
type ListLoansUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewListLoansUseCase creates a new ListLoansUseCase instance.
func NewListLoansUseCase(loanRepo adapter.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanRepo: loanRepo,
	}
}

// Execute lists every loan, newest first, with the total still owed.
func (uc *ListLoansUseCase) Execute(ctx context.Context) (*ListLoansOutput, error) {
	loans, err := uc.loanRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	outstanding := decimal.Zero
	for _, l := range loans {
		outstanding = outstanding.Add(l.Outstanding())
	}

	return &ListLoansOutput{
		Loans:       loans,
		Outstanding: outstanding,
	}, nil
}
