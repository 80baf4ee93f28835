package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID int64
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct{}

// DeleteCategoryUseCase handles category deletion logic.
// Neither the percentage nor the balance of the deleted category is redistributed.
type DeleteCategoryUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(uow adapter.UnitOfWork) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		uow: uow,
	}
}

// Execute performs the category deletion. It fails while any transaction
// references the category or any of its loans is not paid.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	err := uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if _, err := repos.Categories.FindByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return categoryNotFound()
			}
			return fmt.Errorf("failed to find category: %w", err)
		}

		transactions, err := repos.Transactions.CountByCategory(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to count category transactions: %w", err)
		}
		if transactions > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryHasTransactions,
				fmt.Sprintf("category has %d transactions", transactions),
				domainerror.ErrCategoryHasTransactions,
			)
		}

		outstanding, err := repos.Loans.CountOutstandingByCategory(ctx, input.CategoryID)
		if err != nil {
			return fmt.Errorf("failed to count category loans: %w", err)
		}
		if outstanding > 0 {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryHasOutstandingLoans,
				fmt.Sprintf("category has %d loans not yet paid", outstanding),
				domainerror.ErrCategoryHasOutstandingLoans,
			)
		}

		if err := repos.Categories.Delete(ctx, input.CategoryID); err != nil {
			switch {
			case errors.Is(err, domainerror.ErrCategoryInUse):
				return domainerror.NewCategoryError(
					domainerror.ErrCodeCategoryHasTransactions,
					"category is still referenced",
					err,
				)
			case errors.Is(err, domainerror.ErrCategoryNotFound):
				return categoryNotFound()
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Category deleted", "categoryID", input.CategoryID)

	return &DeleteCategoryOutput{}, nil
}
