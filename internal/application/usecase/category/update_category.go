package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	CategoryID int64
	Name       *string          // Optional
	Percentage *decimal.Decimal // Optional
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category update logic.
// The balance is never touched by an update.
type UpdateCategoryUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	var name string
	if input.Name != nil {
		validated, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = validated
	}

	var category *entity.Category
	err := uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		categories, err := repos.Categories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		for _, c := range categories {
			if c.ID == input.CategoryID {
				category = c
				break
			}
		}
		if category == nil {
			return categoryNotFound()
		}

		if input.Percentage != nil {
			if err := allocation.ValidatePercentageTotal(categories, &category.ID, *input.Percentage); err != nil {
				return err
			}
			category.Percentage = *input.Percentage
		}
		if input.Name != nil {
			category.Name = name
		}
		category.UpdatedAt = uc.clock.Now().UTC()

		if err := repos.Categories.Update(ctx, category); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return categoryNotFound()
			}
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Category updated", "categoryID", category.ID, "percentage", category.Percentage.String())

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
