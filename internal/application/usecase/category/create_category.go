// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name       string
	Percentage decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	uow   adapter.UnitOfWork
	clock adapter.Clock
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(uow adapter.UnitOfWork, clock adapter.Clock) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		uow:   uow,
		clock: clock,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	err = uc.uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		existing, err := repos.Categories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if err := allocation.ValidatePercentageTotal(existing, nil, input.Percentage); err != nil {
			return err
		}

		category = entity.NewCategory(name, input.Percentage, uc.clock.Now())
		if err := repos.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Category created", "categoryID", category.ID, "percentage", category.Percentage.String())

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

// validateName trims the name and checks that it is present and short enough.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > entity.MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

// categoryNotFound wraps the sentinel in a coded error for the controllers.
func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}
