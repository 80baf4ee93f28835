package category

import (
	"context"
	"fmt"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
	Allocation entity.AllocationStatus
}

// ListCategoriesUseCase handles listing categories with their allocation status.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute lists every category in ascending ID order.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
		Allocation: allocation.Status(categories),
	}, nil
}
