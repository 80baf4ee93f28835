package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/usecase/category"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name       string           `json:"name" binding:"required"`
	Percentage *decimal.Decimal `json:"percentage" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name       *string          `json:"name,omitempty"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AllocationResponse reports how much of the 100% is allocated.
type AllocationResponse struct {
	TotalPercentage decimal.Decimal `json:"total_percentage"`
	Complete        bool            `json:"complete"`
	Deficit         decimal.Decimal `json:"deficit"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Allocation AllocationResponse `json:"allocation"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:         cat.ID,
		Name:       cat.Name,
		Percentage: cat.Percentage,
		Balance:    cat.Balance.Round(2),
		CreatedAt:  cat.CreatedAt,
		UpdatedAt:  cat.UpdatedAt,
	}
}

// ToAllocationResponse converts an allocation status.
func ToAllocationResponse(status entity.AllocationStatus) AllocationResponse {
	return AllocationResponse{
		TotalPercentage: status.TotalPercentage,
		Complete:        status.Complete,
		Deficit:         status.Deficit,
	}
}

// ToCategoryListResponse converts the list use case output.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, cat := range output.Categories {
		categories[i] = ToCategoryResponse(cat)
	}
	return CategoryListResponse{
		Categories: categories,
		Allocation: ToAllocationResponse(output.Allocation),
	}
}
