// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// List retrieves every category ordered by ascending ID.
	List(ctx context.Context) ([]*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// Create creates a new category in the database and sets its ID.
	Create(ctx context.Context, category *entity.Category) error

	// Update saves the name and percentage of an existing category.
	// The balance column is never written by Update.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id int64) error

	// AdjustBalance adds delta (which may be negative) to the category balance.
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) error

	// Count returns the number of categories.
	Count(ctx context.Context) (int64, error)
}
