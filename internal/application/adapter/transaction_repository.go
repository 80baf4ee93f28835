package adapter

import (
	"context"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create inserts a transaction and sets its ID.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID, including the category name.
	FindByID(ctx context.Context, id int64) (*entity.Transaction, error)

	// Delete removes a transaction by its ID.
	Delete(ctx context.Context, id int64) error

	// List returns one page of transactions matching filter, newest first.
	List(ctx context.Context, filter entity.TransactionFilter, page entity.Page) ([]*entity.Transaction, error)

	// Count returns the number of transactions matching filter.
	Count(ctx context.Context, filter entity.TransactionFilter) (int64, error)

	// Summarize returns income and expense totals for transactions matching filter.
	Summarize(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionSummary, error)

	// CountByCategory returns the number of transactions referencing the category.
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
