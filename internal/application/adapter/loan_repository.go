package adapter

import (
	"context"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// LoanRepository defines the interface for loan persistence operations.
type LoanRepository interface {
	// Create inserts a loan and sets its ID.
	Create(ctx context.Context, loan *entity.Loan) error

	// FindByID retrieves a loan by its ID, including the category name.
	FindByID(ctx context.Context, id int64) (*entity.Loan, error)

	// List retrieves every loan, newest first.
	List(ctx context.Context) ([]*entity.Loan, error)

	// UpdateStatus sets the status of a loan.
	UpdateStatus(ctx context.Context, id int64, status entity.LoanStatus) error

	// Delete removes a loan by its ID.
	Delete(ctx context.Context, id int64) error

	// CountOutstandingByCategory returns the number of loans on the category that are not paid.
	CountOutstandingByCategory(ctx context.Context, categoryID int64) (int64, error)
}
