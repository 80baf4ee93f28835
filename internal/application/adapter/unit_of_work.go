package adapter

import "context"

// Repositories groups the repositories bound to one atomic scope.
type Repositories struct {
	Categories   CategoryRepository
	Transactions TransactionRepository
	Loans        LoanRepository
}

// UnitOfWork runs ledger mutations atomically.
type UnitOfWork interface {
	// RunAtomic calls fn with repositories bound to a single database transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	RunAtomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
