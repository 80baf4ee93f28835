package persistence

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on top of gorm transactions.
// Mutations are serialized so the ledger has a single writer.
type unitOfWork struct {
	db    *gorm.DB
	clock adapter.Clock
	mu    sync.Mutex
}

// NewUnitOfWork creates a new unit of work bound to db. Row timestamps written
// inside it come from clock.
func NewUnitOfWork(db *gorm.DB, clock adapter.Clock) adapter.UnitOfWork {
	return &unitOfWork{
		db:    db,
		clock: clock,
	}
}

// RunAtomic runs fn inside one database transaction.
// gorm commits when fn returns nil and rolls back on error or panic.
func (u *unitOfWork) RunAtomic(ctx context.Context, fn func(ctx context.Context, repos adapter.Repositories) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, adapter.Repositories{
			Categories:   &categoryRepository{db: tx, clock: u.clock},
			Transactions: NewTransactionRepository(tx),
			Loans:        &loanRepository{db: tx, clock: u.clock},
		})
	})
}
