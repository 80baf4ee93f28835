package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

const loanColumns = "l.id, l.name, l.amount_cents, l.category_id, l.status, l.date, l.created_at, l.updated_at, c.name AS category_name"

// loanRepository implements the adapter.LoanRepository interface.
type loanRepository struct {
	db    *gorm.DB
	clock adapter.Clock
}

// NewLoanRepository creates a new loan repository instance.
func NewLoanRepository(db *gorm.DB) adapter.LoanRepository {
	return &loanRepository{
		db:    db,
		clock: adapter.SystemClock{},
	}
}

// Create inserts a loan and sets its ID.
func (r *loanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	loanModel := model.LoanFromEntity(loan)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(loanModel)
	if result.Error != nil {
		return result.Error
	}
	loan.ID = loanModel.ID
	return nil
}

// FindByID retrieves a loan by its ID.
func (r *loanRepository) FindByID(ctx context.Context, id int64) (*entity.Loan, error) {
	var rows []model.LoanRow
	result := r.joined(ctx).
		Select(loanColumns).
		Where("l.id = ?", id).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(rows) == 0 {
		return nil, domainerror.ErrLoanNotFound
	}
	return rows[0].ToEntity(), nil
}

// List retrieves every loan, newest first.
func (r *loanRepository) List(ctx context.Context) ([]*entity.Loan, error) {
	var rows []model.LoanRow
	result := r.joined(ctx).
		Select(loanColumns).
		Order("l.date DESC, l.id DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	loans := make([]*entity.Loan, len(rows))
	for i := range rows {
		loans[i] = rows[i].ToEntity()
	}
	return loans, nil
}

// UpdateStatus sets the status of a loan.
func (r *loanRepository) UpdateStatus(ctx context.Context, id int64, status entity.LoanStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": r.clock.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLoanNotFound
	}
	return nil
}

// Delete removes a loan by its ID.
func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.LoanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLoanNotFound
	}
	return nil
}

// CountOutstandingByCategory returns the number of loans on the category that are not paid.
func (r *loanRepository) CountOutstandingByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("category_id = ? AND status <> ?", categoryID, string(entity.LoanStatusPaid)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *loanRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("loans AS l").
		Joins("JOIN categories c ON c.id = l.category_id")
}
