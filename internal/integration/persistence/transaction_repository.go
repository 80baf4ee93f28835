package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

const transactionColumns = "t.id, t.type, t.amount_cents, t.category_id, t.note, t.date, t.created_at, c.name AS category_name"

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts a transaction and sets its ID.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	transaction.ID = transactionModel.ID
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	var rows []model.TransactionRow
	result := r.joined(ctx).
		Select(transactionColumns).
		Where("t.id = ?", id).
		Limit(1).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(rows) == 0 {
		return nil, domainerror.ErrTransactionNotFound
	}
	return rows[0].ToEntity(), nil
}

// Delete removes a transaction by its ID.
func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// List returns one page of transactions ordered by date and then id, newest first.
func (r *transactionRepository) List(ctx context.Context, filter entity.TransactionFilter, page entity.Page) ([]*entity.Transaction, error) {
	var rows []model.TransactionRow
	query := applyTransactionFilter(r.joined(ctx), filter)
	result := query.
		Select(transactionColumns).
		Order("t.date DESC, t.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}
	return transactions, nil
}

// Count returns the number of transactions matching filter.
func (r *transactionRepository) Count(ctx context.Context, filter entity.TransactionFilter) (int64, error) {
	var count int64
	result := applyTransactionFilter(r.joined(ctx), filter).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Summarize returns income and expense totals for transactions matching filter.
func (r *transactionRepository) Summarize(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionSummary, error) {
	var row model.SummaryRow
	result := applyTransactionFilter(r.joined(ctx), filter).
		Select(`COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount_cents ELSE 0 END), 0) AS income_cents,
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount_cents ELSE 0 END), 0) AS expense_cents`).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

// CountByCategory returns the number of transactions referencing the category.
func (r *transactionRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *transactionRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("transactions AS t").
		Joins("JOIN categories c ON c.id = t.category_id")
}

// applyTransactionFilter adds the optional filters to a query over "transactions AS t"
// joined with "categories c". Date bounds are inclusive.
func applyTransactionFilter(query *gorm.DB, filter entity.TransactionFilter) *gorm.DB {
	if filter.StartDate != nil {
		query = query.Where("t.date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("t.date <= ?", filter.EndDate.UTC())
	}
	if filter.CategoryID != nil {
		query = query.Where("t.category_id = ?", *filter.CategoryID)
	}
	if filter.Type != nil {
		query = query.Where("t.type = ?", string(*filter.Type))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where("(LOWER(t.note) LIKE ? ESCAPE '\\' OR LOWER(c.name) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	return query
}

// escapeLike escapes LIKE wildcards so user input is matched literally.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
