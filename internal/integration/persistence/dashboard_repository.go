package persistence

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/internal/application/usecase/dashboard"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
)

// dashboardRepository implements the dashboard.DashboardRepository interface.
type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a new dashboard repository instance.
func NewDashboardRepository(db *gorm.DB) dashboard.DashboardRepository {
	return &dashboardRepository{
		db: db,
	}
}

// GetCategoryAggregates returns income and expense sums per category for the date
// range, next to each category's live balance. Categories without transactions in
// the range report zeros.
func (r *dashboardRepository) GetCategoryAggregates(
	ctx context.Context,
	dateRange entity.DateRange,
) ([]*entity.CategoryAggregate, error) {
	joinConditions := []string{"t.category_id = c.id"}
	args := make([]interface{}, 0, 2)
	if dateRange.StartDate != nil {
		joinConditions = append(joinConditions, "t.date >= ?")
		args = append(args, dateRange.StartDate.UTC())
	}
	if dateRange.EndDate != nil {
		joinConditions = append(joinConditions, "t.date <= ?")
		args = append(args, dateRange.EndDate.UTC())
	}

	query := `
		SELECT
			c.id AS category_id,
			c.name AS name,
			c.percentage_bp AS percentage_bp,
			c.balance_cents AS balance_cents,
			COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount_cents ELSE 0 END), 0) AS income_cents,
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount_cents ELSE 0 END), 0) AS expense_cents
		FROM categories c
		LEFT JOIN transactions t ON ` + strings.Join(joinConditions, " AND ") + `
		GROUP BY c.id, c.name, c.percentage_bp, c.balance_cents
		ORDER BY c.id ASC
	`

	var rows []model.CategoryAggregateRow
	err := r.db.WithContext(ctx).
		Raw(query, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category aggregates: %w", err)
	}

	aggregates := make([]*entity.CategoryAggregate, len(rows))
	for i := range rows {
		aggregates[i] = rows[i].ToEntity()
	}
	return aggregates, nil
}
