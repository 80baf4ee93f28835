// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// DashboardRepository defines the interface for dashboard data operations.
type DashboardRepository interface {
	// GetCategoryAggregates returns income and expense sums per category for the
	// date range, one row per category including those without transactions.
	GetCategoryAggregates(ctx context.Context, dateRange entity.DateRange) ([]*entity.CategoryAggregate, error)
}
