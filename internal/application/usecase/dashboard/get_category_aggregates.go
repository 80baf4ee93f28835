package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// GetCategoryAggregatesInput represents the input for per-category totals.
type GetCategoryAggregatesInput struct {
	DateRange entity.DateRange
}

// GetCategoryAggregatesOutput represents per-category totals for a date range.
type GetCategoryAggregatesOutput struct {
	Categories []*entity.CategoryAggregate
}

// GetCategoryAggregatesUseCase returns income and expense totals per category.
type GetCategoryAggregatesUseCase struct {
	dashboardRepo DashboardRepository
	cache         adapter.AggregateCache
}

// NewGetCategoryAggregatesUseCase creates a new GetCategoryAggregatesUseCase instance.
func NewGetCategoryAggregatesUseCase(dashboardRepo DashboardRepository, cache adapter.AggregateCache) *GetCategoryAggregatesUseCase {
	return &GetCategoryAggregatesUseCase{
		dashboardRepo: dashboardRepo,
		cache:         cache,
	}
}

// Execute retrieves the aggregates, from cache when available.
func (uc *GetCategoryAggregatesUseCase) Execute(
	ctx context.Context,
	input GetCategoryAggregatesInput,
) (*GetCategoryAggregatesOutput, error) {
	dateRange := input.DateRange
	if dateRange.StartDate != nil && dateRange.EndDate != nil && dateRange.StartDate.After(*dateRange.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}

	aggregates, err := loadAggregates(ctx, uc.dashboardRepo, uc.cache, dateRange)
	if err != nil {
		return nil, err
	}

	return &GetCategoryAggregatesOutput{
		Categories: aggregates,
	}, nil
}

func loadAggregates(
	ctx context.Context,
	repo DashboardRepository,
	cache adapter.AggregateCache,
	dateRange entity.DateRange,
) ([]*entity.CategoryAggregate, error) {
	cached, token, ok, err := cache.GetAggregates(ctx, dateRange)
	if err != nil {
		slog.Warn("Aggregate cache read failed", "error", err)
	} else if ok {
		return cached, nil
	}
	cacheable := err == nil

	aggregates, err := repo.GetCategoryAggregates(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load category aggregates: %w", err)
	}

	if cacheable {
		if err := cache.SetAggregates(ctx, token, dateRange, aggregates); err != nil {
			slog.Warn("Aggregate cache write failed", "error", err)
		}
	}
	return aggregates, nil
}
