package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/allocation"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// GetOverviewInput represents the input for the dashboard overview.
type GetOverviewInput struct {
	Period Period
}

// GetOverviewOutput is the month at a glance.
type GetOverviewOutput struct {
	Period       Period
	Label        string
	StartDate    time.Time
	EndDate      time.Time
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	TotalBalance decimal.Decimal
	Outstanding  decimal.Decimal // owed back by loans not yet paid
	Allocation   entity.AllocationStatus
	Categories   []*entity.CategoryAggregate
}

// GetOverviewUseCase assembles the monthly dashboard overview.
type GetOverviewUseCase struct {
	dashboardRepo DashboardRepository
	loanRepo      adapter.LoanRepository
	cache         adapter.AggregateCache
	clock         adapter.Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	dashboardRepo DashboardRepository,
	loanRepo adapter.LoanRepository,
	cache adapter.AggregateCache,
	clock adapter.Clock,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		dashboardRepo: dashboardRepo,
		loanRepo:      loanRepo,
		cache:         cache,
		clock:         clock,
	}
}

// Execute builds the overview for the requested month.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	period := input.Period
	if period == "" {
		period = PeriodCurrent
	}
	start, end := PeriodBounds(uc.clock.Now(), period)

	var (
		aggregates []*entity.CategoryAggregate
		loans      []*entity.Loan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aggregates, err = loadAggregates(gctx, uc.dashboardRepo, uc.cache, entity.DateRange{StartDate: &start, EndDate: &end})
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = uc.loanRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list loans: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	output := &GetOverviewOutput{
		Period:       period,
		Label:        PeriodLabel(start),
		StartDate:    start,
		EndDate:      end,
		Income:       decimal.Zero,
		Expense:      decimal.Zero,
		TotalBalance: decimal.Zero,
		Outstanding:  decimal.Zero,
		Categories:   aggregates,
	}

	categories := make([]*entity.Category, len(aggregates))
	for i, a := range aggregates {
		output.Income = output.Income.Add(a.Income)
		output.Expense = output.Expense.Add(a.Expense)
		output.TotalBalance = output.TotalBalance.Add(a.Balance)
		categories[i] = &entity.Category{ID: a.CategoryID, Percentage: a.Percentage}
	}
	output.Net = output.Income.Sub(output.Expense)
	output.Allocation = allocation.Status(categories)

	for _, l := range loans {
		output.Outstanding = output.Outstanding.Add(l.Outstanding())
	}

	return output, nil
}
