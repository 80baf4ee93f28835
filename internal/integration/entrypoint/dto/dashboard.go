package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/usecase/dashboard"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CategoryAggregateResponse holds one category's totals for a date range.
type CategoryAggregateResponse struct {
	CategoryID int64           `json:"category_id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
	Balance    decimal.Decimal `json:"balance"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
}

// CategoryAggregatesResponse represents the response for GET /dashboard/categories.
type CategoryAggregatesResponse struct {
	Categories []CategoryAggregateResponse `json:"categories"`
}

// OverviewResponse represents the response for GET /dashboard/overview.
type OverviewResponse struct {
	Period       string                      `json:"period"`
	Label        string                      `json:"label"`
	StartDate    time.Time                   `json:"start_date"`
	EndDate      time.Time                   `json:"end_date"`
	Income       decimal.Decimal             `json:"income"`
	Expense      decimal.Decimal             `json:"expense"`
	Net          decimal.Decimal             `json:"net"`
	TotalBalance decimal.Decimal             `json:"total_balance"`
	Outstanding  decimal.Decimal             `json:"outstanding"`
	Allocation   AllocationResponse          `json:"allocation"`
	Categories   []CategoryAggregateResponse `json:"categories"`
}

func toCategoryAggregateResponses(aggregates []*entity.CategoryAggregate) []CategoryAggregateResponse {
	responses := make([]CategoryAggregateResponse, len(aggregates))
	for i, a := range aggregates {
		responses[i] = CategoryAggregateResponse{
			CategoryID: a.CategoryID,
			Name:       a.Name,
			Percentage: a.Percentage,
			Balance:    a.Balance,
			Income:     a.Income,
			Expense:    a.Expense,
		}
	}
	return responses
}

// ToCategoryAggregatesResponse converts the aggregates use case output.
func ToCategoryAggregatesResponse(output *dashboard.GetCategoryAggregatesOutput) CategoryAggregatesResponse {
	return CategoryAggregatesResponse{
		Categories: toCategoryAggregateResponses(output.Categories),
	}
}

// ToOverviewResponse converts the overview use case output.
func ToOverviewResponse(output *dashboard.GetOverviewOutput) OverviewResponse {
	return OverviewResponse{
		Period:       string(output.Period),
		Label:        output.Label,
		StartDate:    output.StartDate,
		EndDate:      output.EndDate,
		Income:       output.Income,
		Expense:      output.Expense,
		Net:          output.Net,
		TotalBalance: output.TotalBalance,
		Outstanding:  output.Outstanding,
		Allocation:   ToAllocationResponse(output.Allocation),
		Categories:   toCategoryAggregateResponses(output.Categories),
	}
}
