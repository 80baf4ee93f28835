// Package allocation guards the percentage-allocation invariant across categories
// and splits global income between them. All functions are pure.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

var (
	// CompletenessTolerance absorbs rounding noise when deciding if 100% is allocated.
	CompletenessTolerance = decimal.RequireFromString("0.1")

	// ValidationTolerance is the slack allowed above 100% when saving a percentage.
	ValidationTolerance = decimal.RequireFromString("0.01")
)

// IsAllocationComplete reports whether total is 100% within CompletenessTolerance.
func IsAllocationComplete(total decimal.Decimal) bool {
	return total.Add(CompletenessTolerance).GreaterThanOrEqual(valueobject.HundredPercent())
}

// AllocationDeficit returns the percentage points missing to reach 100%, never negative.
func AllocationDeficit(total decimal.Decimal) decimal.Decimal {
	deficit := valueobject.HundredPercent().Sub(total).Round(2)
	if deficit.IsNegative() {
		return decimal.Zero
	}
	return deficit
}

// TotalPercentage sums the percentages of all categories except excludedID.
func TotalPercentage(categories []*entity.Category, excludedID *int64) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		if excludedID != nil && c.ID == *excludedID {
			continue
		}
		total = total.Add(c.Percentage)
	}
	return total
}

// ValidatePercentageTotal checks that candidate is a valid percentage and that it
// fits next to every other category. excludedID is the category being edited, if any.
func ValidatePercentageTotal(categories []*entity.Category, excludedID *int64, candidate decimal.Decimal) error {
	if candidate.IsNegative() || candidate.GreaterThan(valueobject.HundredPercent()) {
		return domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidPercentage,
			"percentage must be between 0 and 100",
			domainerror.ErrInvalidPercentage,
		)
	}
	if !valueobject.HasAtMostPlaces(candidate, valueobject.PercentagePlaces) {
		return domainerror.NewAllocationError(
			domainerror.ErrCodeInvalidPercentage,
			"percentage supports at most two decimal places",
			domainerror.ErrInvalidPercentage,
		)
	}

	others := TotalPercentage(categories, excludedID)
	limit := valueobject.HundredPercent().Add(ValidationTolerance)
	if others.Add(candidate).GreaterThan(limit) {
		available := AllocationDeficit(others)
		return domainerror.NewAllocationError(
			domainerror.ErrCodeAllocationExceeded,
			fmt.Sprintf("only %s%% left to allocate", available.String()),
			domainerror.ErrAllocationExceeded,
		)
	}
	return nil
}

// Status computes the allocation summary shown next to the category list.
func Status(categories []*entity.Category) entity.AllocationStatus {
	total := TotalPercentage(categories, nil)
	return entity.AllocationStatus{
		TotalPercentage: total,
		Complete:        IsAllocationComplete(total),
		Deficit:         AllocationDeficit(total),
	}
}
