package allocation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

// Share is the part of a global income credited to one category.
type Share struct {
	CategoryID int64
	Amount     decimal.Decimal
}

// SplitIncome divides amount across the active categories proportionally to their
// percentages. Categories are visited in ascending ID order. Every category but the
// last gets floor(amount * pct / total) in minor units; the last active category
// receives whatever is left, so the shares always add up to amount exactly.
// Categories whose share is zero are left out of the result.
func SplitIncome(amount decimal.Decimal, categories []*entity.Category) ([]Share, error) {
	active := make([]*entity.Category, 0, len(categories))
	var totalBP int64
	for _, c := range categories {
		if !c.IsActive() {
			continue
		}
		active = append(active, c)
		totalBP += valueobject.ToBasisPoints(c.Percentage)
	}

	if len(active) == 0 || totalBP <= 0 {
		return nil, domainerror.NewAllocationError(
			domainerror.ErrCodeNoActiveCategories,
			"at least one category needs a positive percentage",
			domainerror.ErrNoActiveCategories,
		)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ID < active[j].ID
	})

	cents := valueobject.ToMinorUnits(amount)
	remaining := cents
	shares := make([]Share, 0, len(active))

	for i, c := range active {
		var nominal int64
		if i == len(active)-1 {
			nominal = remaining
		} else {
			nominal = floorShare(cents, valueobject.ToBasisPoints(c.Percentage), totalBP)
			if nominal > remaining {
				nominal = remaining
			}
		}
		remaining -= nominal

		if nominal == 0 {
			continue
		}
		shares = append(shares, Share{
			CategoryID: c.ID,
			Amount:     valueobject.FromMinorUnits(nominal),
		})
	}

	return shares, nil
}

// floorShare computes floor(cents * bp / totalBP) without overflowing int64.
func floorShare(cents, bp, totalBP int64) int64 {
	product := decimal.NewFromInt(cents).Mul(decimal.NewFromInt(bp))
	quotient, _ := product.QuoRem(decimal.NewFromInt(totalBP), 0)
	return quotient.IntPart()
}
