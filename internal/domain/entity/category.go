// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCategoryNameLength is the maximum length of a category name.
const MaxCategoryNameLength = 50

// Category represents an envelope: a named bucket with a target allocation
// percentage and a live balance.
type Category struct {
	ID         int64
	Name       string
	Percentage decimal.Decimal
	Balance    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCategory creates a new Category entity with a zero balance, stamped with now.
// The ID is assigned by the store on insert.
func NewCategory(name string, percentage decimal.Decimal, now time.Time) *Category {
	now = now.UTC()

	return &Category{
		Name:       name,
		Percentage: percentage,
		Balance:    decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsActive reports whether the category takes part in global income splits.
func (c *Category) IsActive() bool {
	return c.Percentage.IsPositive()
}

// CanCover reports whether the balance is enough to pay out amount.
func (c *Category) CanCover(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(c.Balance)
}

// AllocationStatus summarizes how much of the 100% is allocated across categories.
type AllocationStatus struct {
	TotalPercentage decimal.Decimal
	Complete        bool
	Deficit         decimal.Decimal
}

// CategoryAggregate holds per-category income and expense totals for a date range
// together with the live balance snapshot.
type CategoryAggregate struct {
	CategoryID int64
	Name       string
	Percentage decimal.Decimal
	Balance    decimal.Decimal // not date-filtered
	Income     decimal.Decimal
	Expense    decimal.Decimal
}
