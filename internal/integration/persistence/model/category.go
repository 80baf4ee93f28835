// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

// CategoryModel represents the categories table in the database.
// Money is kept in integer cents and percentages in basis points (1% = 100).
type CategoryModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(50);not null"`
	PercentageBP int64     `gorm:"column:percentage_bp;not null;default:0;check:chk_categories_percentage,percentage_bp >= 0 AND percentage_bp <= 10000"`
	BalanceCents int64     `gorm:"column:balance_cents;not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:         m.ID,
		Name:       m.Name,
		Percentage: valueobject.FromBasisPoints(m.PercentageBP),
		Balance:    valueobject.FromMinorUnits(m.BalanceCents),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:           category.ID,
		Name:         category.Name,
		PercentageBP: valueobject.ToBasisPoints(category.Percentage),
		BalanceCents: valueobject.ToMinorUnits(category.Balance),
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// CategoryAggregateRow is the raw result of the per-category aggregate query.
type CategoryAggregateRow struct {
	CategoryID   int64
	Name         string
	PercentageBP int64
	BalanceCents int64
	IncomeCents  int64
	ExpenseCents int64
}

// ToEntity converts the row to a domain CategoryAggregate.
func (r *CategoryAggregateRow) ToEntity() *entity.CategoryAggregate {
	return &entity.CategoryAggregate{
		CategoryID: r.CategoryID,
		Name:       r.Name,
		Percentage: valueobject.FromBasisPoints(r.PercentageBP),
		Balance:    valueobject.FromMinorUnits(r.BalanceCents),
		Income:     valueobject.FromMinorUnits(r.IncomeCents),
		Expense:    valueobject.FromMinorUnits(r.ExpenseCents),
	}
}
