package model

import (
	"time"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

// LoanModel represents the loans table in the database.
type LoanModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null"`
	AmountCents int64     `gorm:"column:amount_cents;not null;check:chk_loans_amount,amount_cents > 0"`
	CategoryID  int64     `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(10);not null;default:'unpaid';check:chk_loans_status,status IN ('unpaid','half','paid')"`
	Date        time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	// Paid loans go with their category; unpaid ones are guarded by the delete use case.
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the table name for the LoanModel.
func (LoanModel) TableName() string {
	return "loans"
}

// LoanFromEntity creates a LoanModel from a domain Loan entity.
func LoanFromEntity(loan *entity.Loan) *LoanModel {
	return &LoanModel{
		ID:          loan.ID,
		Name:        loan.Name,
		AmountCents: valueobject.ToMinorUnits(loan.Amount),
		CategoryID:  loan.CategoryID,
		Status:      string(loan.Status),
		Date:        loan.Date.UTC(),
		CreatedAt:   loan.CreatedAt,
		UpdatedAt:   loan.UpdatedAt,
	}
}

// LoanRow is a loan joined with its category name.
type LoanRow struct {
	ID           int64
	Name         string
	AmountCents  int64
	CategoryID   int64
	Status       string
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string
}

// ToEntity converts the row to a domain Loan with its category name projected.
func (r *LoanRow) ToEntity() *entity.Loan {
	return &entity.Loan{
		ID:           r.ID,
		Name:         r.Name,
		Amount:       valueobject.FromMinorUnits(r.AmountCents),
		CategoryID:   r.CategoryID,
		Status:       entity.LoanStatus(r.Status),
		Date:         r.Date.UTC(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		CategoryName: r.CategoryName,
	}
}

// All returns every model managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&CategoryModel{},
		&TransactionModel{},
		&LoanModel{},
	}
}
