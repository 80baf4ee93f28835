package model

import (
	"time"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Type        string    `gorm:"type:varchar(10);not null;index;check:chk_transactions_type,type IN ('income','expense')"`
	AmountCents int64     `gorm:"column:amount_cents;not null;check:chk_transactions_amount,amount_cents > 0"`
	CategoryID  int64     `gorm:"not null;index"`
	Note        string    `gorm:"type:text"`
	Date        time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`

	// Relationship used for the foreign key only; never loaded or saved.
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		Type:       entity.TransactionType(m.Type),
		Amount:     valueobject.FromMinorUnits(m.AmountCents),
		CategoryID: m.CategoryID,
		Note:       m.Note,
		Date:       m.Date.UTC(),
		CreatedAt:  m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Type:        string(transaction.Type),
		AmountCents: valueobject.ToMinorUnits(transaction.Amount),
		CategoryID:  transaction.CategoryID,
		Note:        transaction.Note,
		Date:        transaction.Date.UTC(),
		CreatedAt:   transaction.CreatedAt,
	}
}

// TransactionRow is a transaction joined with its category name.
type TransactionRow struct {
	ID           int64
	Type         string
	AmountCents  int64
	CategoryID   int64
	Note         string
	Date         time.Time
	CreatedAt    time.Time
	CategoryName string
}

// ToEntity converts the row to a domain Transaction with its category name projected.
func (r *TransactionRow) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           r.ID,
		Type:         entity.TransactionType(r.Type),
		Amount:       valueobject.FromMinorUnits(r.AmountCents),
		CategoryID:   r.CategoryID,
		Note:         r.Note,
		Date:         r.Date.UTC(),
		CreatedAt:    r.CreatedAt,
		CategoryName: r.CategoryName,
	}
}

// SummaryRow holds income and expense sums in cents.
type SummaryRow struct {
	IncomeCents  int64
	ExpenseCents int64
}

// ToEntity converts the row to a domain TransactionSummary.
func (r *SummaryRow) ToEntity() *entity.TransactionSummary {
	return &entity.TransactionSummary{
		Income:  valueobject.FromMinorUnits(r.IncomeCents),
		Expense: valueobject.FromMinorUnits(r.ExpenseCents),
	}
}
