// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is known.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// MaxNoteLength is the maximum length of a transaction note.
const MaxNoteLength = 255

// Transaction is an immutable record explaining one balance change of a category.
type Transaction struct {
	ID         int64
	Type       TransactionType
	Amount     decimal.Decimal // always positive
	CategoryID int64
	Note       string
	Date       time.Time
	CreatedAt  time.Time

	// CategoryName is filled on reads from a join and never persisted.
	CategoryName string
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID int64,
	note string,
	date time.Time,
	now time.Time,
) *Transaction {
	return &Transaction{
		Type:       transactionType,
		Amount:     amount,
		CategoryID: categoryID,
		Note:       note,
		Date:       date.UTC(),
		CreatedAt:  now.UTC(),
	}
}

// DateRange is an inclusive, optionally open-ended, date window.
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionFilter holds the filters shared by listing, counting and summaries.
type TransactionFilter struct {
	DateRange
	Search     string
	CategoryID *int64
	Type       *TransactionType
}

// Page holds limit/offset pagination parameters.
type Page struct {
	Limit  int
	Offset int
}

// TransactionSummary represents aggregated income and expense totals.
type TransactionSummary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense.
func (s TransactionSummary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}
