package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus represents the repayment state of a loan.
type LoanStatus string

const (
	LoanStatusUnpaid LoanStatus = "unpaid"
	LoanStatusHalf   LoanStatus = "half"
	LoanStatusPaid   LoanStatus = "paid"
)

// MaxLoanNameLength is the maximum length of a loan name.
const MaxLoanNameLength = 100

// Loan is an informal disbursal from a category balance.
type Loan struct {
	ID         int64
	Name       string
	Amount     decimal.Decimal
	CategoryID int64
	Status     LoanStatus
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// CategoryName is filled on reads from a join and never persisted.
	CategoryName string
}

// NewLoan creates a new unpaid Loan entity.
func NewLoan(name string, amount decimal.Decimal, categoryID int64, date, now time.Time) *Loan {
	now = now.UTC()

	return &Loan{
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
		Status:     LoanStatusUnpaid,
		Date:       date.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// HalfRefund is the amount returned to the category on a half payment.
// Odd cents stay with the second half so both refunds always sum to Amount.
func (l *Loan) HalfRefund() decimal.Decimal {
	return l.Amount.Div(decimal.NewFromInt(2)).RoundFloor(2)
}

// FullRefund is the amount returned to the category when the loan is settled
// from its current status.
func (l *Loan) FullRefund() decimal.Decimal {
	if l.Status == LoanStatusHalf {
		return l.Amount.Sub(l.HalfRefund())
	}
	return l.Amount
}

// Outstanding is the amount not yet refunded to the category.
func (l *Loan) Outstanding() decimal.Decimal {
	switch l.Status {
	case LoanStatusPaid:
		return decimal.Zero
	case LoanStatusHalf:
		return l.Amount.Sub(l.HalfRefund())
	default:
		return l.Amount
	}
}
