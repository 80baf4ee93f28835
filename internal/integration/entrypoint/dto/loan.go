package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/usecase/loan"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// CreateLoanRequest represents the request body for loan creation.
type CreateLoanRequest struct {
	Name       string           `json:"name" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID int64            `json:"category_id" binding:"required"`
	Date       *string          `json:"date,omitempty"`
}

// PayLoanRequest is the optional body of repayment requests.
type PayLoanRequest struct {
	Date *string `json:"date,omitempty"`
}

// LoanResponse represents a single loan in API responses.
type LoanResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Outstanding  decimal.Decimal `json:"outstanding"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LoanListResponse represents the response for listing loans.
type LoanListResponse struct {
	Loans       []LoanResponse  `json:"loans"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// LoanMovementResponse is returned by loan creation and repayment.
type LoanMovementResponse struct {
	Loan        LoanResponse         `json:"loan"`
	Refunded    *decimal.Decimal     `json:"refunded,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ToLoanResponse converts a domain Loan entity to a LoanResponse DTO.
func ToLoanResponse(l *entity.Loan) LoanResponse {
	return LoanResponse{
		ID:           l.ID,
		Name:         l.Name,
		Amount:       l.Amount,
		Outstanding:  l.Outstanding(),
		CategoryID:   l.CategoryID,
		CategoryName: l.CategoryName,
		Status:       string(l.Status),
		Date:         l.Date,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

// ToLoanListResponse converts the list use case output.
func ToLoanListResponse(output *loan.ListLoansOutput) LoanListResponse {
	loans := make([]LoanResponse, len(output.Loans))
	for i, l := range output.Loans {
		loans[i] = ToLoanResponse(l)
	}
	return LoanListResponse{
		Loans:       loans,
		Outstanding: output.Outstanding,
	}
}

// ToLoanMovementResponse builds the response of a loan mutation.
func ToLoanMovementResponse(l *entity.Loan, txn *entity.Transaction, refunded *decimal.Decimal) LoanMovementResponse {
	response := LoanMovementResponse{
		Loan:     ToLoanResponse(l),
		Refunded: refunded,
	}
	if txn != nil {
		t := ToTransactionResponse(txn)
		response.Transaction = &t
	}
	return response
}
