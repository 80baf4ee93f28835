package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/usecase/transaction"
	"github.com/envelope-ledger/backend/internal/domain/entity"
)

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Note         string          `json:"note"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionListResponse represents one page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	HasMore      bool                  `json:"has_more"`
}

// TransactionCountResponse represents the response for counting transactions.
type TransactionCountResponse struct {
	Count int64 `json:"count"`
}

// TransactionSummaryResponse represents income and expense totals.
type TransactionSummaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.ID,
		Type:         string(txn.Type),
		Amount:       txn.Amount,
		CategoryID:   txn.CategoryID,
		CategoryName: txn.CategoryName,
		Note:         txn.Note,
		Date:         txn.Date,
		CreatedAt:    txn.CreatedAt,
	}
}

// ToTransactionListResponse converts the list use case output.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{
		Transactions: transactions,
		Limit:        output.Limit,
		Offset:       output.Offset,
		HasMore:      output.HasMore,
	}
}

// ToTransactionSummaryResponse converts a summary.
func ToTransactionSummaryResponse(summary *entity.TransactionSummary) TransactionSummaryResponse {
	return TransactionSummaryResponse{
		Income:  summary.Income,
		Expense: summary.Expense,
		Net:     summary.Net(),
	}
}
