package dto

import (
	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/usecase/ledger"
)

// MoneyMovementRequest is the body of income, split and expense requests.
type MoneyMovementRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Note   string           `json:"note,omitempty"`
	Date   *string          `json:"date,omitempty"`
}

// ShareResponse is the part of a split credited to one category.
type ShareResponse struct {
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// SplitIncomeResponse represents the result of a global income split.
type SplitIncomeResponse struct {
	Amount       decimal.Decimal       `json:"amount"`
	Shares       []ShareResponse       `json:"shares"`
	Transactions []TransactionResponse `json:"transactions"`
}

// CategoryMovementResponse represents the result of a category income or expense.
type CategoryMovementResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Category    CategoryResponse    `json:"category"`
}

// ToSplitIncomeResponse converts the split use case output.
func ToSplitIncomeResponse(output *ledger.SplitIncomeOutput) SplitIncomeResponse {
	shares := make([]ShareResponse, len(output.Shares))
	for i, share := range output.Shares {
		shares[i] = ShareResponse{CategoryID: share.CategoryID, Amount: share.Amount}
	}
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}
	return SplitIncomeResponse{
		Amount:       output.Amount,
		Shares:       shares,
		Transactions: transactions,
	}
}
