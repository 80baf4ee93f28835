// Package transaction contains transaction query and maintenance use cases.
package transaction

import (
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

// MaxPageSize caps the number of rows returned by one page.
const MaxPageSize = 100

// validateFilter checks the parts of a filter a caller can get wrong.
func validateFilter(filter entity.TransactionFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if filter.Type != nil && !filter.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be income or expense",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}
