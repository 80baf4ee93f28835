// Package ledger contains the use cases that move money into and out of categories.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
)

const (
	noteGlobalIncome   = "Global income"
	noteCategoryIncome = "Income"
	noteExpense        = "Expense"
)

// normalizeAmount rounds to cents and requires a result in (0, MaxAmount].
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := valueobject.RoundMoney(amount)
	if !rounded.IsPositive() {
		return decimal.Zero, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if valueobject.ExceedsMaxAmount(rounded) {
		return decimal.Zero, domainerror.NewTransactionError(
			domainerror.ErrCodeAmountTooLarge,
			fmt.Sprintf("amount must not exceed %s", valueobject.MaxAmount().StringFixed(valueobject.MoneyPlaces)),
			domainerror.ErrAmountTooLarge,
		)
	}
	return rounded, nil
}

// creditError maps a failed balance credit to its coded error.
func creditError(categoryID int64, err error) error {
	if errors.Is(err, domainerror.ErrBalanceLimitExceeded) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeBalanceLimitExceeded,
			fmt.Sprintf("category %d balance would exceed its limit", categoryID),
			domainerror.ErrBalanceLimitExceeded,
		)
	}
	return fmt.Errorf("failed to credit category %d: %w", categoryID, err)
}

// resolveNote trims the note and falls back to a default when it is blank.
func resolveNote(note, fallback string) (string, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(note) > entity.MaxNoteLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", entity.MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}
	return note, nil
}

func resolveDate(date *time.Time, clock adapter.Clock) time.Time {
	if date == nil {
		return clock.Now().UTC()
	}
	return date.UTC()
}

func categoryNotFound(id int64) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTxnCategoryNotFound,
		fmt.Sprintf("category %d not found", id),
		domainerror.ErrCategoryNotFound,
	)
}
