// Package loan contains the loan lifecycle use cases.
package loan

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

func validateLoanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewLoanError(
			domainerror.ErrCodeLoanNameRequired,
			"loan name is required",
			domainerror.ErrLoanNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > entity.MaxLoanNameLength {
		return "", domainerror.NewLoanError(
			domainerror.ErrCodeLoanNameTooLong,
			fmt.Sprintf("loan name must not exceed %d characters", entity.MaxLoanNameLength),
			domainerror.ErrLoanNameTooLong,
		)
	}
	return name, nil
}

func normalizeLoanAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := valueobject.RoundMoney(amount)
	if !rounded.IsPositive() {
		return decimal.Zero, domainerror.NewLoanError(
			domainerror.ErrCodeInvalidLoanAmount,
			"loan amount must be greater than zero",
			domainerror.ErrInvalidLoanAmount,
		)
	}
	if valueobject.ExceedsMaxAmount(rounded) {
		return decimal.Zero, domainerror.NewLoanError(
			domainerror.ErrCodeLoanAmountTooLarge,
			fmt.Sprintf("loan amount must not exceed %s", valueobject.MaxAmount().StringFixed(valueobject.MoneyPlaces)),
			domainerror.ErrLoanAmountTooLarge,
		)
	}
	return rounded, nil
}

func refundError(categoryID int64, err error) error {
	if errors.Is(err, domainerror.ErrBalanceLimitExceeded) {
		return domainerror.NewLoanError(
			domainerror.ErrCodeLoanBalanceLimitExceeded,
			fmt.Sprintf("category %d balance would exceed its limit", categoryID),
			domainerror.ErrBalanceLimitExceeded,
		)
	}
	return fmt.Errorf("failed to credit category: %w", err)
}

func resolveDate(date *time.Time, clock adapter.Clock) time.Time {
	if date == nil {
		return clock.Now().UTC()
	}
	return date.UTC()
}

func loanNotFound(id int64) error {
	return domainerror.NewLoanError(
		domainerror.ErrCodeLoanNotFound,
		fmt.Sprintf("loan %d not found", id),
		domainerror.ErrLoanNotFound,
	)
}

func loanNote(prefix, name string) string {
	return prefix + ": " + name
}
