// Package valueobject contains domain value objects for the envelope ledger.
package valueobject

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for currency amounts.
const MoneyPlaces = 2

// PercentagePlaces is the number of decimal places kept for allocation percentages.
const PercentagePlaces = 2

// MaxBalanceCents bounds a stored category balance, leaving int64 headroom for
// one more credit of MaxAmount.
const MaxBalanceCents int64 = 999_999_999_999_999_999

var (
	hundred = decimal.NewFromInt(100)

	// 999,999,999,999.99
	maxAmount = decimal.New(100_000_000_000_000-1, -MoneyPlaces)
)

// MaxAmount is the largest amount a single ledger operation accepts.
func MaxAmount() decimal.Decimal {
	return maxAmount
}

// ExceedsMaxAmount reports whether amount is above MaxAmount.
func ExceedsMaxAmount(amount decimal.Decimal) bool {
	return amount.GreaterThan(maxAmount)
}

// RoundMoney rounds an amount half-up to whole minor units.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// ToMinorUnits converts an amount to integer cents. The amount is expected to be
// already rounded to MoneyPlaces and at most MaxAmount; larger values wrap.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(MoneyPlaces).IntPart()
}

// FromMinorUnits converts integer cents back to a decimal amount.
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -MoneyPlaces)
}

// ToBasisPoints converts a percentage (0-100) to basis points, 1% = 100.
func ToBasisPoints(percentage decimal.Decimal) int64 {
	return percentage.Shift(PercentagePlaces).IntPart()
}

// FromBasisPoints converts basis points back to a percentage.
func FromBasisPoints(bp int64) decimal.Decimal {
	return decimal.New(bp, -PercentagePlaces)
}

// HasAtMostPlaces reports whether d carries no precision beyond the given places.
func HasAtMostPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// HundredPercent is the full allocation.
func HundredPercent() decimal.Decimal {
	return hundred
}
