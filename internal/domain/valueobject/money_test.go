package valueobject

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnitsRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cents int64
	}{
		{"whole amount", "1000", 100000},
		{"two places", "33.34", 3334},
		{"one place", "12.5", 1250},
		{"negative balance", "-0.01", -1},
		{"zero", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.input)
			assert.Equal(t, tt.cents, ToMinorUnits(amount))
			assert.True(t, FromMinorUnits(tt.cents).Equal(amount))
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "10.01", RoundMoney(decimal.RequireFromString("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", RoundMoney(decimal.RequireFromString("10.004")).StringFixed(2))
}

func TestBasisPoints(t *testing.T) {
	assert.Equal(t, int64(3334), ToBasisPoints(decimal.RequireFromString("33.34")))
	assert.Equal(t, int64(10000), ToBasisPoints(HundredPercent()))
	assert.True(t, FromBasisPoints(1250).Equal(decimal.RequireFromString("12.5")))
}

func TestHasAtMostPlaces(t *testing.T) {
	assert.True(t, HasAtMostPlaces(decimal.RequireFromString("33.3"), 2))
	assert.True(t, HasAtMostPlaces(decimal.RequireFromString("33.33"), 2))
	assert.False(t, HasAtMostPlaces(decimal.RequireFromString("33.333"), 2))
}

func TestExceedsMaxAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"one cent", "0.01", false},
		{"exactly max", "999999999999.99", false},
		{"one cent over max", "1000000000000.00", true},
		{"past int64 cents", "184467440737095516.17", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExceedsMaxAmount(decimal.RequireFromString(tt.input)))
		})
	}
}

func TestMaxAmountFitsMinorUnits(t *testing.T) {
	assert.Equal(t, int64(99_999_999_999_999), ToMinorUnits(MaxAmount()))
	assert.True(t, FromMinorUnits(MaxBalanceCents).Add(MaxAmount()).LessThan(FromMinorUnits(math.MaxInt64)))
}
