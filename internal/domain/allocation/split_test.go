package allocation

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
)

func sumShares(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

func TestSplitIncome_ThirdsConserveAmount(t *testing.T) {
	shares, err := SplitIncome(dec("100"), categoriesWith("33.34", "33.33", "33.33"))
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "33.34", shares[0].Amount.StringFixed(2))
	assert.Equal(t, "33.33", shares[1].Amount.StringFixed(2))
	assert.Equal(t, "33.33", shares[2].Amount.StringFixed(2))
	assert.True(t, dec("100").Equal(sumShares(shares)))
}

func TestSplitIncome_RemainderGoesToLastActive(t *testing.T) {
	// 10.00 at 3 x 33.33 (total 99.99): the first two floor to 3.33, the last absorbs 3.34
	shares, err := SplitIncome(dec("10"), categoriesWith("33.33", "33.33", "33.33"))
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "3.33", shares[0].Amount.StringFixed(2))
	assert.Equal(t, "3.33", shares[1].Amount.StringFixed(2))
	assert.Equal(t, "3.34", shares[2].Amount.StringFixed(2))
}

func TestSplitIncome_OrdersByAscendingID(t *testing.T) {
	categories := []*entity.Category{
		{ID: 9, Percentage: dec("50")},
		{ID: 2, Percentage: dec("50")},
	}

	shares, err := SplitIncome(dec("0.03"), categories)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	assert.Equal(t, int64(2), shares[0].CategoryID)
	assert.Equal(t, "0.01", shares[0].Amount.StringFixed(2))
	assert.Equal(t, int64(9), shares[1].CategoryID)
	assert.Equal(t, "0.02", shares[1].Amount.StringFixed(2))
}

func TestSplitIncome_SkipsInactiveAndZeroShares(t *testing.T) {
	// 0.01 over two equal active categories: the first floors to zero and is skipped
	categories := categoriesWith("50", "0", "50")

	shares, err := SplitIncome(dec("0.01"), categories)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, int64(3), shares[0].CategoryID)
	assert.Equal(t, "0.01", shares[0].Amount.StringFixed(2))
}

func TestSplitIncome_NoActiveCategories(t *testing.T) {
	_, err := SplitIncome(dec("100"), categoriesWith("0", "0"))

	var allocErr *domainerror.AllocationError
	require.True(t, errors.As(err, &allocErr))
	assert.Equal(t, domainerror.ErrCodeNoActiveCategories, allocErr.Code)
	assert.ErrorIs(t, err, domainerror.ErrNoActiveCategories)
}

func TestSplitIncome_ConservationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := rng.Intn(8) + 1
		percentages := make([]string, n)
		for j := range percentages {
			percentages[j] = decimal.New(int64(rng.Intn(2500)), -2).String()
		}
		percentages[0] = "12.34"

		amount := decimal.New(int64(rng.Intn(10_000_000)+1), -2)
		shares, err := SplitIncome(amount, categoriesWith(percentages...))
		require.NoError(t, err)

		assert.True(t, amount.Equal(sumShares(shares)),
			"amount %s split into %s with %v", amount, sumShares(shares), percentages)
		for _, s := range shares {
			assert.True(t, s.Amount.IsPositive())
		}
	}
}
