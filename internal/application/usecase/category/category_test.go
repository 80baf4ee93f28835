package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
	"github.com/envelope-ledger/backend/internal/testutil"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testClock = fixedClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}

func pct(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateCategory(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewCreateCategoryUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)
	ctx := context.Background()

	out, err := uc.Execute(ctx, CreateCategoryInput{Name: "  Rent  ", Percentage: pct("60")})
	require.NoError(t, err)
	assert.NotZero(t, out.Category.ID)
	assert.Equal(t, "Rent", out.Category.Name)
	assert.True(t, out.Category.Balance.IsZero())
	assert.True(t, testClock.now.Equal(out.Category.CreatedAt))

	t.Run("rejects allocation over 100", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: "Fun", Percentage: pct("40.02")})

		var allocErr *domainerror.AllocationError
		require.True(t, errors.As(err, &allocErr))
		assert.Equal(t, domainerror.ErrCodeAllocationExceeded, allocErr.Code)
		assert.Equal(t, int64(1), testutil.CountRows(t, gdb, &model.CategoryModel{}))
	})

	t.Run("accepts rounding tolerance", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: "Fun", Percentage: pct("40.01")})
		require.NoError(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: "   ", Percentage: pct("0")})

		var catErr *domainerror.CategoryError
		require.True(t, errors.As(err, &catErr))
		assert.Equal(t, domainerror.ErrCodeCategoryNameRequired, catErr.Code)
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateCategoryInput{Name: strings.Repeat("a", 51), Percentage: pct("0")})

		var catErr *domainerror.CategoryError
		require.True(t, errors.As(err, &catErr))
		assert.Equal(t, domainerror.ErrCodeCategoryNameTooLong, catErr.Code)
	})
}

func TestUpdateCategory(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewUpdateCategoryUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)
	ctx := context.Background()

	rentID := testutil.CreateCategory(t, gdb, "Rent", "60", "250.50")
	testutil.CreateCategory(t, gdb, "Food", "30", "0")

	t.Run("excludes itself from the total", func(t *testing.T) {
		newPct := pct("70")
		out, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: rentID, Percentage: &newPct})
		require.NoError(t, err)
		assert.True(t, pct("70").Equal(out.Category.Percentage))
		assert.True(t, testClock.now.Equal(out.Category.UpdatedAt))
	})

	t.Run("balance is untouched", func(t *testing.T) {
		name := "Housing"
		out, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: rentID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Housing", out.Category.Name)
		assert.True(t, pct("250.50").Equal(testutil.CategoryBalance(t, gdb, rentID)))
	})

	t.Run("rejects allocation over 100", func(t *testing.T) {
		newPct := pct("75")
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: rentID, Percentage: &newPct})
		assert.True(t, errors.Is(err, domainerror.ErrAllocationExceeded))
	})

	t.Run("unknown category", func(t *testing.T) {
		name := "Ghost"
		_, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: 999, Name: &name})

		var catErr *domainerror.CategoryError
		require.True(t, errors.As(err, &catErr))
		assert.Equal(t, domainerror.ErrCodeCategoryNotFound, catErr.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewDeleteCategoryUseCase(persistence.NewUnitOfWork(gdb, testClock))
	ctx := context.Background()

	withTxn := testutil.CreateCategory(t, gdb, "Food", "10", "100")
	withLoan := testutil.CreateCategory(t, gdb, "Leisure", "10", "100")
	empty := testutil.CreateCategory(t, gdb, "Unused", "10", "0")

	txRepo := persistence.NewTransactionRepository(gdb)
	require.NoError(t, txRepo.Create(ctx, entity.NewTransaction(
		entity.TransactionTypeIncome, pct("100"), withTxn, "Income", time.Now(), time.Now(),
	)))

	loanRepo := persistence.NewLoanRepository(gdb)
	loan := entity.NewLoan("Ana", pct("10"), withLoan, time.Now(), time.Now())
	require.NoError(t, loanRepo.Create(ctx, loan))

	tests := []struct {
		name         string
		categoryID   int64
		expectedCode domainerror.CategoryErrorCode
	}{
		{name: "has transactions", categoryID: withTxn, expectedCode: domainerror.ErrCodeCategoryHasTransactions},
		{name: "has unpaid loan", categoryID: withLoan, expectedCode: domainerror.ErrCodeCategoryHasOutstandingLoans},
		{name: "not found", categoryID: 999, expectedCode: domainerror.ErrCodeCategoryNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: tt.categoryID})

			var catErr *domainerror.CategoryError
			require.True(t, errors.As(err, &catErr))
			assert.Equal(t, tt.expectedCode, catErr.Code)
		})
	}

	t.Run("paid loan no longer blocks", func(t *testing.T) {
		require.NoError(t, loanRepo.UpdateStatus(ctx, loan.ID, entity.LoanStatusPaid))
		_, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: withLoan})
		require.NoError(t, err)
	})

	t.Run("deletes unused category", func(t *testing.T) {
		_, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: empty})
		require.NoError(t, err)
		assert.Equal(t, int64(1), testutil.CountRows(t, gdb, &model.CategoryModel{}))
	})
}

func TestListCategories(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewListCategoriesUseCase(persistence.NewCategoryRepository(gdb))

	testutil.CreateCategory(t, gdb, "Rent", "50", "0")
	testutil.CreateCategory(t, gdb, "Food", "37.5", "0")

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Rent", out.Categories[0].Name)
	assert.False(t, out.Allocation.Complete)
	assert.True(t, pct("12.5").Equal(out.Allocation.Deficit))
	assert.True(t, pct("87.5").Equal(out.Allocation.TotalPercentage))
}
