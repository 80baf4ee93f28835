package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
	"github.com/envelope-ledger/backend/internal/integration/persistence/model"
	"github.com/envelope-ledger/backend/internal/testutil"
)

var testDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestCategoryRepository_AdjustBalance(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	repo := NewCategoryRepository(gdb)
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Food", "50", "10.00")

	require.NoError(t, repo.AdjustBalance(ctx, id, decimal.RequireFromString("2.55")))
	require.NoError(t, repo.AdjustBalance(ctx, id, decimal.RequireFromString("-0.05")))
	assert.True(t, testutil.CategoryBalance(t, gdb, id).Equal(decimal.RequireFromString("12.50")))

	err := repo.AdjustBalance(ctx, 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}

func TestCategoryRepository_AdjustBalanceLimit(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	repo := NewCategoryRepository(gdb)
	ctx := context.Background()

	limit := valueobject.FromMinorUnits(valueobject.MaxBalanceCents)
	id := testutil.CreateCategory(t, gdb, "Savings", "50", limit.Sub(decimal.RequireFromString("0.02")).String())

	tests := []struct {
		name        string
		categoryID  int64
		delta       string
		expectedErr error
		balance     string
	}{
		{"credit up to the limit", id, "0.01", nil, "9999999999999999.98"},
		{"credit reaching the limit", id, "0.01", nil, "9999999999999999.99"},
		{"credit past the limit", id, "0.01", domainerror.ErrBalanceLimitExceeded, "9999999999999999.99"},
		{"largest credit past the limit", id, "999999999999.99", domainerror.ErrBalanceLimitExceeded, "9999999999999999.99"},
		{"debit at the limit", id, "-0.99", nil, "9999999999999999.00"},
		{"unknown category", 999, "0.01", domainerror.ErrCategoryNotFound, "9999999999999999.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.AdjustBalance(ctx, tt.categoryID, decimal.RequireFromString(tt.delta))
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.balance, testutil.CategoryBalance(t, gdb, id).StringFixed(2))
		})
	}
}

func TestCategoryRepository_ListOrderedByID(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	repo := NewCategoryRepository(gdb)

	testutil.CreateCategory(t, gdb, "B", "10", "0")
	testutil.CreateCategory(t, gdb, "A", "20.5", "1.25")

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "B", categories[0].Name)
	assert.Equal(t, "A", categories[1].Name)
	assert.True(t, categories[1].Percentage.Equal(decimal.RequireFromString("20.5")))
	assert.True(t, categories[1].Balance.Equal(decimal.RequireFromString("1.25")))
}

func TestCategoryRepository_DeleteGuardedByHistory(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	ctx := context.Background()
	categories := NewCategoryRepository(gdb)
	transactions := NewTransactionRepository(gdb)

	id := testutil.CreateCategory(t, gdb, "Food", "50", "10")
	require.NoError(t, transactions.Create(ctx, entity.NewTransaction(
		entity.TransactionTypeExpense, decimal.NewFromInt(1), id, "Expense", testDate, testDate,
	)))

	err := categories.Delete(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrCategoryInUse)
	assert.Equal(t, int64(1), testutil.CountRows(t, gdb, &model.CategoryModel{}))

	assert.ErrorIs(t, categories.Delete(ctx, 999), domainerror.ErrCategoryNotFound)
}

func TestCategoryRepository_DeleteCascadesPaidLoans(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	ctx := context.Background()
	loans := NewLoanRepository(gdb)

	id := testutil.CreateCategory(t, gdb, "Fun", "50", "0")
	loan := entity.NewLoan("Bike", decimal.NewFromInt(50), id, testDate, testDate)
	require.NoError(t, loans.Create(ctx, loan))
	require.NoError(t, loans.UpdateStatus(ctx, loan.ID, entity.LoanStatusPaid))

	require.NoError(t, NewCategoryRepository(gdb).Delete(ctx, id))
	assert.Zero(t, testutil.CountRows(t, gdb, &model.LoanModel{}))
}

func TestLoanRepository(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewLoanRepository(gdb)

	id := testutil.CreateCategory(t, gdb, "Fun", "50", "0")

	statuses := []entity.LoanStatus{entity.LoanStatusUnpaid, entity.LoanStatusHalf, entity.LoanStatusPaid}
	for i, status := range statuses {
		loan := entity.NewLoan("Loan", decimal.NewFromInt(int64(10*(i+1))), id, testDate.AddDate(0, 0, i), testDate)
		require.NoError(t, repo.Create(ctx, loan))
		require.NotZero(t, loan.ID)
		require.NoError(t, repo.UpdateStatus(ctx, loan.ID, status))
	}

	outstanding, err := repo.CountOutstandingByCategory(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), outstanding)

	loans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, entity.LoanStatusPaid, loans[0].Status, "newest first")
	assert.Equal(t, "Fun", loans[0].CategoryName)

	found, err := repo.FindByID(ctx, loans[2].ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(10)))

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domainerror.ErrLoanNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, entity.LoanStatusPaid), domainerror.ErrLoanNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 999), domainerror.ErrLoanNotFound)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uow := NewUnitOfWork(gdb, adapter.SystemClock{})
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Food", "50", "10")
	errBoom := errors.New("boom")

	err := uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if err := repos.Categories.AdjustBalance(ctx, id, decimal.NewFromInt(5)); err != nil {
			return err
		}
		if err := repos.Transactions.Create(ctx, entity.NewTransaction(
			entity.TransactionTypeIncome, decimal.NewFromInt(5), id, "Income", testDate, testDate,
		)); err != nil {
			return err
		}
		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.True(t, testutil.CategoryBalance(t, gdb, id).Equal(decimal.NewFromInt(10)))
	assert.Zero(t, testutil.CountRows(t, gdb, &model.TransactionModel{}))
}

func TestUnitOfWork_StampsUpdatesWithClock(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	stamp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	uow := NewUnitOfWork(gdb, fixedClock{now: stamp})
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Fun", "50", "100")
	loan := entity.NewLoan("Bike", decimal.NewFromInt(5), id, testDate, testDate)
	require.NoError(t, NewLoanRepository(gdb).Create(ctx, loan))

	err := uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		if err := repos.Categories.AdjustBalance(ctx, id, decimal.NewFromInt(1)); err != nil {
			return err
		}
		return repos.Loans.UpdateStatus(ctx, loan.ID, entity.LoanStatusHalf)
	})
	require.NoError(t, err)

	var category model.CategoryModel
	require.NoError(t, gdb.First(&category, "id = ?", id).Error)
	assert.True(t, stamp.Equal(category.UpdatedAt), "category updated_at %s", category.UpdatedAt)

	var stored model.LoanModel
	require.NoError(t, gdb.First(&stored, "id = ?", loan.ID).Error)
	assert.True(t, stamp.Equal(stored.UpdatedAt), "loan updated_at %s", stored.UpdatedAt)
}

func TestUnitOfWork_SerializesWriters(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uow := NewUnitOfWork(gdb, adapter.SystemClock{})
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Food", "50", "0")

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- uow.RunAtomic(ctx, func(ctx context.Context, repos adapter.Repositories) error {
				category, err := repos.Categories.FindByID(ctx, id)
				if err != nil {
					return err
				}
				if category.Balance.IsNegative() {
					return errors.New("negative balance")
				}
				return repos.Categories.AdjustBalance(ctx, id, decimal.RequireFromString("0.01"))
			})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, testutil.CategoryBalance(t, gdb, id).Equal(decimal.RequireFromString("0.20")))
}

func TestSeeder_SeedsOnlyEmptyStore(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	seeder := NewSeeder(gdb)
	ctx := context.Background()

	categories := []*entity.Category{
		entity.NewCategory("Savings", decimal.NewFromInt(40), testDate),
		entity.NewCategory("Living", decimal.NewFromInt(60), testDate),
	}

	inserted, err := seeder.Seed(ctx, categories)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.NotZero(t, categories[0].ID)

	inserted, err = seeder.Seed(ctx, categories)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, int64(2), testutil.CountRows(t, gdb, &model.CategoryModel{}))
}
