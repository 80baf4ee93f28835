package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

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

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertBalance(t *testing.T, gdb *gorm.DB, id int64, expected string) {
	t.Helper()
	actual := testutil.CategoryBalance(t, gdb, id)
	assert.True(t, money(expected).Equal(actual), "category %d: expected %s, got %s", id, expected, actual)
}

func TestSplitIncome_Thirds(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewSplitIncomeUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)

	a := testutil.CreateCategory(t, gdb, "A", "33.34", "0")
	b := testutil.CreateCategory(t, gdb, "B", "33.33", "0")
	c := testutil.CreateCategory(t, gdb, "C", "33.33", "0")

	out, err := uc.Execute(context.Background(), SplitIncomeInput{Amount: money("100")})
	require.NoError(t, err)

	assertBalance(t, gdb, a, "33.34")
	assertBalance(t, gdb, b, "33.33")
	assertBalance(t, gdb, c, "33.33")

	require.Len(t, out.Transactions, 3)
	total := decimal.Zero
	for _, txn := range out.Transactions {
		assert.Equal(t, entity.TransactionTypeIncome, txn.Type)
		assert.Equal(t, "Global income", txn.Note)
		assert.True(t, testClock.now.Equal(txn.Date))
		total = total.Add(txn.Amount)
	}
	assert.True(t, money("100").Equal(total))
}

func TestSplitIncome_SkipsZeroPercentAndKeepsNote(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewSplitIncomeUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)

	active := testutil.CreateCategory(t, gdb, "Active", "50", "0")
	idle := testutil.CreateCategory(t, gdb, "Idle", "0", "5")

	out, err := uc.Execute(context.Background(), SplitIncomeInput{Amount: money("10.005"), Note: " Salary "})
	require.NoError(t, err)

	assert.True(t, money("10.01").Equal(out.Amount))
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "Salary", out.Transactions[0].Note)
	assertBalance(t, gdb, active, "10.01")
	assertBalance(t, gdb, idle, "5")
}

func TestSplitIncome_Rejections(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewSplitIncomeUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)
	ctx := context.Background()

	_, err := uc.Execute(ctx, SplitIncomeInput{Amount: money("100")})
	assert.True(t, errors.Is(err, domainerror.ErrNoActiveCategories))

	testutil.CreateCategory(t, gdb, "A", "100", "0")

	_, err = uc.Execute(ctx, SplitIncomeInput{Amount: money("0.004")})
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeInvalidTransactionAmount, txnErr.Code)

	_, err = uc.Execute(ctx, SplitIncomeInput{Amount: money("1"), Note: strings.Repeat("n", 256)})
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeNoteTooLong, txnErr.Code)

	assert.Zero(t, testutil.CountRows(t, gdb, &model.TransactionModel{}))
}

func TestAddCategoryIncome(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewAddCategoryIncomeUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Gifts", "0", "10")

	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	out, err := uc.Execute(ctx, AddCategoryIncomeInput{CategoryID: id, Amount: money("15.25"), Date: &date})
	require.NoError(t, err)

	assert.Equal(t, "Income", out.Transaction.Note)
	assert.Equal(t, "Gifts", out.Transaction.CategoryName)
	assert.True(t, date.Equal(out.Transaction.Date))
	assert.True(t, money("25.25").Equal(out.Category.Balance))
	assertBalance(t, gdb, id, "25.25")

	_, err = uc.Execute(ctx, AddCategoryIncomeInput{CategoryID: 999, Amount: money("1")})
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeTxnCategoryNotFound, txnErr.Code)
}

func TestRecordExpense(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewRecordExpenseUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Food", "40", "1000")

	t.Run("rejects amount over balance", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordExpenseInput{CategoryID: id, Amount: money("1001")})

		var txnErr *domainerror.TransactionError
		require.True(t, errors.As(err, &txnErr))
		assert.Equal(t, domainerror.ErrCodeInsufficientFunds, txnErr.Code)
		assertBalance(t, gdb, id, "1000")
		assert.Zero(t, testutil.CountRows(t, gdb, &model.TransactionModel{}))
	})

	t.Run("allows spending the whole balance", func(t *testing.T) {
		out, err := uc.Execute(ctx, RecordExpenseInput{CategoryID: id, Amount: money("1000"), Note: "Groceries"})
		require.NoError(t, err)

		assert.Equal(t, entity.TransactionTypeExpense, out.Transaction.Type)
		assert.Equal(t, "Groceries", out.Transaction.Note)
		assert.True(t, out.Category.Balance.IsZero())
		assertBalance(t, gdb, id, "0")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordExpenseInput{CategoryID: id, Amount: money("-5")})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidTransactionAmount))
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordExpenseInput{CategoryID: 999, Amount: money("1")})
		assert.True(t, errors.Is(err, domainerror.ErrCategoryNotFound))
	})
}

func TestIncome_RejectsAmountAboveMax(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uow := persistence.NewUnitOfWork(gdb, testClock)
	split := NewSplitIncomeUseCase(uow, testClock)
	income := NewAddCategoryIncomeUseCase(uow, testClock)
	expense := NewRecordExpenseUseCase(uow, testClock)
	ctx := context.Background()

	id := testutil.CreateCategory(t, gdb, "Savings", "100", "10")

	tests := []struct {
		name string
		run  func(amount decimal.Decimal) error
	}{
		{"split income", func(amount decimal.Decimal) error {
			_, err := split.Execute(ctx, SplitIncomeInput{Amount: amount})
			return err
		}},
		{"category income", func(amount decimal.Decimal) error {
			_, err := income.Execute(ctx, AddCategoryIncomeInput{CategoryID: id, Amount: amount})
			return err
		}},
		{"expense", func(amount decimal.Decimal) error {
			_, err := expense.Execute(ctx, RecordExpenseInput{CategoryID: id, Amount: amount})
			return err
		}},
	}

	amounts := []string{"1000000000000.00", "184467440737095516.17"}
	for _, tt := range tests {
		for _, amount := range amounts {
			t.Run(tt.name+" "+amount, func(t *testing.T) {
				err := tt.run(money(amount))

				var txnErr *domainerror.TransactionError
				require.True(t, errors.As(err, &txnErr))
				assert.Equal(t, domainerror.ErrCodeAmountTooLarge, txnErr.Code)
				assert.ErrorIs(t, err, domainerror.ErrAmountTooLarge)
			})
		}
	}

	assertBalance(t, gdb, id, "10")
	assert.Zero(t, testutil.CountRows(t, gdb, &model.TransactionModel{}))
}

func TestIncome_AcceptsMaxAmount(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uc := NewAddCategoryIncomeUseCase(persistence.NewUnitOfWork(gdb, testClock), testClock)

	id := testutil.CreateCategory(t, gdb, "Savings", "100", "0")

	out, err := uc.Execute(context.Background(), AddCategoryIncomeInput{CategoryID: id, Amount: money("999999999999.99")})
	require.NoError(t, err)
	assert.True(t, money("999999999999.99").Equal(out.Transaction.Amount))
	assertBalance(t, gdb, id, "999999999999.99")
}

func TestIncome_RejectsCreditPastBalanceLimit(t *testing.T) {
	gdb := testutil.SetupTestDB(t)
	uow := persistence.NewUnitOfWork(gdb, testClock)
	split := NewSplitIncomeUseCase(uow, testClock)
	income := NewAddCategoryIncomeUseCase(uow, testClock)
	ctx := context.Background()

	full := testutil.CreateCategory(t, gdb, "Full", "50", "9999999999999999.99")
	other := testutil.CreateCategory(t, gdb, "Other", "50", "5")

	_, err := income.Execute(ctx, AddCategoryIncomeInput{CategoryID: full, Amount: money("0.01")})
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeBalanceLimitExceeded, txnErr.Code)

	_, err = split.Execute(ctx, SplitIncomeInput{Amount: money("10")})
	require.True(t, errors.As(err, &txnErr))
	assert.Equal(t, domainerror.ErrCodeBalanceLimitExceeded, txnErr.Code)

	assertBalance(t, gdb, full, "9999999999999999.99")
	assertBalance(t, gdb, other, "5")
	assert.Zero(t, testutil.CountRows(t, gdb, &model.TransactionModel{}))
}
