package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/domain/valueobject"
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

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type loanFixture struct {
	gdb    *gorm.DB
	create *CreateLoanUseCase
	pay    *PayLoanUseCase
	delete *DeleteLoanUseCase
	list   *ListLoansUseCase
}

func newLoanFixture(t *testing.T) *loanFixture {
	t.Helper()
	gdb := testutil.SetupTestDB(t)
	clock := fixedClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	uow := persistence.NewUnitOfWork(gdb, clock)
	return &loanFixture{
		gdb:    gdb,
		create: NewCreateLoanUseCase(uow, clock),
		pay:    NewPayLoanUseCase(uow, clock),
		delete: NewDeleteLoanUseCase(uow),
		list:   NewListLoansUseCase(persistence.NewLoanRepository(gdb)),
	}
}

func (f *loanFixture) balance(t *testing.T, id int64) string {
	t.Helper()
	return testutil.CategoryBalance(t, f.gdb, id).StringFixed(2)
}

func TestLoanLifecycle(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "500")

	created, err := f.create.Execute(ctx, CreateLoanInput{Name: "Bruno", Amount: money("200"), CategoryID: categoryID})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusUnpaid, created.Loan.Status)
	assert.Equal(t, "Loan: Bruno", created.Transaction.Note)
	assert.Equal(t, entity.TransactionTypeExpense, created.Transaction.Type)
	assert.Equal(t, "300.00", f.balance(t, categoryID))

	half, err := f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeHalf})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusHalf, half.Loan.Status)
	assert.Equal(t, "Loan half payment: Bruno", half.Transaction.Note)
	assert.Equal(t, "400.00", f.balance(t, categoryID))

	_, err = f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeHalf})
	var loanErr *domainerror.LoanError
	require.True(t, errors.As(err, &loanErr))
	assert.Equal(t, domainerror.ErrCodeLoanNotUnpaid, loanErr.Code)
	assert.Equal(t, "400.00", f.balance(t, categoryID))

	full, err := f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeFull})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusPaid, full.Loan.Status)
	assert.Equal(t, "Loan payment: Bruno", full.Transaction.Note)
	assert.Equal(t, "500.00", f.balance(t, categoryID))

	_, err = f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeFull})
	require.True(t, errors.As(err, &loanErr))
	assert.Equal(t, domainerror.ErrCodeLoanAlreadyPaid, loanErr.Code)

	assert.Equal(t, int64(3), testutil.CountRows(t, f.gdb, &model.TransactionModel{}))
}

func TestPayLoan_FullFromUnpaid(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "100")

	created, err := f.create.Execute(ctx, CreateLoanInput{Name: "Carla", Amount: money("75.5"), CategoryID: categoryID})
	require.NoError(t, err)

	out, err := f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeFull})
	require.NoError(t, err)
	assert.True(t, money("75.5").Equal(out.Refunded))
	assert.Equal(t, "100.00", f.balance(t, categoryID))
}

func TestPayLoan_OddCentsStayWithSecondHalf(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "1")

	created, err := f.create.Execute(ctx, CreateLoanInput{Name: "Dan", Amount: money("0.01"), CategoryID: categoryID})
	require.NoError(t, err)

	half, err := f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeHalf})
	require.NoError(t, err)
	assert.True(t, half.Refunded.IsZero())
	assert.Nil(t, half.Transaction)
	assert.Equal(t, entity.LoanStatusHalf, half.Loan.Status)

	full, err := f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeFull})
	require.NoError(t, err)
	assert.True(t, money("0.01").Equal(full.Refunded))
	assert.Equal(t, "1.00", f.balance(t, categoryID))
}

func TestCreateLoan_Rejections(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "50")

	tests := []struct {
		name         string
		input        CreateLoanInput
		expectedCode domainerror.LoanErrorCode
	}{
		{
			name:         "insufficient funds",
			input:        CreateLoanInput{Name: "Eve", Amount: money("50.01"), CategoryID: categoryID},
			expectedCode: domainerror.ErrCodeLoanInsufficientFunds,
		},
		{
			name:         "missing name",
			input:        CreateLoanInput{Name: " ", Amount: money("1"), CategoryID: categoryID},
			expectedCode: domainerror.ErrCodeLoanNameRequired,
		},
		{
			name:         "zero amount",
			input:        CreateLoanInput{Name: "Eve", Amount: money("0"), CategoryID: categoryID},
			expectedCode: domainerror.ErrCodeInvalidLoanAmount,
		},
		{
			name:         "amount above max",
			input:        CreateLoanInput{Name: "Eve", Amount: money("1000000000000.00"), CategoryID: categoryID},
			expectedCode: domainerror.ErrCodeLoanAmountTooLarge,
		},
		{
			name:         "amount past int64 cents",
			input:        CreateLoanInput{Name: "Eve", Amount: money("184467440737095516.17"), CategoryID: categoryID},
			expectedCode: domainerror.ErrCodeLoanAmountTooLarge,
		},
		{
			name:         "unknown category",
			input:        CreateLoanInput{Name: "Eve", Amount: money("1"), CategoryID: 999},
			expectedCode: domainerror.ErrCodeLoanCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(ctx, tt.input)

			var loanErr *domainerror.LoanError
			require.True(t, errors.As(err, &loanErr))
			assert.Equal(t, tt.expectedCode, loanErr.Code)
		})
	}

	assert.Equal(t, "50.00", f.balance(t, categoryID))
	assert.Zero(t, testutil.CountRows(t, f.gdb, &model.LoanModel{}))
}

func TestDeleteLoan_KeepsBalance(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "500")

	created, err := f.create.Execute(ctx, CreateLoanInput{Name: "Fay", Amount: money("200"), CategoryID: categoryID})
	require.NoError(t, err)

	listed, err := f.list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Loans, 1)
	assert.Equal(t, "Savings", listed.Loans[0].CategoryName)
	assert.True(t, money("200").Equal(listed.Outstanding))

	out, err := f.delete.Execute(ctx, DeleteLoanInput{LoanID: created.Loan.ID})
	require.NoError(t, err)
	assert.Equal(t, created.Loan.ID, out.Loan.ID)
	assert.Equal(t, "300.00", f.balance(t, categoryID))
	assert.Zero(t, testutil.CountRows(t, f.gdb, &model.LoanModel{}))

	_, err = f.delete.Execute(ctx, DeleteLoanInput{LoanID: created.Loan.ID})
	assert.True(t, errors.Is(err, domainerror.ErrLoanNotFound))
}

func TestCreateLoan_ZeroAmountIsALoanError(t *testing.T) {
	f := newLoanFixture(t)
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "50")

	_, err := f.create.Execute(context.Background(), CreateLoanInput{Name: "Eve", Amount: money("0.004"), CategoryID: categoryID})

	assert.ErrorIs(t, err, domainerror.ErrInvalidLoanAmount)
	assert.NotErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
}

func TestPayLoan_RefundPastBalanceLimit(t *testing.T) {
	f := newLoanFixture(t)
	ctx := context.Background()
	categoryID := testutil.CreateCategory(t, f.gdb, "Savings", "10", "10")

	created, err := f.create.Execute(ctx, CreateLoanInput{Name: "Eve", Amount: money("10"), CategoryID: categoryID})
	require.NoError(t, err)

	require.NoError(t, f.gdb.Model(&model.CategoryModel{}).
		Where("id = ?", categoryID).
		Update("balance_cents", valueobject.MaxBalanceCents).Error)

	_, err = f.pay.Execute(ctx, PayLoanInput{LoanID: created.Loan.ID, Mode: PaymentModeFull})

	var loanErr *domainerror.LoanError
	require.True(t, errors.As(err, &loanErr))
	assert.Equal(t, domainerror.ErrCodeLoanBalanceLimitExceeded, loanErr.Code)

	listed, err := f.list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Loans, 1)
	assert.Equal(t, entity.LoanStatusUnpaid, listed.Loans[0].Status)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.gdb, &model.TransactionModel{}))
}
