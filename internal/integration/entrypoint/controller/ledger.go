package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/envelope-ledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/dto"
)

// LedgerController handles the endpoints that move money into and out of categories.
type LedgerController struct {
	splitUseCase   *ledger.SplitIncomeUseCase
	incomeUseCase  *ledger.AddCategoryIncomeUseCase
	expenseUseCase *ledger.RecordExpenseUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	splitUseCase *ledger.SplitIncomeUseCase,
	incomeUseCase *ledger.AddCategoryIncomeUseCase,
	expenseUseCase *ledger.RecordExpenseUseCase,
) *LedgerController {
	return &LedgerController{
		splitUseCase:   splitUseCase,
		incomeUseCase:  incomeUseCase,
		expenseUseCase: expenseUseCase,
	}
}

// bindMovement parses an amount/note/date body.
func bindMovement(ctx *gin.Context) (*dto.MoneyMovementRequest, bool) {
	var req dto.MoneyMovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingTransactionFields), err)
		return nil, false
	}
	return &req, true
}

// SplitIncome handles POST /income/split requests.
func (c *LedgerController) SplitIncome(ctx *gin.Context) {
	req, ok := bindMovement(ctx)
	if !ok {
		return
	}
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
		return
	}

	output, err := c.splitUseCase.Execute(ctx.Request.Context(), ledger.SplitIncomeInput{
		Amount: *req.Amount,
		Note:   req.Note,
		Date:   date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSplitIncomeResponse(output))
}

// AddIncome handles POST /categories/:id/income requests.
func (c *LedgerController) AddIncome(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := bindMovement(ctx)
	if !ok {
		return
	}
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
		return
	}

	output, err := c.incomeUseCase.Execute(ctx.Request.Context(), ledger.AddCategoryIncomeInput{
		CategoryID: categoryID,
		Amount:     *req.Amount,
		Note:       req.Note,
		Date:       date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CategoryMovementResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Category:    dto.ToCategoryResponse(output.Category),
	})
}

// RecordExpense handles POST /categories/:id/expenses requests.
func (c *LedgerController) RecordExpense(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	req, ok := bindMovement(ctx)
	if !ok {
		return
	}
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
		return
	}

	output, err := c.expenseUseCase.Execute(ctx.Request.Context(), ledger.RecordExpenseInput{
		CategoryID: categoryID,
		Amount:     *req.Amount,
		Note:       req.Note,
		Date:       date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CategoryMovementResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Category:    dto.ToCategoryResponse(output.Category),
	})
}
