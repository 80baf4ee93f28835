package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/envelope-ledger/backend/internal/application/usecase/loan"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/dto"
)

// LoanController handles loan endpoints.
type LoanController struct {
	listUseCase   *loan.ListLoansUseCase
	createUseCase *loan.CreateLoanUseCase
	payUseCase    *loan.PayLoanUseCase
	deleteUseCase *loan.DeleteLoanUseCase
}

// NewLoanController creates a new loan controller instance.
func NewLoanController(
	listUseCase *loan.ListLoansUseCase,
	createUseCase *loan.CreateLoanUseCase,
	payUseCase *loan.PayLoanUseCase,
	deleteUseCase *loan.DeleteLoanUseCase,
) *LoanController {
	return &LoanController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		payUseCase:    payUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /loans requests.
func (c *LoanController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanListResponse(output))
}

// Create handles POST /loans requests.
func (c *LoanController) Create(ctx *gin.Context) {
	var req dto.CreateLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingLoanFields), err)
		return
	}
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), loan.CreateLoanInput{
		Name:       req.Name,
		Amount:     *req.Amount,
		CategoryID: req.CategoryID,
		Date:       date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLoanMovementResponse(output.Loan, output.Transaction, nil))
}

// PayHalf handles POST /loans/:id/half-payment requests.
func (c *LoanController) PayHalf(ctx *gin.Context) {
	c.pay(ctx, loan.PaymentModeHalf)
}

// PayFull handles POST /loans/:id/payment requests.
func (c *LoanController) PayFull(ctx *gin.Context) {
	c.pay(ctx, loan.PaymentModeFull)
}

func (c *LoanController) pay(ctx *gin.Context, mode loan.PaymentMode) {
	loanID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// the body is optional
	var req dto.PayLoanRequest
	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingLoanFields), err)
			return
		}
	}
	date, err := dto.ParseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
		return
	}

	output, err := c.payUseCase.Execute(ctx.Request.Context(), loan.PayLoanInput{
		LoanID: loanID,
		Mode:   mode,
		Date:   date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanMovementResponse(output.Loan, output.Transaction, &output.Refunded))
}

// Delete handles DELETE /loans/:id requests.
func (c *LoanController) Delete(ctx *gin.Context) {
	loanID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), loan.DeleteLoanInput{LoanID: loanID}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
