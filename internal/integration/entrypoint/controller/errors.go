package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/dto"
)

// handleDomainError maps coded domain errors to HTTP responses.
// Anything uncoded is logged and reported as an internal error.
func handleDomainError(ctx *gin.Context, err error) {
	var (
		catErr   *domainerror.CategoryError
		txnErr   *domainerror.TransactionError
		loanErr  *domainerror.LoanError
		allocErr *domainerror.AllocationError
	)

	switch {
	case errors.As(err, &catErr):
		ctx.JSON(getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
	case errors.As(err, &txnErr):
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
	case errors.As(err, &loanErr):
		ctx.JSON(getStatusCodeForLoanError(loanErr.Code), dto.ErrorResponse{
			Error: loanErr.Message,
			Code:  string(loanErr.Code),
		})
	case errors.As(err, &allocErr):
		ctx.JSON(getStatusCodeForAllocationError(allocErr.Code), dto.ErrorResponse{
			Error: allocErr.Message,
			Code:  string(allocErr.Code),
		})
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
			Code:  string(domainerror.ErrCodeInternal),
		})
	}
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryHasTransactions,
		domainerror.ErrCodeCategoryHasOutstandingLoans:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInsufficientFunds,
		domainerror.ErrCodeBalanceLimitExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// getStatusCodeForLoanError maps loan error codes to HTTP status codes.
func getStatusCodeForLoanError(code domainerror.LoanErrorCode) int {
	switch code {
	case domainerror.ErrCodeLoanNotFound,
		domainerror.ErrCodeLoanCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeLoanInsufficientFunds,
		domainerror.ErrCodeLoanBalanceLimitExceeded:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeLoanNotUnpaid,
		domainerror.ErrCodeLoanAlreadyPaid:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// getStatusCodeForAllocationError maps allocation error codes to HTTP status codes.
func getStatusCodeForAllocationError(code domainerror.AllocationErrorCode) int {
	switch code {
	case domainerror.ErrCodeNoActiveCategories:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// badRequest writes a 400 with the given code.
func badRequest(ctx *gin.Context, message, code string, err error) {
	response := dto.ErrorResponse{
		Error: message,
		Code:  code,
	}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, "Invalid "+name+" format", string(domainerror.ErrCodeInvalidRequest), nil)
		return 0, false
	}
	return id, true
}
