package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/envelope-ledger/backend/internal/application/usecase/transaction"
	"github.com/envelope-ledger/backend/internal/domain/entity"
	domainerror "github.com/envelope-ledger/backend/internal/domain/error"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction query endpoints.
type TransactionController struct {
	listUseCase      *transaction.ListTransactionsUseCase
	countUseCase     *transaction.CountTransactionsUseCase
	summarizeUseCase *transaction.SummarizeTransactionsUseCase
	exportUseCase    *transaction.ExportTransactionsUseCase
	deleteUseCase    *transaction.DeleteTransactionUseCase
	contentType      string
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	countUseCase *transaction.CountTransactionsUseCase,
	summarizeUseCase *transaction.SummarizeTransactionsUseCase,
	exportUseCase *transaction.ExportTransactionsUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	contentType string,
) *TransactionController {
	return &TransactionController{
		listUseCase:      listUseCase,
		countUseCase:     countUseCase,
		summarizeUseCase: summarizeUseCase,
		exportUseCase:    exportUseCase,
		deleteUseCase:    deleteUseCase,
		contentType:      contentType,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	filter, ok := parseTransactionFilter(ctx)
	if !ok {
		return
	}

	limit, err := queryInt(ctx, "limit")
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPagination), nil)
		return
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPagination), nil)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		Filter: filter,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Count handles GET /transactions/count requests.
func (c *TransactionController) Count(ctx *gin.Context) {
	filter, ok := parseTransactionFilter(ctx)
	if !ok {
		return
	}

	count, err := c.countUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TransactionCountResponse{Count: count})
}

// Summary handles GET /transactions/summary requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	filter, ok := parseTransactionFilter(ctx)
	if !ok {
		return
	}

	summary, err := c.summarizeUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionSummaryResponse(summary))
}

// Export handles GET /transactions/export requests.
func (c *TransactionController) Export(ctx *gin.Context) {
	filter, ok := parseTransactionFilter(ctx)
	if !ok {
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().UTC().Format("20060102"))
	ctx.Header("Content-Type", c.contentType)
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	// rows are buffered by the use case, so nothing is written before validation passes
	if _, err := c.exportUseCase.Execute(ctx.Request.Context(), transaction.ExportTransactionsInput{Filter: filter}, ctx.Writer); err != nil {
		ctx.Header("Content-Type", "")
		ctx.Header("Content-Disposition", "")
		handleDomainError(ctx, err)
	}
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: transactionID}); err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseTransactionFilter reads startDate, endDate, search, categoryId and type.
func parseTransactionFilter(ctx *gin.Context) (entity.TransactionFilter, bool) {
	var filter entity.TransactionFilter

	dateRange, ok := parseDateRange(ctx)
	if !ok {
		return filter, false
	}
	filter.DateRange = dateRange
	filter.Search = ctx.Query("search")

	if raw := ctx.Query("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(ctx, "Invalid categoryId", string(domainerror.ErrCodeInvalidCategoryID), nil)
			return filter, false
		}
		filter.CategoryID = &categoryID
	}

	if raw := ctx.Query("type"); raw != "" {
		txnType := entity.TransactionType(raw)
		filter.Type = &txnType
	}

	return filter, true
}

// parseDateRange reads the inclusive startDate and endDate query parameters.
func parseDateRange(ctx *gin.Context) (entity.DateRange, bool) {
	var dateRange entity.DateRange

	if raw := ctx.Query("startDate"); raw != "" {
		start, err := dto.ParseDate(raw)
		if err != nil {
			badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
			return dateRange, false
		}
		dateRange.StartDate = &start
	}
	if raw := ctx.Query("endDate"); raw != "" {
		end, err := dto.ParseEndDate(raw)
		if err != nil {
			badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidDateRange), nil)
			return dateRange, false
		}
		dateRange.EndDate = &end
	}

	return dateRange, true
}

func queryInt(ctx *gin.Context, name string) (int, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}
