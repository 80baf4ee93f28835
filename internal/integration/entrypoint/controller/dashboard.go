package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/envelope-ledger/backend/internal/application/usecase/dashboard"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	aggregatesUseCase *dashboard.GetCategoryAggregatesUseCase
	overviewUseCase   *dashboard.GetOverviewUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	aggregatesUseCase *dashboard.GetCategoryAggregatesUseCase,
	overviewUseCase *dashboard.GetOverviewUseCase,
) *DashboardController {
	return &DashboardController{
		aggregatesUseCase: aggregatesUseCase,
		overviewUseCase:   overviewUseCase,
	}
}

// Categories handles GET /dashboard/categories requests.
func (c *DashboardController) Categories(ctx *gin.Context) {
	dateRange, ok := parseDateRange(ctx)
	if !ok {
		return
	}

	output, err := c.aggregatesUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryAggregatesInput{
		DateRange: dateRange,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryAggregatesResponse(output))
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	period, err := dashboard.ParsePeriod(ctx.Query("period"))
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{Period: period})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}
