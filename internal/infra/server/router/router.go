// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/envelope-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	ledgerController      *controller.LedgerController
	transactionController *controller.TransactionController
	loanController        *controller.LoanController
	dashboardController   *controller.DashboardController
	rateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	ledgerController *controller.LedgerController,
	transactionController *controller.TransactionController,
	loanController *controller.LoanController,
	dashboardController *controller.DashboardController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		ledgerController:      ledgerController,
		transactionController: transactionController,
		loanController:        loanController,
		dashboardController:   dashboardController,
		rateLimiter:           rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestID())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
		categories.POST("/:id/income", r.ledgerController.AddIncome)
		categories.POST("/:id/expenses", r.ledgerController.RecordExpense)
	}

	v1.POST("/income/split", r.ledgerController.SplitIncome)

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.GET("/count", r.transactionController.Count)
		transactions.GET("/summary", r.transactionController.Summary)
		transactions.GET("/export", r.transactionController.Export)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}

	loans := v1.Group("/loans")
	{
		loans.GET("", r.loanController.List)
		loans.POST("", r.loanController.Create)
		loans.POST("/:id/half-payment", r.loanController.PayHalf)
		loans.POST("/:id/payment", r.loanController.PayFull)
		loans.DELETE("/:id", r.loanController.Delete)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/categories", r.dashboardController.Categories)
		dashboard.GET("/overview", r.dashboardController.Overview)
	}
}
