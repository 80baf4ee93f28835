// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/application/adapter"
	"github.com/envelope-ledger/backend/internal/application/usecase/category"
	"github.com/envelope-ledger/backend/internal/application/usecase/dashboard"
	"github.com/envelope-ledger/backend/internal/application/usecase/ledger"
	"github.com/envelope-ledger/backend/internal/application/usecase/loan"
	"github.com/envelope-ledger/backend/internal/application/usecase/transaction"
	"github.com/envelope-ledger/backend/internal/infra/server/router"
	"github.com/envelope-ledger/backend/internal/integration/cache"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/envelope-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/envelope-ledger/backend/internal/integration/export"
	"github.com/envelope-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Cache       adapter.AggregateCache
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// Options carries the optional collaborators of NewInjector.
// Zero values fall back to the production defaults.
type Options struct {
	Cache        adapter.AggregateCache
	CacheHealth  func() bool
	DBHealth     func() bool
	Clock        adapter.Clock
	CSVDelimiter rune
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	aggregateCache := opts.Cache
	if aggregateCache == nil {
		aggregateCache = cache.NoopCache{}
	}
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	dbHealth := opts.DBHealth
	if dbHealth == nil {
		dbHealth = func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}
	}

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	loanRepo := persistence.NewLoanRepository(db)
	dashboardRepo := persistence.NewDashboardRepository(db)
	uow := cache.NewInvalidatingUnitOfWork(persistence.NewUnitOfWork(db, clock), aggregateCache)
	exporter := export.NewCSVExporter(opts.CSVDelimiter)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(uow, clock)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(uow, clock)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(uow)

	// Create ledger use cases
	splitIncomeUseCase := ledger.NewSplitIncomeUseCase(uow, clock)
	addCategoryIncomeUseCase := ledger.NewAddCategoryIncomeUseCase(uow, clock)
	recordExpenseUseCase := ledger.NewRecordExpenseUseCase(uow, clock)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, cfg.Ledger.DefaultPageSize)
	countTransactionsUseCase := transaction.NewCountTransactionsUseCase(transactionRepo)
	summarizeTransactionsUseCase := transaction.NewSummarizeTransactionsUseCase(transactionRepo, aggregateCache)
	exportTransactionsUseCase := transaction.NewExportTransactionsUseCase(transactionRepo, exporter)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(uow)

	// Create loan use cases
	listLoansUseCase := loan.NewListLoansUseCase(loanRepo)
	createLoanUseCase := loan.NewCreateLoanUseCase(uow, clock)
	payLoanUseCase := loan.NewPayLoanUseCase(uow, clock)
	deleteLoanUseCase := loan.NewDeleteLoanUseCase(uow)

	// Create dashboard use cases
	categoryAggregatesUseCase := dashboard.NewGetCategoryAggregatesUseCase(dashboardRepo, aggregateCache)
	overviewUseCase := dashboard.NewGetOverviewUseCase(dashboardRepo, loanRepo, aggregateCache, clock)

	// Create controllers
	healthController := controller.NewHealthController(dbHealth, opts.CacheHealth)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	ledgerController := controller.NewLedgerController(
		splitIncomeUseCase,
		addCategoryIncomeUseCase,
		recordExpenseUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		countTransactionsUseCase,
		summarizeTransactionsUseCase,
		exportTransactionsUseCase,
		deleteTransactionUseCase,
		exporter.ContentType(),
	)

	loanController := controller.NewLoanController(
		listLoansUseCase,
		createLoanUseCase,
		payLoanUseCase,
		deleteLoanUseCase,
	)

	dashboardController := controller.NewDashboardController(
		categoryAggregatesUseCase,
		overviewUseCase,
	)

	// Create middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.Ledger.RateLimit, cfg.Ledger.RateWindow)

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		ledgerController,
		transactionController,
		loanController,
		dashboardController,
		rateLimiter,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Cache:       aggregateCache,
		RateLimiter: rateLimiter,
		Router:      r,
	}
}
