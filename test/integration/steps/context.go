// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/envelope-ledger/backend/config"
	"github.com/envelope-ledger/backend/internal/infra/dependency"
	"github.com/envelope-ledger/backend/internal/integration/cache"
	"github.com/envelope-ledger/backend/test/integration/mock"
)

const defaultRateLimit = 1000

type testContext struct {
	server   *httptest.Server
	client   *http.Client
	headers  map[string]string
	response *response
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time
}

type response struct {
	status int
	header http.Header
	raw    []byte
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		mock.NewDb()
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       mock.NewDb(),
		redis:    mock.NewRedis(),
		timeMock: mock.NewTime(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		test.stopServer()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the mutation rate limit is (\d+) per minute$`, test.theMutationRateLimitIs)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Ledger setup steps
	ctx.Given(`^the ledger has the categories:$`, test.theLedgerHasTheCategories)
	ctx.Given(`^(\d+) (income|expense) transactions? of "([^"]*)" (?:were|was) recorded in "([^"]*)" on "([^"]*)"$`, test.transactionsWereRecorded)
	ctx.Given(`^a loan "([^"]*)" of "([^"]*)" was taken from "([^"]*)"$`, test.aLoanWasTaken)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be the amount "([^"]*)"$`, test.theResponseFieldShouldBeTheAmount)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)
	ctx.Then(`^the response body should contain the line "([^"]*)"$`, test.theResponseBodyShouldContainTheLine)
	ctx.Then(`^the response body should have (\d+) lines$`, test.theResponseBodyShouldHaveLines)

	// Database assertion steps
	ctx.Then(`^the category "([^"]*)" should have balance "([^"]*)"$`, test.theCategoryShouldHaveBalance)
	ctx.Then(`^the loan "([^"]*)" should have status "([^"]*)"$`, test.theLoanShouldHaveStatus)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.timeMock = mock.NewTime()

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return mock.ClearRedis(t.redis)
}

// startServer wires the full application over the shared store and cache.
func (t *testContext) startServer(rateLimit int) {
	t.stopServer()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Ledger.RateLimit = rateLimit
	cfg.Ledger.RateWindow = time.Minute

	redisCache := cache.NewRedisAggregateCache(t.redis, 10*time.Minute)
	injector := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
		Cache:       redisCache,
		CacheHealth: redisCache.HealthCheck,
		Clock:       t.timeMock,
	})

	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
}

func (t *testContext) stopServer() {
	if t.server != nil {
		t.server.Close()
		t.server = nil
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer(defaultRateLimit)
	return nil
}

func (t *testContext) theMutationRateLimitIs(limit int) error {
	t.startServer(limit)
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(current)
	return nil
}
