// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fiscalops/backend/config"
	"github.com/fiscalops/backend/internal/application/usecase/auth"
	"github.com/fiscalops/backend/internal/application/usecase/bracket"
	"github.com/fiscalops/backend/internal/application/usecase/deduction"
	"github.com/fiscalops/backend/internal/application/usecase/income"
	"github.com/fiscalops/backend/internal/application/usecase/taxanalysis"
	"github.com/fiscalops/backend/internal/infra/server/router"
	"github.com/fiscalops/backend/internal/integration/adapters"
	"github.com/fiscalops/backend/internal/integration/email"
	"github.com/fiscalops/backend/internal/integration/entrypoint/controller"
	"github.com/fiscalops/backend/internal/integration/entrypoint/middleware"
	"github.com/fiscalops/backend/internal/integration/persistence"
	"github.com/fiscalops/backend/internal/integration/persistence/model"
	"github.com/fiscalops/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// Values saved from earlier responses, referenced in later steps
	// as {name} inside endpoints and request bodies.
	saved map[string]string

	// Email
	emailSender *email.MockEmailSender

	// Config
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Disable the login rate limiter for test runs
		_ = os.Setenv("ENV", "test")
	})

	ctx.AfterSuite(func() {
		// Cleanup any global resources
	})
}

// buildEngine wires the full application against the in-memory database and
// miniredis, mirroring the production wiring in cmd/api.
func buildEngine(tc *TestContext) *gin.Engine {
	database := mock.NewDb(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.DeductionRecordModel{},
		&model.IncomeRecordModel{},
		&model.TaxBracketModel{},
		&model.TaxAnalysisSnapshotModel{},
		&model.RiskAdvisoryModel{},
	)
	if err := database.Reset(); err != nil {
		panic(fmt.Sprintf("failed to reset test database: %s", err))
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		panic(fmt.Sprintf("failed to clear test redis: %s", err))
	}

	gormDB := database.DbConn

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	deductionRepo := persistence.NewDeductionRecordRepository(gormDB)
	incomeRepo := persistence.NewIncomeRecordRepository(gormDB)
	snapshotRepo := persistence.NewSnapshotRepository(gormDB)
	advisoryRepo := persistence.NewRiskAdvisoryRepository(gormDB)
	bracketRepo := persistence.NewCachedTaxBracketRepository(
		persistence.NewTaxBracketRepository(gormDB), redisClient, time.Minute)

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(tc.cfg.JWT.Secret, tokenRepo)
	tc.emailSender = email.NewMockEmailSender()
	// No API key configured: advisory requests should answer 503.
	advisoryService := adapters.NewGeminiAdvisoryService("")

	// Use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	createDeductionUseCase := deduction.NewCreateDeductionUseCase(deductionRepo)
	listDeductionsUseCase := deduction.NewListDeductionsUseCase(deductionRepo)
	reviewDeductionUseCase := deduction.NewReviewDeductionUseCase(deductionRepo)
	deleteDeductionUseCase := deduction.NewDeleteDeductionUseCase(deductionRepo)
	createIncomeUseCase := income.NewCreateIncomeUseCase(incomeRepo)
	listIncomesUseCase := income.NewListIncomesUseCase(incomeRepo)
	deleteIncomeUseCase := income.NewDeleteIncomeUseCase(incomeRepo)

	importBracketTableUseCase := bracket.NewImportBracketTableUseCase(bracketRepo)
	listBracketsUseCase := bracket.NewListBracketsUseCase(bracketRepo)

	aggregateUseCase := taxanalysis.NewAggregateRecordsUseCase(deductionRepo, incomeRepo)
	calculateUseCase := taxanalysis.NewCalculateAndRecordUseCase(
		aggregateUseCase, bracketRepo, snapshotRepo, userRepo, tc.emailSender, tc.cfg.Tax.FallbackRate)
	listSnapshotsUseCase := taxanalysis.NewListSnapshotsUseCase(snapshotRepo)
	getSnapshotUseCase := taxanalysis.NewGetSnapshotUseCase(snapshotRepo)
	requestAdvisoryUseCase := taxanalysis.NewRequestAdvisoryUseCase(getSnapshotUseCase, advisoryService, advisoryRepo)

	// Controllers and middleware
	healthController := controller.NewHealthController(func() bool { return true })
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	deductionController := controller.NewDeductionController(
		createDeductionUseCase, listDeductionsUseCase, reviewDeductionUseCase, deleteDeductionUseCase)
	incomeController := controller.NewIncomeController(createIncomeUseCase, listIncomesUseCase, deleteIncomeUseCase)
	bracketController := controller.NewBracketController(importBracketTableUseCase, listBracketsUseCase)
	taxAnalysisController := controller.NewTaxAnalysisController(
		calculateUseCase, listSnapshotsUseCase, getSnapshotUseCase, requestAdvisoryUseCase)

	r := router.NewRouter(
		healthController,
		authController,
		deductionController,
		incomeController,
		bracketController,
		taxAnalysisController,
		middleware.NewRateLimiter(),
		middleware.NewAuthMiddleware(tokenService),
	)
	return r.Setup("test")
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			saved:          make(map[string]string),
			cfg:            config.Load(),
		}

		tc.engine = buildEngine(tc)
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am registered and logged in as "([^"]*)"$`, iAmRegisteredAndLoggedInAs)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response amount "([^"]*)" should equal "([^"]*)"$`, theResponseAmountShouldEqual)
	ctx.Step(`^the response list "([^"]*)" should have (\d+) items?$`, theResponseListShouldHaveItems)
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

// substitute replaces {name} placeholders with values saved from earlier
// responses.
func (tc *TestContext) substitute(s string) string {
	for name, value := range tc.saved {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader) error {
	url := tc.server.URL + tc.substitute(endpoint)
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, bytes.NewBufferString(tc.substitute(body.Content))); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iAmRegisteredAndLoggedInAs(ctx context.Context, emailAddr string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	payload := fmt.Sprintf(`{"email":%q,"name":"Test User","password":"SuperSecret123"}`, emailAddr)
	if err := tc.doRequest("POST", "/api/v1/auth/register", bytes.NewBufferString(payload)); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("registration failed with status %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var authResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &authResp); err != nil {
		return ctx, fmt.Errorf("failed to parse registration response: %w", err)
	}

	tc.accessToken = authResp.AccessToken
	tc.refreshToken = authResp.RefreshToken
	return SetTestContext(ctx, tc), nil
}

func iAmNotAuthenticated(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return SetTestContext(ctx, tc), nil
}

func iSaveTheResponseFieldAs(ctx context.Context, field, name string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return ctx, err
	}

	tc.saved[name] = fmt.Sprintf("%v", value)
	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), tc.substitute(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

// lookupField resolves a dotted path like "user.email" or "snapshots.0.id"
// inside the JSON response body.
func (tc *TestContext) lookupField(path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response. Body: %s", path, string(tc.responseBody))
			}
			current = value
		case []interface{}:
			var index int
			if _, err := fmt.Sscanf(segment, "%d", &index); err != nil {
				return nil, fmt.Errorf("field '%s': '%s' is not an array index", path, segment)
			}
			if index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s': index %d out of range", path, index)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s': cannot descend into %T", path, current)
		}
	}

	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != tc.substitute(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}

	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	_, err := tc.lookupField(field)
	return err
}

// theResponseAmountShouldEqual compares a decimal field numerically, so
// "2000", "2000.0" and "2000.00" all match an expected "2000".
func theResponseAmountShouldEqual(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}

	actual, err := decimal.NewFromString(fmt.Sprintf("%v", value))
	if err != nil {
		return fmt.Errorf("field '%s' is not a decimal amount: %v", field, value)
	}

	want, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("expected amount '%s' is not a decimal", expected)
	}

	if !actual.Equal(want) {
		return fmt.Errorf("field '%s' expected amount %s, got %s", field, want, actual)
	}

	return nil
}

func theResponseListShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := tc.lookupField(field)
	if err != nil {
		return err
	}

	list, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(list) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", field, count, len(list), string(tc.responseBody))
	}

	return nil
}
