package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetly/internal/config"
	"budgetly/internal/logger"
	"budgetly/internal/middleware"
	"budgetly/internal/server"
	"budgetly/internal/services"
	"budgetly/internal/testutil"
	"budgetly/internal/validator"
)

const (
	testSecret = "integration-secret"
	testAPIKey = "integration-pipeline-key"
)

// fixedNow is "today" for every integration test.
var fixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		JWTSecret:        testSecret,
		ImportAPIKey:     testAPIKey,
		ImportMaxRecords: 50,
	}
	svc := server.NewServices(db, cfg, services.WithClock(func() time.Time { return fixedNow }))
	if err := svc.Categories.EnsureDefaults(); err != nil {
		t.Fatalf("failed to seed categories: %v", err)
	}

	return &testApp{DB: db, Router: server.NewRouter(cfg, svc)}
}

// tokenFor issues a bearer token scoped to ownerID.
func tokenFor(t *testing.T, ownerID string) string {
	t.Helper()
	token, err := middleware.GenerateAccessToken(ownerID, testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// mustStatus fails the test unless rec has the wanted status.
func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// categoryID looks up a category by internal name and type.
func (app *testApp) categoryID(t *testing.T, name, categoryType string) string {
	t.Helper()
	rec := app.request(http.MethodGet, "/api/v1/categories?type="+categoryType, "", "")
	mustStatus(t, rec, http.StatusOK)
	for _, c := range parseJSON(t, rec)["categories"].([]interface{}) {
		cat := c.(map[string]interface{})
		if cat["name"] == name {
			return cat["id"].(string)
		}
	}
	t.Fatalf("category %s/%s not found", categoryType, name)
	return ""
}

// section returns a nested object of a month view, e.g. "summary", "net_income".
func section(t *testing.T, view map[string]interface{}, keys ...string) map[string]interface{} {
	t.Helper()
	cur := view
	for _, k := range keys {
		next, ok := cur[k].(map[string]interface{})
		if !ok {
			t.Fatalf("missing %q in %v", k, cur)
		}
		cur = next
	}
	return cur
}

// assertAmount checks a decimal field, which is serialized as a JSON string.
func assertAmount(t *testing.T, obj map[string]interface{}, key, want string) {
	t.Helper()
	s, ok := obj[key].(string)
	if !ok {
		t.Fatalf("expected string amount for %q, got %T (%v)", key, obj[key], obj[key])
	}
	testutil.AssertAmount(t, key, want, decimal.RequireFromString(s))
}
