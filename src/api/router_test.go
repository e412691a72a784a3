package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hardik8491/Gold-Coin-sub001/src/config"
	"github.com/Hardik8491/Gold-Coin-sub001/src/ratelimit"
)

func newTestRouter() http.Handler {
	// Handlers behind the auth gate never run in these tests, so the
	// database and upstream clients can stay nil.
	return NewRouter(Deps{
		Config: &config.Config{JWTSecret: "test-secret", CronSecret: "cron-secret"},
		Limits: ratelimit.NewStore(),
	})
}

func TestRouter_ProtectedRoutesRequireIdentity(t *testing.T) {
	router := newTestRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/users/sync"},
		{http.MethodPost, "/api/plaid/link-token"},
		{http.MethodPost, "/api/plaid/exchange-token"},
		{http.MethodPost, "/api/plaid/sync"},
		{http.MethodGet, "/api/accounts"},
		{http.MethodPost, "/api/accounts"},
		{http.MethodGet, "/api/transactions"},
		{http.MethodGet, "/api/transactions/stats"},
		{http.MethodGet, "/api/analytics/spending"},
		{http.MethodPost, "/api/ai/categorize"},
		{http.MethodPost, "/api/ai/receipt-scan"},
		{http.MethodGet, "/api/budgets"},
		{http.MethodGet, "/api/goals"},
		{http.MethodGet, "/api/bills"},
		{http.MethodGet, "/api/bills/stats"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
		})
	}
}

func TestRouter_CronUsesSecretNotToken(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cron/bill-reminders?cronSecret=wrong", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
