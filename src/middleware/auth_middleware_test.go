package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func identityRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestParseTokenFromRequest(t *testing.T) {
	validClaims := jwt.MapClaims{
		"sub":   "ext-123",
		"email": "sam@example.com",
		"name":  "Sam Doe",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	t.Run("valid token", func(t *testing.T) {
		identity, err := ParseTokenFromRequest(identityRequest(signedToken(t, testSecret, validClaims)), testSecret)
		require.NoError(t, err)
		assert.Equal(t, "ext-123", identity.ExternalID)
		assert.Equal(t, "sam@example.com", identity.Email)
		assert.Equal(t, "Sam Doe", identity.Name)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := ParseTokenFromRequest(identityRequest(""), testSecret)
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseTokenFromRequest(identityRequest(signedToken(t, "other-secret", validClaims)), testSecret)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.MapClaims{"sub": "ext-123", "exp": time.Now().Add(-time.Hour).Unix()}
		_, err := ParseTokenFromRequest(identityRequest(signedToken(t, testSecret, expired)), testSecret)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		noSub := jwt.MapClaims{"email": "sam@example.com", "exp": time.Now().Add(time.Hour).Unix()}
		_, err := ParseTokenFromRequest(identityRequest(signedToken(t, testSecret, noSub)), testSecret)
		assert.Error(t, err)
	})
}

func TestRequireIdentity(t *testing.T) {
	var gotExternalID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotExternalID, _ = r.Context().Value(ContextKeyExternalID).(string)
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireIdentity(testSecret)(next)

	t.Run("no identity yields 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest("not-a-jwt"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "ext-42", "exp": time.Now().Add(time.Hour).Unix()}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, identityRequest(signedToken(t, testSecret, claims)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ext-42", gotExternalID)
	})
}

func TestAuthMiddleware_NoIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	// No database call happens before token validation fails.
	handler := AuthMiddleware(nil, testSecret)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
}
