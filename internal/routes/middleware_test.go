package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/backend/internal/config"
	"todoapp/backend/internal/logging"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/routes"
	"todoapp/backend/testutil"
)

func setupRouterWithUser(t *testing.T) (*gin.Engine, string) {
	db := testutil.SetupTestDB(t)
	r := testutil.SetupTestRouter(t, db)
	testutil.CreateTestUser(t, repositories.NewUserRepository(db), "normal_user@example.com", testutil.TestPassword)
	token, err := testutil.LoginAndGetToken(t, r, "normal_user@example.com", testutil.TestPassword)
	require.NoError(t, err)
	return r, token
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["message"]
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r, token := setupRouterWithUser(t)

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_NoToken(t *testing.T) {
	r, _ := setupRouterWithUser(t)

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, responseMessage(t, w), "Authorization header required")
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	r, token := setupRouterWithUser(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Token "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, responseMessage(t, w), "Invalid token format")
}

func TestAuthMiddleware_RejectedTokens(t *testing.T) {
	r, _ := setupRouterWithUser(t)
	cfg := testutil.TestConfig()

	sign := func(secret string, expiresAt time.Time) string {
		claims := jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    cfg.Auth.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Auth.Audience},
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "invalid.jwt.token"},
		{"expired", sign(testutil.TestJWTSecret, time.Now().Add(-time.Minute))},
		{"foreign-signed", sign("some_other_secret", time.Now().Add(time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.DoJSON(t, r, http.MethodGet, "/api/tasks", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, responseMessage(t, w), "Invalid or expired token")
		})
	}
}

func TestRequestID(t *testing.T) {
	r, _ := setupRouterWithUser(t)

	w := testutil.DoJSON(t, r, http.MethodGet, "/health", "", nil)
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "trace-abc", w.Header().Get("X-Request-ID"))

	req, _ = http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 500))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestCORS(t *testing.T) {
	r, _ := setupRouterWithUser(t)

	req, _ := http.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRecoveryAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LoggingConfig{Level: "debug", Format: "json"})

	r := gin.New()
	r.Use(routes.RequestID(), routes.RequestLogger(logger), routes.Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", responseMessage(t, w))
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), w.Header().Get("X-Request-ID"))
}
