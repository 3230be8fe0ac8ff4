package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/container"
	dbmocks "library-backend/pkg/database/mocks"
	"library-backend/pkg/jwt"
)

func testContainer() *container.Container {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:      config.AppConfig{Version: "test"},
		Database: &database.DBConfig{},
		JWT:      config.JWTConfig{Secret: "secret", Issuer: "library", AccessTTL: time.Hour},
		Library:  config.LibraryConfig{DefaultPageSize: 10},
	}
	return container.New(cfg, nil, &dbmocks.TxManager{})
}

func TestSetupRouter_Routes(t *testing.T) {
	r := SetupRouter(testContainer())

	registered := map[string]bool{}
	for _, ri := range r.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}

	for _, want := range []string{
		"GET /api/v1/health",
		"GET /api/v1/metrics",
		"GET /api/v1/books/public",
		"GET /api/v1/books",
		"POST /api/v1/books",
		"GET /api/v1/books/validate-isbn",
		"GET /api/v1/books/name-suggestions",
		"GET /api/v1/books/author-suggestions",
		"POST /api/v1/books/borrow-status/batch",
		"GET /api/v1/books/:id/availability",
		"GET /api/v1/books/:id/borrow-status",
		"POST /api/v1/books/:id/borrow",
		"POST /api/v1/books/:id/return",
		"GET /api/v1/me/borrowed-books",
		"GET /api/v1/me/returned-books",
		"GET /api/v1/me/loan-history",
		"GET /api/v1/admin/users/stats",
		"GET /api/v1/admin/users/stats/export",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetupRouter_AuthGates(t *testing.T) {
	c := testContainer()
	r := SetupRouter(c)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/books/b1/borrow", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := c.JWTManager.GenerateAccessToken(5, "reader", jwt.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/books/validate-isbn?isbn=9781566199094", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":true`)
}

func TestHealth_WithoutDatabase(t *testing.T) {
	r := SetupRouter(testContainer())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"disconnected"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_http_requests_total")
}
