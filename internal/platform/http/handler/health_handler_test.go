package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(checks ...Check) *gin.Engine {
	h := NewHealthHandler(checks...)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)
	return r
}

func ok(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func TestHealth_GET(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     []Check
		wantStatus int
		wantBody   healthBody
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantBody:   healthBody{Status: "ok", Checks: map[string]string{}},
		},
		{
			name:       "all healthy",
			checks:     []Check{{"database", ok}, {"redis", ok}},
			wantStatus: http.StatusOK,
			wantBody:   healthBody{Status: "ok", Checks: map[string]string{"database": "ok", "redis": "ok"}},
		},
		{
			name:       "redis down",
			checks:     []Check{{"database", ok}, {"redis", down}},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   healthBody{Status: "degraded", Checks: map[string]string{"database": "ok", "redis": "unavailable"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			setupRouter(tt.checks...).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var got healthBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestHealth_HEADAndOPTIONS(t *testing.T) {
	t.Parallel()

	called := false
	dep := Check{Name: "database", Ping: func(context.Context) error {
		called = true
		return nil
	}}
	r := setupRouter(dep)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.False(t, called, "checks only run on GET")
}
