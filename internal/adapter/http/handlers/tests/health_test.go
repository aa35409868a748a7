package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"advanced-todo/internal/adapter/http/handlers"
	"advanced-todo/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

func newHealthRouter(pinger handlers.DatabasePinger) *gin.Engine {
	handler := handlers.NewHealthHandler(pinger, "advanced-todo")
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	router.GET("/health", handler.CheckHealth)
	router.GET("/health/report", handler.CheckHealthReport)
	return router
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     handlers.DatabasePinger
		wantStatus int
		wantMsg    string
	}{
		{name: "database up", pinger: stubPinger{}, wantStatus: http.StatusOK, wantMsg: handlers.StatusOk},
		{name: "database down", pinger: stubPinger{err: errors.New("connection refused")}, wantStatus: http.StatusInternalServerError, wantMsg: handlers.StatusDown},
		{name: "no database", pinger: nil, wantStatus: http.StatusInternalServerError, wantMsg: handlers.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newHealthRouter(tt.pinger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantStatus, rec.Code)

			var got handlers.HealthBasic
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, "advanced-todo", got.AppName)
		})
	}
}

func TestHealthHandler_CheckHealthReport(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health/report", nil)
	req.Header.Set("Accept-Language", "es")
	rec := httptest.NewRecorder()

	newHealthRouter(stubPinger{err: errors.New("timeout")}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got handlers.HealthAdvanced
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, handlers.StatusDown, got.Status.Database)
	assert.Equal(t, "es", got.Language)
}
