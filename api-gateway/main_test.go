package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-together/api-gateway/internal/gateway"
	"meal-together/config"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func testServer(t *testing.T, backend http.HandlerFunc) http.Handler {
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)

	logger, _ := logtest.NewNullLogger()
	return newServer(config.Settings{SessionSvcURL: ts.URL}, ts.Client(), logrus.NewEntry(logger))
}

// TestNewServer_ProxiesToSessionService checks the path and identity reach the backend.
func TestNewServer_ProxiesToSessionService(t *testing.T) {
	var backendPath, backendUser string
	handler := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		backendPath = r.URL.Path
		backendUser = r.Header.Get(gateway.UserHeader)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/4", nil)
	req.Header.Set(gateway.UserHeader, "2")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "/api/sessions/4", backendPath)
	assert.Equal(t, "2", backendUser)
	assert.NotEmpty(t, rr.Header().Get(gateway.RequestIDHeader))
}

// TestNewServer_Preflight verifies CORS allows the identity header.
func TestNewServer_Preflight(t *testing.T) {
	reached := false
	handler := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", gateway.UserHeader)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.False(t, reached)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), "x-user-id")
}

// TestNewServer_HealthIsPublic ensures /health needs no user id.
func TestNewServer_HealthIsPublic(t *testing.T) {
	handler := testServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
