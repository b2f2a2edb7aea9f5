package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-together/api-gateway/internal/gateway"
	"meal-together/api-gateway/internal/mocks"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func nullLog() *logrus.Entry {
	logger, _ := logtest.NewNullLogger()
	return logrus.NewEntry(logger)
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nullLog())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_ProxiesToSessionService(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{SessionSvcURL: "http://session-svc"}, mockClient, nullLog())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://session-svc/api/sessions/3/summary?format=json" &&
			req.Header.Get(gateway.UserHeader) == "1" &&
			req.Header.Get(gateway.RequestIDHeader) != ""
	})).Return(okResponse(`{"total_session_spent":"37.5"}`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/3/summary?format=json", nil)
	req.Header.Set(gateway.UserHeader, "1")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "37.5")
	assert.NotEmpty(t, rr.Header().Get(gateway.RequestIDHeader))
}

func TestGateway_RouteHandler_KeepsRequestID(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{SessionSvcURL: "http://session-svc"}, mockClient, nullLog())

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get(gateway.RequestIDHeader) == "req-42"
	})).Return(okResponse(`[]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	req.Header.Set(gateway.UserHeader, "2")
	req.Header.Set(gateway.RequestIDHeader, "req-42")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, "req-42", rr.Header().Get(gateway.RequestIDHeader))
}

func TestGateway_RouteHandler_RequiresUser(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nullLog())

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGateway_RouteHandler_UnknownRoute(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nullLog())

	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{SessionSvcURL: "http://invalid"}, mockClient, nullLog())

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	req.Header.Set(gateway.UserHeader, "1")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
