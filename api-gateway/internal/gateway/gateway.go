package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	UserHeader      = "X-User-ID"
	RequestIDHeader = "X-Request-ID"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	SessionSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *logrus.Entry
}

func NewGateway(config Config, client HTTPClient, log *logrus.Entry) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ProxyRequest forwards r to targetURL with the same path and query. The request id is
// generated here when the caller did not send one.
func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := g.log.WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"target":     targetURL,
		"request_id": requestID,
	})

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.WithError(err).Error("failed to create request")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := g.client.Do(req)
	if err != nil {
		log.WithError(err).Error("upstream unavailable")
		http.Error(w, "Upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.Header().Set(RequestIDHeader, requestID)
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.WithError(err).Warn("failed to copy response")
	}
	log.WithField("status", resp.StatusCode).Debug("proxied")
}

// RouteHandler sends every /api route to session-svc. Calls without a user id are
// rejected here so they never reach the backend.
func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if r.Header.Get(UserHeader) == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	g.ProxyRequest(w, r, g.config.SessionSvcURL)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
