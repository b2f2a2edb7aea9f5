package httpapi

import (
	"net/http"

	"meal-together/session-svc/internal/metrics"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	handler.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", UserHeader},
	})
	return metrics.InstrumentHandler(c.Handler(r))
}

// StartServer blocks serving handler on addr.
func StartServer(addr string, handler http.Handler, log *logrus.Entry) error {
	log.WithField("addr", addr).Info("Session Service starting")
	return http.ListenAndServe(addr, handler)
}
