package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"meal-together/session-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// UserHeader carries the authenticated user id set by the front door.
const UserHeader = "X-User-ID"

type contextKey struct{}

// requireUser rejects requests without a valid user id and stores it in the context.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.Header.Get(UserHeader))
		if err != nil || id <= 0 {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, id)))
	})
}

func currentUser(r *http.Request) int {
	id, _ := r.Context().Value(contextKey{}).(int)
	return id
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrDeadlinePassed), errors.Is(err, service.ErrDuplicateOrder):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidMenuItem):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"user_id": currentUser(r),
		}).WithError(err).Error("request failed")
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil && id > 0
}
