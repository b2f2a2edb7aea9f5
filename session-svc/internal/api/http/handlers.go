package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Users       service.UserServiceInterface
	Restaurants service.RestaurantServiceInterface
	Sessions    service.SessionServiceInterface
	Orders      service.OrderServiceInterface
	Balances    service.BalanceServiceInterface
	log         *logrus.Entry
}

func NewHandler(
	userSvc service.UserServiceInterface,
	restSvc service.RestaurantServiceInterface,
	sessionSvc service.SessionServiceInterface,
	orderSvc service.OrderServiceInterface,
	balanceSvc service.BalanceServiceInterface,
	log *logrus.Entry,
) *Handler {
	return &Handler{
		Users:       userSvc,
		Restaurants: restSvc,
		Sessions:    sessionSvc,
		Orders:      orderSvc,
		Balances:    balanceSvc,
		log:         log,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireUser)

	api.HandleFunc("/users", h.createUser).Methods("POST")
	api.HandleFunc("/users", h.getUsers).Methods("GET")
	api.HandleFunc("/groups", h.createGroup).Methods("POST")
	api.HandleFunc("/groups", h.getGroups).Methods("GET")

	api.HandleFunc("/restaurants", h.createRestaurant).Methods("POST")
	api.HandleFunc("/restaurants", h.getRestaurants).Methods("GET")
	api.HandleFunc("/restaurants/{id}", h.getRestaurant).Methods("GET")
	api.HandleFunc("/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	api.HandleFunc("/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	api.HandleFunc("/restaurants/{id}/menu", h.getMenu).Methods("GET")

	api.HandleFunc("/sessions", h.createSession).Methods("POST")
	api.HandleFunc("/sessions", h.getSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.getSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.updateSession).Methods("PUT")
	api.HandleFunc("/sessions/{id}/summary", h.getSessionSummary).Methods("GET")
	api.HandleFunc("/sessions/{id}/qrcode", h.getSessionQRCode).Methods("GET")

	api.HandleFunc("/sessions/{id}/orders/{userId}", h.createOrder).Methods("POST")
	api.HandleFunc("/sessions/{id}/orders/{userId}", h.updateOrder).Methods("PUT")
	api.HandleFunc("/sessions/{id}/orders/{userId}", h.deleteOrder).Methods("DELETE")

	api.HandleFunc("/balances", h.getBalances).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "session-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Users.Register(r.Context(), &user); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var group domain.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Users.CreateGroup(r.Context(), &group); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) getGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Users.ListGroups(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest.OwnerID = currentUser(r)
	if err := h.Restaurants.Create(r.Context(), &rest); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	detail, err := h.Restaurants.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	if err := h.Restaurants.Delete(r.Context(), id, currentUser(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.RestaurantID = id
	if err := h.Restaurants.AddMenuItem(r.Context(), &item, currentUser(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	items, err := h.Restaurants.Menu(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.CreatorID = currentUser(r)
	session, err := h.Sessions.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) getSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Sessions.ListForUser(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	detail, err := h.Sessions.Detail(r.Context(), id, currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// updateSession sends anyone but the creator back to the session page.
func (h *Handler) updateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	var req service.EditSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.SessionID = id
	req.RequesterID = currentUser(r)

	session, changes, err := h.Sessions.Edit(r.Context(), req)
	if errors.Is(err, service.ErrForbidden) {
		http.Redirect(w, r, fmt.Sprintf("/api/sessions/%d", id), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": session,
		"changes": nonNil(changes),
	})
}

func (h *Handler) getSessionSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	summary, err := h.Sessions.Summary(r.Context(), id, currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) getSessionQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	png, err := h.Sessions.InvitationQRCode(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

type orderRequest struct {
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Items         []service.ItemInput  `json:"items"`
}

func orderPath(r *http.Request) (sessionID, userID int, ok bool) {
	sessionID, ok = pathID(r, "id")
	if !ok {
		return 0, 0, false
	}
	userID, ok = pathID(r, "userId")
	return sessionID, userID, ok
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := orderPath(r)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	var body orderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Create(r.Context(), service.CreateOrderRequest{
		SessionID:     sessionID,
		TargetUserID:  userID,
		RequesterID:   currentUser(r),
		PaymentMethod: body.PaymentMethod,
		Items:         body.Items,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := orderPath(r)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	var body orderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, changes, err := h.Orders.Edit(r.Context(), service.EditOrderRequest{
		SessionID:     sessionID,
		OwnerID:       userID,
		RequesterID:   currentUser(r),
		PaymentMethod: body.PaymentMethod,
		Items:         body.Items,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":   order,
		"changes": nonNil(changes),
	})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	sessionID, userID, ok := orderPath(r)
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err := h.Orders.Cancel(r.Context(), sessionID, userID, currentUser(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getBalances(w http.ResponseWriter, r *http.Request) {
	report, err := h.Balances.Report(r.Context(), currentUser(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
