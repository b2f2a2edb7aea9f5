package service

import (
	"context"
	"errors"
	"fmt"

	"meal-together/session-svc/internal/domain"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

// ItemInput is one row of an order form. ID is zero for a new item; Delete marks an
// existing item for removal.
type ItemInput struct {
	ID         int     `json:"id"`
	MenuItemID int     `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Note       *string `json:"note"`
	Delete     bool    `json:"delete"`
}

type CreateOrderRequest struct {
	SessionID     int
	TargetUserID  int
	RequesterID   int
	PaymentMethod domain.PaymentMethod
	Items         []ItemInput
}

type EditOrderRequest struct {
	SessionID     int
	OwnerID       int
	RequesterID   int
	PaymentMethod domain.PaymentMethod
	Items         []ItemInput
}

type OrderService struct {
	sessions    SessionRepository
	orders      OrderRepository
	restaurants RestaurantRepository
	dispatcher  *Dispatcher
	clock       clock.Clock
	log         *logrus.Entry
}

func NewOrderService(sessions SessionRepository, orders OrderRepository, restaurants RestaurantRepository, dispatcher *Dispatcher, clk clock.Clock, log *logrus.Entry) *OrderService {
	return &OrderService{
		sessions:    sessions,
		orders:      orders,
		restaurants: restaurants,
		dispatcher:  dispatcher,
		clock:       clk,
		log:         log,
	}
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	session, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.checkDeadline(session, req.RequesterID); err != nil {
		return nil, err
	}
	if req.RequesterID != req.TargetUserID && req.RequesterID != session.CreatorID {
		return nil, ErrForbidden
	}

	_, err = s.orders.GetOrder(ctx, session.ID, req.TargetUserID)
	switch {
	case err == nil:
		return nil, ErrDuplicateOrder
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	method, err := paymentMethodOrDefault(req.PaymentMethod, domain.PaymentCash)
	if err != nil {
		return nil, err
	}

	menu, err := s.menuFor(ctx, session)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		SessionID:     session.ID,
		UserID:        req.TargetUserID,
		PaymentMethod: method,
		Items:         []domain.OrderItem{},
	}
	for _, in := range req.Items {
		if in.Delete {
			continue
		}
		item, err := buildItem(in, menu)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	order.RecalculateTotal()

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"user_id":    order.UserID,
		"order_id":   order.ID,
		"total":      order.TotalPrice.StringFixed(2),
	}).Info("order created")

	if req.RequesterID != req.TargetUserID && req.RequesterID == session.CreatorID {
		lines := OrderChanges(nil, nil, nil, order.Items, nil)
		_ = s.dispatcher.Send(ctx, domain.NotifyOrderUpdate, session,
			fmt.Sprintf("Your order has been updated in the session: %s", session.Name),
			lines, []int{order.UserID})
	}

	return order, nil
}

func (s *OrderService) Edit(ctx context.Context, req EditOrderRequest) (*domain.Order, []string, error) {
	session, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkOwnership(session, req.OwnerID, req.RequesterID); err != nil {
		return nil, nil, err
	}

	original, err := s.orders.GetOrder(ctx, session.ID, req.OwnerID)
	if err != nil {
		return nil, nil, err
	}

	method, err := paymentMethodOrDefault(req.PaymentMethod, original.PaymentMethod)
	if err != nil {
		return nil, nil, err
	}

	menu, err := s.menuFor(ctx, session)
	if err != nil {
		return nil, nil, err
	}

	existing := make(map[int]int, len(original.Items))
	items := make([]domain.OrderItem, len(original.Items))
	copy(items, original.Items)
	for i, item := range items {
		existing[item.ID] = i
	}

	removed := make(map[int]bool)
	seen := make(map[int]bool)
	var deleted []domain.OrderItem
	var added []domain.OrderItem
	for _, in := range req.Items {
		if in.ID == 0 {
			if in.Delete {
				continue
			}
			item, err := buildItem(in, menu)
			if err != nil {
				return nil, nil, err
			}
			item.OrderID = original.ID
			added = append(added, item)
			continue
		}

		idx, ok := existing[in.ID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: item %d is not part of this order", ErrValidation, in.ID)
		}
		if seen[in.ID] {
			return nil, nil, fmt.Errorf("%w: item %d is listed more than once", ErrValidation, in.ID)
		}
		seen[in.ID] = true
		if in.Delete {
			removed[in.ID] = true
			deleted = append(deleted, items[idx])
			continue
		}
		item, err := buildItem(in, menu)
		if err != nil {
			return nil, nil, err
		}
		item.ID = in.ID
		item.OrderID = original.ID
		items[idx] = item
	}

	updated := &domain.Order{
		ID:            original.ID,
		SessionID:     original.SessionID,
		UserID:        original.UserID,
		PaymentMethod: method,
		Items:         []domain.OrderItem{},
	}
	for _, item := range items {
		if !removed[item.ID] {
			updated.Items = append(updated.Items, item)
		}
	}
	updated.Items = append(updated.Items, added...)
	updated.RecalculateTotal()

	deletedIDs := make([]int, 0, len(deleted))
	for _, item := range deleted {
		deletedIDs = append(deletedIDs, item.ID)
	}
	if err := s.orders.UpdateOrder(ctx, updated, deletedIDs); err != nil {
		return nil, nil, err
	}

	changes := OrderChanges(original, updated, original.Items, updated.Items, deleted)

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"user_id":    updated.UserID,
		"order_id":   updated.ID,
		"changes":    len(changes),
	}).Info("order updated")

	if len(changes) > 0 && req.RequesterID != req.OwnerID && req.RequesterID == session.CreatorID {
		_ = s.dispatcher.Send(ctx, domain.NotifyOrderUpdate, session,
			fmt.Sprintf("Your order has been updated in the session: %s", session.Name),
			changes, []int{req.OwnerID})
	}

	return updated, changes, nil
}

func (s *OrderService) Cancel(ctx context.Context, sessionID, ownerID, requesterID int) error {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(session, ownerID, requesterID); err != nil {
		return err
	}

	order, err := s.orders.GetOrder(ctx, session.ID, ownerID)
	if err != nil {
		return err
	}

	if requesterID != ownerID {
		_ = s.dispatcher.Send(ctx, domain.NotifyOrderCancelled, session,
			fmt.Sprintf("Your order has been cancelled in the session: %s", session.Name),
			[]string{"Order deleted"}, []int{ownerID})
	}

	if err := s.orders.DeleteOrder(ctx, order.ID); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"user_id":    ownerID,
		"order_id":   order.ID,
	}).Info("order cancelled")
	return nil
}

// checkOwnership applies the edit/cancel rules: owner or creator, and only the creator
// after the deadline.
func (s *OrderService) checkOwnership(session *domain.MealSession, ownerID, requesterID int) error {
	if requesterID != ownerID && requesterID != session.CreatorID {
		return ErrForbidden
	}
	return s.checkDeadline(session, requesterID)
}

func (s *OrderService) checkDeadline(session *domain.MealSession, requesterID int) error {
	if !session.IsActive(s.clock.Now()) && requesterID != session.CreatorID {
		return ErrDeadlinePassed
	}
	return nil
}

func (s *OrderService) menuFor(ctx context.Context, session *domain.MealSession) (map[int]domain.MenuItem, error) {
	items, err := s.restaurants.ListMenuItems(ctx, session.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	menu := make(map[int]domain.MenuItem, len(items))
	for _, item := range items {
		menu[item.ID] = item
	}
	return menu, nil
}

func buildItem(in ItemInput, menu map[int]domain.MenuItem) (domain.OrderItem, error) {
	if in.Quantity <= 0 {
		return domain.OrderItem{}, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	menuItem, ok := menu[in.MenuItemID]
	if !ok {
		return domain.OrderItem{}, ErrInvalidMenuItem
	}
	return domain.OrderItem{
		MenuItemID: menuItem.ID,
		MenuItem:   menuItem,
		Quantity:   in.Quantity,
		Note:       in.Note,
	}, nil
}

func paymentMethodOrDefault(method, fallback domain.PaymentMethod) (domain.PaymentMethod, error) {
	if method == "" {
		return fallback, nil
	}
	if !method.Valid() {
		return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}
	return method, nil
}

var _ OrderServiceInterface = (*OrderService)(nil)
