package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"meal-together/session-svc/internal/domain"

	"github.com/juju/clock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateSessionRequest struct {
	Name           string    `json:"name"`
	RestaurantID   int       `json:"restaurant_id"`
	CreatorID      int       `json:"-"`
	ParticipantIDs []int     `json:"participant_ids"`
	GroupIDs       []int     `json:"group_ids"`
	OrderDeadline  time.Time `json:"order_deadline"`
	DeliveryTime   time.Time `json:"delivery_time"`
}

type EditSessionRequest struct {
	SessionID      int       `json:"-"`
	RequesterID    int       `json:"-"`
	Name           string    `json:"name"`
	RestaurantID   int       `json:"restaurant_id"`
	ParticipantIDs []int     `json:"participant_ids"`
	GroupIDs       []int     `json:"group_ids"`
	OrderDeadline  time.Time `json:"order_deadline"`
	DeliveryTime   time.Time `json:"delivery_time"`
}

type SessionService struct {
	sessions    SessionRepository
	orders      OrderRepository
	users       UserRepository
	restaurants RestaurantRepository
	dispatcher  *Dispatcher
	qr          QRGenerator
	clock       clock.Clock
	loc         *time.Location
	log         *logrus.Entry
}

// NewSessionService builds the session service. loc is the zone used to render times in
// change notifications; nil keeps each time in its own zone.
func NewSessionService(
	sessions SessionRepository,
	orders OrderRepository,
	users UserRepository,
	restaurants RestaurantRepository,
	dispatcher *Dispatcher,
	qr QRGenerator,
	clk clock.Clock,
	loc *time.Location,
	log *logrus.Entry,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		orders:      orders,
		users:       users,
		restaurants: restaurants,
		dispatcher:  dispatcher,
		qr:          qr,
		clock:       clk,
		loc:         loc,
		log:         log,
	}
}

func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*domain.MealSession, error) {
	if err := validateSessionFields(req.Name, req.OrderDeadline, req.DeliveryTime); err != nil {
		return nil, err
	}
	restaurant, err := s.lookupRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantSet(ctx, req.CreatorID, req.ParticipantIDs, req.GroupIDs)
	if err != nil {
		return nil, err
	}

	session := &domain.MealSession{
		Name:           strings.TrimSpace(req.Name),
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		CreatorID:      req.CreatorID,
		ParticipantIDs: participants,
		CreatedAt:      s.clock.Now(),
		DeliveryTime:   req.DeliveryTime,
		OrderDeadline:  req.OrderDeadline,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"session_id":   session.ID,
		"creator_id":   session.CreatorID,
		"participants": len(session.ParticipantIDs),
	}).Info("session created")

	_ = s.dispatcher.Send(ctx, domain.NotifyInvitation, session,
		fmt.Sprintf("You've been invited to the meal session: %s", session.Name),
		nil, except(session.ParticipantIDs, session.CreatorID))

	return session, nil
}

// Edit applies the creator's changes and returns the change lines sent to the other
// participants.
func (s *SessionService) Edit(ctx context.Context, req EditSessionRequest) (*domain.MealSession, []string, error) {
	session, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if req.RequesterID != session.CreatorID {
		return nil, nil, ErrForbidden
	}
	if err := validateSessionFields(req.Name, req.OrderDeadline, req.DeliveryTime); err != nil {
		return nil, nil, err
	}
	restaurant, err := s.lookupRestaurant(ctx, req.RestaurantID)
	if err != nil {
		return nil, nil, err
	}
	participants, err := s.participantSet(ctx, session.CreatorID, req.ParticipantIDs, req.GroupIDs)
	if err != nil {
		return nil, nil, err
	}

	before := SnapshotSession(session)

	session.Name = strings.TrimSpace(req.Name)
	session.RestaurantID = restaurant.ID
	session.RestaurantName = restaurant.Name
	session.DeliveryTime = req.DeliveryTime
	session.OrderDeadline = req.OrderDeadline
	session.ParticipantIDs = participants

	if err := s.sessions.UpdateSession(ctx, session); err != nil {
		return nil, nil, err
	}

	changes := SessionChanges(before, SnapshotSession(session), s.loc)

	s.log.WithFields(logrus.Fields{
		"session_id": session.ID,
		"changes":    len(changes),
	}).Info("session updated")

	if len(changes) > 0 {
		_ = s.dispatcher.Send(ctx, domain.NotifySessionUpdate, session,
			fmt.Sprintf("Updates to the session: %s", session.Name),
			changes, except(session.ParticipantIDs, session.CreatorID))
	}

	return session, changes, nil
}

// Detail returns the session with every participant's orders. The creator is listed first.
func (s *SessionService) Detail(ctx context.Context, sessionID, viewerID int) (*domain.SessionDetail, error) {
	session, participants, orders, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summaries := ProcessParticipants(session, participants, orders, true)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].IsCreator && !summaries[j].IsCreator
	})

	return &domain.SessionDetail{
		Session:      *session,
		Participants: summaries,
		IsCreator:    viewerID == session.CreatorID,
		IsActive:     session.IsActive(s.clock.Now()),
	}, nil
}

func (s *SessionService) Summary(ctx context.Context, sessionID, requesterID int) (*domain.SessionSummary, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if requesterID != session.CreatorID {
		return nil, ErrForbidden
	}

	_, participants, orders, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	aggregated := AggregateOrderItems(orders)
	return &domain.SessionSummary{
		Session:           *session,
		ParticipantOrders: ProcessParticipants(session, participants, orders, false),
		AggregatedItems:   aggregated,
		TotalSessionSpent: sumAggregated(aggregated),
	}, nil
}

// ListForUser splits the user's sessions into active ones, soonest deadline first, and
// past ones, latest deadline first.
func (s *SessionService) ListForUser(ctx context.Context, userID int) (*domain.SessionList, error) {
	sessions, err := s.sessions.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	bySession := make(map[int]domain.Order, len(orders))
	for _, order := range orders {
		bySession[order.SessionID] = order
	}

	now := s.clock.Now()
	list := &domain.SessionList{
		Active:     []domain.UserSession{},
		Past:       []domain.UserSession{},
		TotalSpent: decimal.Zero,
	}
	for _, session := range sessions {
		entry := domain.UserSession{Session: session, UserExpense: decimal.Zero}
		if order, ok := bySession[session.ID]; ok {
			order := order
			entry.Order = &order
			entry.UserExpense = order.TotalPrice
		}
		list.TotalSpent = list.TotalSpent.Add(entry.UserExpense)

		if session.IsActive(now) {
			list.Active = append(list.Active, entry)
		} else {
			list.Past = append(list.Past, entry)
		}
	}

	sort.SliceStable(list.Active, func(i, j int) bool {
		return list.Active[i].Session.OrderDeadline.Before(list.Active[j].Session.OrderDeadline)
	})
	sort.SliceStable(list.Past, func(i, j int) bool {
		return list.Past[i].Session.OrderDeadline.After(list.Past[j].Session.OrderDeadline)
	})
	return list, nil
}

func (s *SessionService) InvitationQRCode(ctx context.Context, sessionID int) ([]byte, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(session.ID)
}

func (s *SessionService) load(ctx context.Context, sessionID int) (*domain.MealSession, []domain.User, []domain.Order, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	participants, err := s.users.GetUsers(ctx, session.ParticipantIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load participants: %w", err)
	}
	orders, err := s.orders.ListSessionOrders(ctx, session.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load orders: %w", err)
	}
	return session, participants, orders, nil
}

func (s *SessionService) lookupRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetRestaurant(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: restaurant %d does not exist", ErrValidation, id)
	}
	return restaurant, err
}

// participantSet returns the creator followed by the selected users and group members,
// without duplicates.
func (s *SessionService) participantSet(ctx context.Context, creatorID int, userIDs, groupIDs []int) ([]int, error) {
	ids := append([]int{creatorID}, userIDs...)
	if len(groupIDs) > 0 {
		members, err := s.users.GroupMemberIDs(ctx, groupIDs)
		if err != nil {
			return nil, fmt.Errorf("expand groups: %w", err)
		}
		ids = append(ids, members...)
	}

	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func validateSessionFields(name string, deadline, delivery time.Time) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if deadline.IsZero() {
		return fmt.Errorf("%w: order deadline is required", ErrValidation)
	}
	if delivery.IsZero() {
		return fmt.Errorf("%w: delivery time is required", ErrValidation)
	}
	return nil
}

var _ SessionServiceInterface = (*SessionService)(nil)
