package service

import (
	"context"
	"time"

	"meal-together/session-svc/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUsers(ctx context.Context, ids []int) ([]domain.User, error)
	CreateGroup(ctx context.Context, group *domain.Group) error
	ListGroups(ctx context.Context) ([]domain.Group, error)
	GroupMemberIDs(ctx context.Context, groupIDs []int) ([]int, error)
}

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.MealSession) error
	GetSession(ctx context.Context, id int) (*domain.MealSession, error)
	UpdateSession(ctx context.Context, session *domain.MealSession) error
	ListUserSessions(ctx context.Context, userID int) ([]domain.MealSession, error)
	ListDueSessions(ctx context.Context, now time.Time) ([]domain.MealSession, error)
	ClaimDeadlineNotice(ctx context.Context, sessionID int) (bool, error)
	ReleaseDeadlineNotice(ctx context.Context, sessionID int) error
}

type OrderRepository interface {
	GetOrder(ctx context.Context, sessionID, userID int) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	UpdateOrder(ctx context.Context, order *domain.Order, deletedItemIDs []int) error
	DeleteOrder(ctx context.Context, orderID int) error
	ListSessionOrders(ctx context.Context, sessionID int) ([]domain.Order, error)
	ListUserOrders(ctx context.Context, userID int) ([]domain.Order, error)
	CreditOwedByUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error)
	CreditOwedToUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error)
}

// Notifier hands a notification to the outbound queue.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// SweepLock keeps overlapping deadline sweeps from running at the same time.
type SweepLock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type UserServiceInterface interface {
	Register(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	CreateGroup(ctx context.Context, group *domain.Group) error
	ListGroups(ctx context.Context) ([]domain.Group, error)
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.RestaurantDetail, error)
	Delete(ctx context.Context, id, requesterID int) error
	AddMenuItem(ctx context.Context, item *domain.MenuItem, requesterID int) error
	Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error)
}

type SessionServiceInterface interface {
	Create(ctx context.Context, req CreateSessionRequest) (*domain.MealSession, error)
	Edit(ctx context.Context, req EditSessionRequest) (*domain.MealSession, []string, error)
	Detail(ctx context.Context, sessionID, viewerID int) (*domain.SessionDetail, error)
	Summary(ctx context.Context, sessionID, requesterID int) (*domain.SessionSummary, error)
	ListForUser(ctx context.Context, userID int) (*domain.SessionList, error)
	InvitationQRCode(ctx context.Context, sessionID int) ([]byte, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error)
	Edit(ctx context.Context, req EditOrderRequest) (*domain.Order, []string, error)
	Cancel(ctx context.Context, sessionID, ownerID, requesterID int) error
}

type BalanceServiceInterface interface {
	Report(ctx context.Context, userID int) (*domain.BalanceReport, error)
}
