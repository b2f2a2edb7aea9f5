package mocks

import (
	"context"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) Register(ctx context.Context, user *domain.User) error {
	return errAt(m.Called(ctx, user), 0)
}

func (m *UserService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, errAt(args, 1)
}

func (m *UserService) CreateGroup(ctx context.Context, group *domain.Group) error {
	return errAt(m.Called(ctx, group), 0)
}

func (m *UserService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]domain.Group)
	return groups, errAt(args, 1)
}

type RestaurantService struct {
	mock.Mock
}

func NewRestaurantService(t testingT) *RestaurantService {
	m := &RestaurantService{}
	register(&m.Mock, t)
	return m
}

func (m *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	return errAt(m.Called(ctx, rest), 0)
}

func (m *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	restaurants, _ := args.Get(0).([]domain.Restaurant)
	return restaurants, errAt(args, 1)
}

func (m *RestaurantService) Get(ctx context.Context, id int) (*domain.RestaurantDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*domain.RestaurantDetail)
	return detail, errAt(args, 1)
}

func (m *RestaurantService) Delete(ctx context.Context, id, requesterID int) error {
	return errAt(m.Called(ctx, id, requesterID), 0)
}

func (m *RestaurantService) AddMenuItem(ctx context.Context, item *domain.MenuItem, requesterID int) error {
	return errAt(m.Called(ctx, item, requesterID), 0)
}

func (m *RestaurantService) Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]domain.MenuItem)
	return items, errAt(args, 1)
}

type SessionService struct {
	mock.Mock
}

func NewSessionService(t testingT) *SessionService {
	m := &SessionService{}
	register(&m.Mock, t)
	return m
}

func (m *SessionService) Create(ctx context.Context, req service.CreateSessionRequest) (*domain.MealSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*domain.MealSession)
	return session, errAt(args, 1)
}

func (m *SessionService) Edit(ctx context.Context, req service.EditSessionRequest) (*domain.MealSession, []string, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*domain.MealSession)
	changes, _ := args.Get(1).([]string)
	return session, changes, errAt(args, 2)
}

func (m *SessionService) Detail(ctx context.Context, sessionID, viewerID int) (*domain.SessionDetail, error) {
	args := m.Called(ctx, sessionID, viewerID)
	detail, _ := args.Get(0).(*domain.SessionDetail)
	return detail, errAt(args, 1)
}

func (m *SessionService) Summary(ctx context.Context, sessionID, requesterID int) (*domain.SessionSummary, error) {
	args := m.Called(ctx, sessionID, requesterID)
	summary, _ := args.Get(0).(*domain.SessionSummary)
	return summary, errAt(args, 1)
}

func (m *SessionService) ListForUser(ctx context.Context, userID int) (*domain.SessionList, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).(*domain.SessionList)
	return list, errAt(args, 1)
}

func (m *SessionService) InvitationQRCode(ctx context.Context, sessionID int) ([]byte, error) {
	args := m.Called(ctx, sessionID)
	png, _ := args.Get(0).([]byte)
	return png, errAt(args, 1)
}

type OrderService struct {
	mock.Mock
}

func NewOrderService(t testingT) *OrderService {
	m := &OrderService{}
	register(&m.Mock, t)
	return m
}

func (m *OrderService) Create(ctx context.Context, req service.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*domain.Order)
	return order, errAt(args, 1)
}

func (m *OrderService) Edit(ctx context.Context, req service.EditOrderRequest) (*domain.Order, []string, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*domain.Order)
	changes, _ := args.Get(1).([]string)
	return order, changes, errAt(args, 2)
}

func (m *OrderService) Cancel(ctx context.Context, sessionID, ownerID, requesterID int) error {
	return errAt(m.Called(ctx, sessionID, ownerID, requesterID), 0)
}

type BalanceService struct {
	mock.Mock
}

func NewBalanceService(t testingT) *BalanceService {
	m := &BalanceService{}
	register(&m.Mock, t)
	return m
}

func (m *BalanceService) Report(ctx context.Context, userID int) (*domain.BalanceReport, error) {
	args := m.Called(ctx, userID)
	report, _ := args.Get(0).(*domain.BalanceReport)
	return report, errAt(args, 1)
}

var (
	_ service.UserServiceInterface       = (*UserService)(nil)
	_ service.RestaurantServiceInterface = (*RestaurantService)(nil)
	_ service.SessionServiceInterface    = (*SessionService)(nil)
	_ service.OrderServiceInterface      = (*OrderService)(nil)
	_ service.BalanceServiceInterface    = (*BalanceService)(nil)
)
