package mocks

import (
	"context"

	"meal-together/session-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t testingT) *OrderRepository {
	m := &OrderRepository{}
	register(&m.Mock, t)
	return m
}

func (m *OrderRepository) GetOrder(ctx context.Context, sessionID, userID int) (*domain.Order, error) {
	args := m.Called(ctx, sessionID, userID)
	order, _ := args.Get(0).(*domain.Order)
	return order, errAt(args, 1)
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return errAt(m.Called(ctx, order), 0)
}

func (m *OrderRepository) UpdateOrder(ctx context.Context, order *domain.Order, deletedItemIDs []int) error {
	return errAt(m.Called(ctx, order, deletedItemIDs), 0)
}

func (m *OrderRepository) DeleteOrder(ctx context.Context, orderID int) error {
	return errAt(m.Called(ctx, orderID), 0)
}

func (m *OrderRepository) ListSessionOrders(ctx context.Context, sessionID int) ([]domain.Order, error) {
	args := m.Called(ctx, sessionID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, errAt(args, 1)
}

func (m *OrderRepository) ListUserOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, errAt(args, 1)
}

func (m *OrderRepository) CreditOwedByUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error) {
	args := m.Called(ctx, userID)
	totals, _ := args.Get(0).([]domain.CounterpartyTotal)
	return totals, errAt(args, 1)
}

func (m *OrderRepository) CreditOwedToUser(ctx context.Context, userID int) ([]domain.CounterpartyTotal, error) {
	args := m.Called(ctx, userID)
	totals, _ := args.Get(0).([]domain.CounterpartyTotal)
	return totals, errAt(args, 1)
}
