package mocks

import (
	"context"

	"meal-together/session-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type RestaurantRepository struct {
	mock.Mock
}

func NewRestaurantRepository(t testingT) *RestaurantRepository {
	m := &RestaurantRepository{}
	register(&m.Mock, t)
	return m
}

func (m *RestaurantRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return errAt(m.Called(ctx, rest), 0)
}

func (m *RestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	args := m.Called(ctx)
	rests, _ := args.Get(0).([]domain.Restaurant)
	return rests, errAt(args, 1)
}

func (m *RestaurantRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	args := m.Called(ctx, id)
	rest, _ := args.Get(0).(*domain.Restaurant)
	return rest, errAt(args, 1)
}

func (m *RestaurantRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	rows, _ := args.Get(0).(int64)
	return rows, errAt(args, 1)
}

func (m *RestaurantRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return errAt(m.Called(ctx, item), 0)
}

func (m *RestaurantRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	items, _ := args.Get(0).([]domain.MenuItem)
	return items, errAt(args, 1)
}
