package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"meal-together/session-svc/internal/domain"
)

const DefaultCurrency = "PLN"

var phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)

type RestaurantService struct {
	repo RestaurantRepository
}

func NewRestaurantService(repo RestaurantRepository) *RestaurantService {
	return &RestaurantService{repo: repo}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !phonePattern.MatchString(rest.PhoneNumber) {
		return fmt.Errorf("%w: phone number must have 7 to 15 digits with an optional leading +", ErrValidation)
	}
	for i := range rest.Tags {
		rest.Tags[i].Name = strings.TrimSpace(rest.Tags[i].Name)
	}
	return s.repo.CreateRestaurant(ctx, rest)
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

// Get returns the restaurant with its menu grouped by item type.
func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.RestaurantDetail, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListMenuItems(ctx, id)
	if err != nil {
		return nil, err
	}

	menu := make(map[string][]domain.MenuItem)
	for _, item := range items {
		menu[item.ItemType] = append(menu[item.ItemType], item)
	}
	return &domain.RestaurantDetail{Restaurant: *rest, Menu: menu}, nil
}

// owned loads the restaurant and checks that requesterID owns it. Restaurants without an
// owner cannot be managed through the API.
func (s *RestaurantService) owned(ctx context.Context, id, requesterID int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	if rest.OwnerID == 0 || rest.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return rest, nil
}

func (s *RestaurantService) Delete(ctx context.Context, id, requesterID int) error {
	if _, err := s.owned(ctx, id, requesterID); err != nil {
		return err
	}
	rows, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RestaurantService) AddMenuItem(ctx context.Context, item *domain.MenuItem, requesterID int) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if item.Currency == "" {
		item.Currency = DefaultCurrency
	}
	if _, err := s.owned(ctx, item.RestaurantID, requesterID); err != nil {
		return err
	}
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *RestaurantService) Menu(ctx context.Context, restaurantID int) ([]domain.MenuItem, error) {
	if _, err := s.repo.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.repo.ListMenuItems(ctx, restaurantID)
}

var _ RestaurantServiceInterface = (*RestaurantService)(nil)
