package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"meal-together/session-svc/internal/domain"
)

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Register(ctx context.Context, user *domain.User) error {
	user.Username = strings.TrimSpace(user.Username)
	if user.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if user.Email != "" {
		if _, err := mail.ParseAddress(user.Email); err != nil {
			return fmt.Errorf("%w: invalid e-mail address", ErrValidation)
		}
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) CreateGroup(ctx context.Context, group *domain.Group) error {
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" {
		return fmt.Errorf("%w: group name is required", ErrValidation)
	}
	return s.repo.CreateGroup(ctx, group)
}

func (s *UserService) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.repo.ListGroups(ctx)
}

var _ UserServiceInterface = (*UserService)(nil)
