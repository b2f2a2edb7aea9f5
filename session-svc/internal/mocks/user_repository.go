package mocks

import (
	"context"

	"meal-together/session-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return errAt(m.Called(ctx, user), 0)
}

func (m *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.User)
	return users, errAt(args, 1)
}

func (m *UserRepository) GetUsers(ctx context.Context, ids []int) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]domain.User)
	return users, errAt(args, 1)
}

func (m *UserRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	return errAt(m.Called(ctx, group), 0)
}

func (m *UserRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]domain.Group)
	return groups, errAt(args, 1)
}

func (m *UserRepository) GroupMemberIDs(ctx context.Context, groupIDs []int) ([]int, error) {
	args := m.Called(ctx, groupIDs)
	ids, _ := args.Get(0).([]int)
	return ids, errAt(args, 1)
}
