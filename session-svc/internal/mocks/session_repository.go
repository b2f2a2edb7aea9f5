package mocks

import (
	"context"
	"time"

	"meal-together/session-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SessionRepository struct {
	mock.Mock
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	register(&m.Mock, t)
	return m
}

func (m *SessionRepository) CreateSession(ctx context.Context, session *domain.MealSession) error {
	return errAt(m.Called(ctx, session), 0)
}

func (m *SessionRepository) GetSession(ctx context.Context, id int) (*domain.MealSession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*domain.MealSession)
	return session, errAt(args, 1)
}

func (m *SessionRepository) UpdateSession(ctx context.Context, session *domain.MealSession) error {
	return errAt(m.Called(ctx, session), 0)
}

func (m *SessionRepository) ListUserSessions(ctx context.Context, userID int) ([]domain.MealSession, error) {
	args := m.Called(ctx, userID)
	sessions, _ := args.Get(0).([]domain.MealSession)
	return sessions, errAt(args, 1)
}

func (m *SessionRepository) ListDueSessions(ctx context.Context, now time.Time) ([]domain.MealSession, error) {
	args := m.Called(ctx, now)
	sessions, _ := args.Get(0).([]domain.MealSession)
	return sessions, errAt(args, 1)
}

func (m *SessionRepository) ClaimDeadlineNotice(ctx context.Context, sessionID int) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), errAt(args, 1)
}

func (m *SessionRepository) ReleaseDeadlineNotice(ctx context.Context, sessionID int) error {
	return errAt(m.Called(ctx, sessionID), 0)
}
