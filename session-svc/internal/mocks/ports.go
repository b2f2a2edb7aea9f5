package mocks

import (
	"context"

	"meal-together/session-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Notifier struct {
	mock.Mock
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	register(&m.Mock, t)
	return m
}

func (m *Notifier) Notify(ctx context.Context, n domain.Notification) error {
	return errAt(m.Called(ctx, n), 0)
}

type SweepLock struct {
	mock.Mock
}

func NewSweepLock(t testingT) *SweepLock {
	m := &SweepLock{}
	register(&m.Mock, t)
	return m
}

func (m *SweepLock) Acquire(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), errAt(args, 1)
}

func (m *SweepLock) Release(ctx context.Context) error {
	return errAt(m.Called(ctx), 0)
}

type QRGenerator struct {
	mock.Mock
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	register(&m.Mock, t)
	return m
}

func (m *QRGenerator) Generate(sessionID int) ([]byte, error) {
	args := m.Called(sessionID)
	png, _ := args.Get(0).([]byte)
	return png, errAt(args, 1)
}
