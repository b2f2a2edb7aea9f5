// Package mocks holds testify mocks for the notify-svc ports.
package mocks

import (
	"context"

	"meal-together/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func errAt(args mock.Arguments, i int) error {
	if args.Get(i) == nil {
		return nil
	}
	return args.Error(i)
}

type Mailer struct {
	mock.Mock
}

func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	register(&m.Mock, t)
	return m
}

func (m *Mailer) Send(ctx context.Context, email domain.Email) error {
	return errAt(m.Called(ctx, email), 0)
}

type DeliveryLog struct {
	mock.Mock
}

func NewDeliveryLog(t testingT) *DeliveryLog {
	m := &DeliveryLog{}
	register(&m.Mock, t)
	return m
}

func (m *DeliveryLog) Delivered(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), errAt(args, 1)
}

func (m *DeliveryLog) MarkDelivered(ctx context.Context, id string) error {
	return errAt(m.Called(ctx, id), 0)
}
