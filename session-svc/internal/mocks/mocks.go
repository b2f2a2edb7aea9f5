// Package mocks holds testify mocks for the session-svc repository and port interfaces.
package mocks

import "github.com/stretchr/testify/mock"

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
