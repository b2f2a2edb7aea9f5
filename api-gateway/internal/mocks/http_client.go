package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

type HTTPClient struct {
	mock.Mock
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func NewHTTPClient(t testingT) *HTTPClient {
	m := &HTTPClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	if args.Get(1) == nil {
		return resp, nil
	}
	return resp, args.Error(1)
}
