package mocks

import (
	"context"

	"github.com/dukex/crmflow/pkg/email"
	"github.com/stretchr/testify/mock"
)

// MockEmailTransport is a mock implementation of email.Transport interface.
type MockEmailTransport struct {
	mock.Mock
}

func (m *MockEmailTransport) Send(ctx context.Context, message email.Message) (email.Result, error) {
	args := m.Called(ctx, message)

	return args.Get(0).(email.Result), args.Error(1)
}
