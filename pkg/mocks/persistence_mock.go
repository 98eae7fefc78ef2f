package mocks

import (
	"context"

	"github.com/dukex/crmflow/pkg/crm"
	"github.com/dukex/crmflow/pkg/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of persistence.Store interface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Begin(ctx context.Context) (persistence.UnitOfWork, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(persistence.UnitOfWork), args.Error(1)
}

func (m *MockStore) Notifications() persistence.NotificationStore {
	args := m.Called()

	return args.Get(0).(persistence.NotificationStore)
}

func (m *MockStore) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockUnitOfWork is a mock implementation of persistence.UnitOfWork interface.
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Tasks() persistence.Repository[*crm.Task] {
	args := m.Called()

	return args.Get(0).(persistence.Repository[*crm.Task])
}

func (m *MockUnitOfWork) Leads() persistence.Repository[*crm.Lead] {
	args := m.Called()

	return args.Get(0).(persistence.Repository[*crm.Lead])
}

func (m *MockUnitOfWork) Contacts() persistence.Repository[*crm.Contact] {
	args := m.Called()

	return args.Get(0).(persistence.Repository[*crm.Contact])
}

func (m *MockUnitOfWork) CurrentTenant() (uuid.UUID, bool) {
	args := m.Called()

	return args.Get(0).(uuid.UUID), args.Bool(1)
}

func (m *MockUnitOfWork) SaveChanges(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockRepository is a mock implementation of persistence.Repository interface.
type MockRepository[T any] struct {
	mock.Mock
}

func (m *MockRepository[T]) Add(ctx context.Context, entity T) error {
	args := m.Called(ctx, entity)

	return args.Error(0)
}

func (m *MockRepository[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	args := m.Called(ctx, id)

	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}

	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Update(ctx context.Context, entity T) error {
	args := m.Called(ctx, entity)

	return args.Error(0)
}

// MockNotificationStore is a mock implementation of persistence.NotificationStore interface.
type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Create(ctx context.Context, notification *crm.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationStore) Update(ctx context.Context, notification *crm.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}
