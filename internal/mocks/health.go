package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/nordsym/guldkant/internal/ports"
)

// MockHealthRegistry is a mock implementation of ports.HealthRegistry.
type MockHealthRegistry struct {
	mock.Mock
}

var _ ports.HealthRegistry = (*MockHealthRegistry)(nil)

// NewMockHealthRegistry creates a new registry mock that asserts its
// expectations on test cleanup.
func NewMockHealthRegistry(t *testing.T) *MockHealthRegistry {
	m := &MockHealthRegistry{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHealthRegistry) Register(checker ports.HealthChecker) error {
	args := m.Called(checker)

	return args.Error(0)
}

func (m *MockHealthRegistry) CheckAll(ctx context.Context) *ports.HealthResult {
	args := m.Called(ctx)

	result, _ := args.Get(0).(*ports.HealthResult)

	return result
}

// EXPECT returns an expecter for arranging calls with a fluent syntax.
func (m *MockHealthRegistry) EXPECT() *MockHealthRegistryExpecter {
	return &MockHealthRegistryExpecter{mock: &m.Mock}
}

// MockHealthRegistryExpecter provides typed expectation helpers.
type MockHealthRegistryExpecter struct {
	mock *mock.Mock
}

func (e *MockHealthRegistryExpecter) Register(checker any) *mock.Call {
	return e.mock.On("Register", checker)
}

func (e *MockHealthRegistryExpecter) CheckAll(ctx any) *mock.Call {
	return e.mock.On("CheckAll", ctx)
}
