// Package mocks provides testify mocks for the domain package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitsync.dev/pkg/gitsync/internal/domain"
)

// MockWorkflow is a mock implementation of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow whose expectations are asserted when the test ends.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mockWorkflow := &MockWorkflow{}
	mockWorkflow.Test(t)

	t.Cleanup(func() { mockWorkflow.AssertExpectations(t) })

	return mockWorkflow
}

// Status provides a mock function.
func (_m *MockWorkflow) Status(ctx context.Context, args domain.StatusArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

// View provides a mock function.
func (_m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := _m.Called(ctx, args)
	return ret.Error(0)
}

var _ domain.Workflow = (*MockWorkflow)(nil)
