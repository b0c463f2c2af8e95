// Package mocks provides testify mocks for the controller package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitsync.dev/pkg/gitsync/internal/controller"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI whose expectations are asserted when the test ends.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

// DisplayReport provides a mock function.
func (_m *MockUI) DisplayReport(ctx context.Context, report m.Report, options ...controller.DisplayOption) error {
	ret := _m.Called(ctx, report, options)

	if fn, ok := ret.Get(0).(func(context.Context, m.Report, ...controller.DisplayOption) error); ok {
		return fn(ctx, report, options...)
	}

	return ret.Error(0)
}

var _ controller.UI = (*MockUI)(nil)
