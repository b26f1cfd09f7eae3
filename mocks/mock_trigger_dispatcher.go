package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docmap/internal/port"
)

// MockTriggerDispatcher is a mock implementation of port.TriggerDispatcher.
type MockTriggerDispatcher struct {
	mock.Mock
}

func (m *MockTriggerDispatcher) Dispatch(ctx context.Context, req port.TriggerRequest) (*port.TriggerReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.TriggerReceipt), args.Error(1)
}
