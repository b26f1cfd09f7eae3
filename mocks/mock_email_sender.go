package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docmap/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExport(ctx context.Context, msg port.ExportEmail) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
