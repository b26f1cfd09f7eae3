package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docmap/internal/domain"
	"docmap/internal/port"
)

// MockExtractionSource is a mock implementation of port.ExtractionSource.
type MockExtractionSource struct {
	mock.Mock
}

func (m *MockExtractionSource) ValueFor(ctx context.Context, req port.FieldRequest) (port.Extracted, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(port.Extracted), args.Error(1)
}

func (m *MockExtractionSource) RowCount(ctx context.Context, partner domain.Partner) (int, error) {
	args := m.Called(ctx, partner)
	return args.Int(0), args.Error(1)
}
