package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"docmap/internal/port"
)

// MockDocumentStorage is a mock implementation of port.DocumentStorage.
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, ref port.ObjectRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockDocumentStorage) PresignView(ctx context.Context, ref port.ObjectRef, fileName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, ref, fileName, expiry)
	return args.String(0), args.Error(1)
}
