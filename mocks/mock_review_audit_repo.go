package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docmap/internal/domain"
)

// MockReviewAuditRepo is a mock implementation of port.ReviewAuditRepository.
type MockReviewAuditRepo struct {
	mock.Mock
}

func (m *MockReviewAuditRepo) Create(ctx context.Context, entry *domain.ReviewAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReviewAuditRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error) {
	args := m.Called(ctx, sessionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReviewAuditEntry), args.Int(1), args.Error(2)
}
