package port

import (
	"context"

	"github.com/google/uuid"

	"docmap/internal/domain"
)

// ReviewAuditRepository defines the contract for review audit trail persistence.
type ReviewAuditRepository interface {
	Create(ctx context.Context, entry *domain.ReviewAuditEntry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error)
}
