package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docmap/internal/domain"
)

// audit appends an entry to the review audit trail. Failures are logged and
// never reach the caller.
func (s *workflowService) audit(ctx context.Context, sessionID uuid.UUID, action domain.AuditAction, changes map[string]interface{}) {
	if s.Audit == nil {
		return
	}
	if changes == nil {
		changes = map[string]interface{}{}
	}
	payload, err := json.Marshal(changes)
	if err != nil {
		s.logger.Warn("encoding audit entry failed", zap.String("action", string(action)), zap.Error(err))
		return
	}
	entry := &domain.ReviewAuditEntry{
		ID:        uuid.New(),
		SessionID: sessionID,
		Action:    string(action),
		Changes:   payload,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Audit.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("writing audit entry failed",
			zap.String("session_id", sessionID.String()),
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}
