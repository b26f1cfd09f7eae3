package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docmap/internal/domain"
	"docmap/internal/port"
)

type reviewAuditRepo struct {
	db *sqlx.DB
}

// auditRow scans changes as raw bytes; the driver hands JSONB back as text.
type auditRow struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`
	Action    string    `db:"action"`
	Changes   []byte    `db:"changes"`
	CreatedAt time.Time `db:"created_at"`
}

// NewReviewAuditRepo creates a new PostgreSQL-backed ReviewAuditRepository.
func NewReviewAuditRepo(db *sqlx.DB) port.ReviewAuditRepository {
	return &reviewAuditRepo{db: db}
}

func (r *reviewAuditRepo) Create(ctx context.Context, entry *domain.ReviewAuditEntry) error {
	changes := entry.Changes
	if len(changes) == 0 {
		changes = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_audit_log (id, session_id, action, changes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.SessionID, entry.Action, []byte(changes), entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("reviewAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewAuditRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM review_audit_log WHERE session_id = $1`,
		sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewAuditRepo.ListBySession count: %w", err)
	}

	var rows []auditRow
	err = r.db.SelectContext(ctx, &rows,
		`SELECT id, session_id, action, changes, created_at FROM review_audit_log
		 WHERE session_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		sessionID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewAuditRepo.ListBySession: %w", err)
	}

	entries := make([]domain.ReviewAuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.ReviewAuditEntry{
			ID:        row.ID,
			SessionID: row.SessionID,
			Action:    row.Action,
			Changes:   json.RawMessage(row.Changes),
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, total, nil
}
