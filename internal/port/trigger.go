package port

import (
	"context"

	"github.com/google/uuid"

	"docmap/internal/domain"
)

// TriggerRequest carries a finalized output snapshot to a downstream action.
type TriggerRequest struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	ActionName string
	Config     domain.TriggerConfig
	Partner    domain.Partner
	RuleSetID  string
	Output     domain.ParsedOutput
}

// TriggerReceipt is returned by a dispatcher once the action was accepted.
type TriggerReceipt struct {
	TrackingLink string
}

// TriggerDispatcher publishes an action to the message bus.
type TriggerDispatcher interface {
	Dispatch(ctx context.Context, req TriggerRequest) (*TriggerReceipt, error)
}
