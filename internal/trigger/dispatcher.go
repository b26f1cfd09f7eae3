package trigger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docmap/internal/domain"
	"docmap/internal/port"
	"docmap/internal/review"
)

// LogDispatcher records dispatches in the application log and hands out a
// tracking link. It stands in for a message bus publisher.
type LogDispatcher struct {
	trackingBaseURL string
	logger          *zap.Logger
}

var _ port.TriggerDispatcher = (*LogDispatcher)(nil)

// NewLogDispatcher creates a LogDispatcher.
func NewLogDispatcher(trackingBaseURL string, logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{
		trackingBaseURL: strings.TrimSuffix(trackingBaseURL, "/"),
		logger:          logger.Named("dispatch"),
	}
}

// Dispatch validates the routing config and logs the published action.
func (d *LogDispatcher) Dispatch(ctx context.Context, req port.TriggerRequest) (*port.TriggerReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateConfig(req.Config); err != nil {
		return nil, err
	}
	summary := review.Summarize(req.Output)
	d.logger.Info("action published",
		zap.String("trigger_id", req.ID.String()),
		zap.String("session_id", req.SessionID.String()),
		zap.String("action", req.ActionName),
		zap.String("environment", string(req.Config.Environment)),
		zap.String("exchange", req.Config.ExchangeName),
		zap.String("routing_key", req.Config.RoutingKey),
		zap.String("partner", req.Partner.Name),
		zap.String("rule_set_id", req.RuleSetID),
		zap.Int("fields", summary.Total),
		zap.Int("needs_review", summary.NeedsReview))

	return &port.TriggerReceipt{TrackingLink: d.TrackingLink(req)}, nil
}

// TrackingLink builds the tracking URL of a dispatched action.
func (d *LogDispatcher) TrackingLink(req port.TriggerRequest) string {
	return fmt.Sprintf("%s/%s/%s/%s", d.trackingBaseURL,
		strings.ToLower(string(req.Config.Environment)), req.ActionName, req.ID)
}

// ValidateConfig requires a known environment and non-blank routing fields.
func ValidateConfig(cfg domain.TriggerConfig) error {
	if !domain.ValidTriggerEnvironments[cfg.Environment] {
		return fmt.Errorf("environment %q: %w", cfg.Environment, domain.ErrInvalidTrigger)
	}
	if strings.TrimSpace(cfg.ExchangeName) == "" {
		return fmt.Errorf("exchange_name is required: %w", domain.ErrInvalidTrigger)
	}
	if strings.TrimSpace(cfg.RoutingKey) == "" {
		return fmt.Errorf("routing_key is required: %w", domain.ErrInvalidTrigger)
	}
	return nil
}
