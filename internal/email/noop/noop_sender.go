package noop

import (
	"context"

	"go.uber.org/zap"

	"docmap/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs what it would have sent.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	return &noopSender{logger: logger.Named("email.noop")}
}

func (s *noopSender) SendExport(_ context.Context, msg port.ExportEmail) error {
	names := make([]string, 0, len(msg.Attachments))
	size := 0
	for _, a := range msg.Attachments {
		names = append(names, a.FileName)
		size += len(a.Data)
	}
	s.logger.Info("export email suppressed",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Strings("attachments", names),
		zap.Int("bytes", size))
	return nil
}
