package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/fandressouza/indicacoes/domain"
)

// ZapAuditLogger implements domain.AuditLogger by writing one structured log line per event
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger names the logger "audit"
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger. Failed events are logged at warn level.
func (a *ZapAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.ListingID != "" {
		fields = append(fields, zap.String("listing_id", event.ListingID))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}

	if event.Success {
		a.logger.Info("audit event", fields...)
		return
	}
	a.logger.Warn("audit event", fields...)
}
