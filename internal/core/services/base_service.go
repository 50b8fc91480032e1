package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events portssvc.EventPublisher
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogWarn logs a rejected request that is not a server fault.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// Publish emits a change notification after a committed state change. A
// failure to notify never fails the operation that already committed.
func (s *BaseService) Publish(ctx context.Context, topic domain.EventTopic, entityID, actorID string, data map[string]any) {
	if s.Events == nil {
		return
	}
	evt := domain.Event{
		Topic:      topic,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
	if err := s.Events.Publish(ctx, evt); err != nil {
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("topic", string(topic)),
			slog.String("entity_id", entityID))
		return
	}
	metrics.EventsPublished.WithLabelValues(string(topic)).Inc()
}

// newAudit returns audit fields for a freshly created entity.
func newAudit(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithEventPublisher sets where change notifications go.
func WithEventPublisher(p portssvc.EventPublisher) Option {
	return func(s *BaseService) {
		s.Events = p
	}
}

func applyOptions(base *BaseService, opts []Option) {
	for _, opt := range opts {
		opt(base)
	}
}
