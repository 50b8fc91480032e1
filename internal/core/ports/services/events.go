package services

import (
	"context"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
)

// EventPublisher delivers change notifications after a state change commits.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventHandler receives a published event.
type EventHandler func(ctx context.Context, event domain.Event)

// EventSubscriber registers handlers per topic. The returned func removes the handler.
type EventSubscriber interface {
	Subscribe(topic domain.EventTopic, handler EventHandler) func()
}

// EventBus is both ends of the notification service.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
