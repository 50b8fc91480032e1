package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/awqaf-platform/waqf_ledger/internal/platform/metrics"
)

// ErrHubClosed is returned by Publish after Close.
var ErrHubClosed = errors.New("event hub is closed")

// Hub is the in-process change notification service. Handlers run
// synchronously in subscription order on the publishing goroutine; a handler
// that panics is logged and skipped.
type Hub struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[domain.EventTopic]map[uint64]portssvc.EventHandler
	order    map[domain.EventTopic][]uint64
	closed   bool
}

func NewHub() *Hub {
	return &Hub{
		handlers: make(map[domain.EventTopic]map[uint64]portssvc.EventHandler),
		order:    make(map[domain.EventTopic][]uint64),
	}
}

var _ portssvc.EventBus = (*Hub)(nil)

// Subscribe registers handler for topic and returns a func that removes it.
// Calling the returned func more than once is harmless.
func (h *Hub) Subscribe(topic domain.EventTopic, handler portssvc.EventHandler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.handlers[topic] == nil {
		h.handlers[topic] = make(map[uint64]portssvc.EventHandler)
	}
	h.handlers[topic][id] = handler
	h.order[topic] = append(h.order[topic], id)

	var once sync.Once
	return func() {
		once.Do(func() { h.unsubscribe(topic, id) })
	}
}

func (h *Hub) unsubscribe(topic domain.EventTopic, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.handlers[topic], id)
	ids := h.order[topic]
	for i, v := range ids {
		if v == id {
			h.order[topic] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func (h *Hub) Publish(ctx context.Context, event domain.Event) error {
	h.mu.RLock()
	if h.closed {
		h.mu.RUnlock()
		return ErrHubClosed
	}
	ids := h.order[event.Topic]
	handlers := make([]portssvc.EventHandler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, h.handlers[event.Topic][id])
	}
	h.mu.RUnlock()

	for _, handler := range handlers {
		h.deliver(ctx, handler, event)
	}
	return nil
}

func (h *Hub) deliver(ctx context.Context, handler portssvc.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			metrics.EventHandlerPanics.WithLabelValues(string(event.Topic)).Inc()
			middleware.GetLoggerFromCtx(ctx).Error("Event handler panicked",
				slog.String("topic", string(event.Topic)),
				slog.String("entity_id", event.EntityID),
				slog.String("panic", fmt.Sprint(r)))
		}
	}()
	handler(ctx, event)
}

// Close drops every subscription; later publishes fail with ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	h.handlers = make(map[domain.EventTopic]map[uint64]portssvc.EventHandler)
	h.order = make(map[domain.EventTopic][]uint64)
}
