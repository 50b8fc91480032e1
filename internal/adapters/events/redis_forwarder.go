package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	portssvc "github.com/awqaf-platform/waqf_ledger/internal/core/ports/services"
	"github.com/awqaf-platform/waqf_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "waqf:"
	publishTimeout = 2 * time.Second
)

// ChannelFor returns the Redis channel carrying a topic.
func ChannelFor(topic domain.EventTopic) string {
	return channelPrefix + string(topic)
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// RedisForwarder republishes hub events as JSON on Redis pub/sub for the
// realtime layer. Delivery is best effort.
type RedisForwarder struct {
	rdb redis.UniversalClient
}

func NewRedisForwarder(rdb redis.UniversalClient) *RedisForwarder {
	return &RedisForwarder{rdb: rdb}
}

// Attach subscribes the forwarder to every core topic on bus and returns a
// func that detaches it.
func (f *RedisForwarder) Attach(bus portssvc.EventSubscriber) func() {
	topics := domain.AllTopics()
	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, bus.Subscribe(topic, f.forward))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func (f *RedisForwarder) forward(ctx context.Context, event domain.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to marshal event",
			slog.String("topic", string(event.Topic)), slog.String("error", err.Error()))
		return
	}
	// The request may already be finishing; the notification outlives it.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := f.rdb.Publish(pubCtx, ChannelFor(event.Topic), payload).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to forward event to redis",
			slog.String("topic", string(event.Topic)),
			slog.String("entity_id", event.EntityID),
			slog.String("error", err.Error()))
	}
}
