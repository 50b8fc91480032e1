package events

import (
	"context"
	"testing"

	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posted(id string) domain.Event {
	return domain.Event{Topic: domain.TopicJournalPosted, EntityID: id, ActorID: "user-1"}
}

func TestHubDeliversInSubscriptionOrder(t *testing.T) {
	hub := NewHub()
	var got []string
	hub.Subscribe(domain.TopicJournalPosted, func(_ context.Context, e domain.Event) { got = append(got, "a:"+e.EntityID) })
	hub.Subscribe(domain.TopicJournalPosted, func(_ context.Context, e domain.Event) { got = append(got, "b:"+e.EntityID) })
	hub.Subscribe(domain.TopicFiscalYearClosed, func(_ context.Context, e domain.Event) { got = append(got, "other") })

	require.NoError(t, hub.Publish(context.Background(), posted("je-1")))
	assert.Equal(t, []string{"a:je-1", "b:je-1"}, got)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	calls := 0
	unsub := hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) { calls++ })

	require.NoError(t, hub.Publish(context.Background(), posted("je-1")))
	unsub()
	unsub()
	require.NoError(t, hub.Publish(context.Background(), posted("je-2")))

	assert.Equal(t, 1, calls)
}

func TestHubIsolatesPanickingHandler(t *testing.T) {
	hub := NewHub()
	delivered := false
	hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) { panic("boom") })
	hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) { delivered = true })

	assert.NotPanics(t, func() {
		require.NoError(t, hub.Publish(context.Background(), posted("je-1")))
	})
	assert.True(t, delivered)
}

func TestHubClosed(t *testing.T) {
	hub := NewHub()
	calls := 0
	hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) { calls++ })
	hub.Close()

	err := hub.Publish(context.Background(), posted("je-1"))
	assert.ErrorIs(t, err, ErrHubClosed)
	assert.Zero(t, calls)
}

func TestHubHandlerMaySubscribeDuringPublish(t *testing.T) {
	hub := NewHub()
	hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) {
		hub.Subscribe(domain.TopicJournalPosted, func(context.Context, domain.Event) {})
	})
	assert.NotPanics(t, func() {
		require.NoError(t, hub.Publish(context.Background(), posted("je-1")))
	})
}
