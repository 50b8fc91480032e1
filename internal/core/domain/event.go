package domain

import "time"

// EventTopic names a change notification stream.
type EventTopic string

const (
	TopicJournalPosted           EventTopic = "journal.posted"
	TopicJournalCancelled        EventTopic = "journal.cancelled"
	TopicFiscalYearClosed        EventTopic = "fiscal_year.closed"
	TopicFiscalYearPublished     EventTopic = "fiscal_year.published"
	TopicDistributionComputed    EventTopic = "distribution.computed"
	TopicDistributionDecided     EventTopic = "distribution.decided"
	TopicBankStatementReconciled EventTopic = "bank_statement.reconciled"
)

// AllTopics lists every topic published by the core.
func AllTopics() []EventTopic {
	return []EventTopic{
		TopicJournalPosted,
		TopicJournalCancelled,
		TopicFiscalYearClosed,
		TopicFiscalYearPublished,
		TopicDistributionComputed,
		TopicDistributionDecided,
		TopicBankStatementReconciled,
	}
}

// Event is a change notification emitted after a committed state change.
type Event struct {
	Topic      EventTopic     `json:"topic"`
	EntityID   string         `json:"entityID"`
	ActorID    string         `json:"actorID"`
	OccurredAt time.Time      `json:"occurredAt"`
	Data       map[string]any `json:"data,omitempty"`
}
