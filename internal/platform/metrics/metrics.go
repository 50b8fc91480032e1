package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "waqf_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	RateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_rate_limit_exceeded_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)

	// JournalEntriesPosted counts posted entries, including reversals.
	JournalEntriesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waqf_journal_entries_posted_total",
			Help: "Total number of journal entries posted",
		},
	)

	JournalRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_journal_rejections_total",
			Help: "Journal entries rejected by validation, by error code",
		},
		[]string{"code"},
	)

	FiscalYearTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_fiscal_year_transitions_total",
			Help: "Fiscal year lifecycle transitions",
		},
		[]string{"to"},
	)

	CloseConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waqf_fiscal_year_close_conflicts_total",
			Help: "Close attempts lost to a concurrent ledger change",
		},
	)

	DistributionsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_distributions_computed_total",
			Help: "Distribution computations by outcome",
		},
		[]string{"outcome"},
	)

	ApprovalDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_approval_decisions_total",
			Help: "Approval decisions by role and decision",
		},
		[]string{"role", "decision"},
	)

	Reconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_bank_reconciliations_total",
			Help: "Statement reconciliation attempts by result",
		},
		[]string{"result"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_events_published_total",
			Help: "Change notifications published by topic",
		},
		[]string{"topic"},
	)

	EventHandlerPanics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waqf_event_handler_panics_total",
			Help: "Subscriber handlers that panicked",
		},
		[]string{"topic"},
	)
)
