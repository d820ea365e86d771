package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the payment lifecycle. Registered on the default registry
// and exposed through the /metrics endpoint in cmd/api.
var (
	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_created_total",
		Help: "Number of payments successfully created",
	})

	WebhooksReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_webhooks_received_total",
		Help: "Number of gateway webhooks received",
	})

	WebhooksReplayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_webhooks_replayed_total",
		Help: "Number of webhooks short-circuited by the terminal-state gate",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_events_published_total",
		Help: "Number of lifecycle events published to Kafka",
	}, []string{"event_type"})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payment_event_publish_failures_total",
		Help: "Number of lifecycle event publish attempts that failed",
	})
)
