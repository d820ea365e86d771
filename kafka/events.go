package kafka

import "time"

// PaymentEvent is the lifecycle event published for every payment
// creation and status change. Field names follow the downstream wire
// contract, not the database schema.
type PaymentEvent struct {
	EventType        string                 `json:"eventType"`
	Timestamp        time.Time              `json:"timestamp"`
	PaymentID        string                 `json:"paymentId"`
	Reference        string                 `json:"reference"`
	Amount           float64                `json:"amount"`
	Currency         string                 `json:"currency"`
	Status           string                 `json:"status"`
	MerchantID       string                 `json:"merchantId"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	GatewayReference string                 `json:"gatewayReference,omitempty"`
	ErrorMessage     string                 `json:"errorMessage,omitempty"`
}

// Event types
const (
	EventPaymentInitiated = "payment-initiated"
	EventPaymentCompleted = "payment-completed"
	EventPaymentFailed    = "payment-failed"
)

// Kafka topics
const (
	TopicPaymentEvents = "payment-events"
)
