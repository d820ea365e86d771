package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment statuses. COMPLETED and FAILED are terminal: once reached, no
// webhook may mutate the payment again. REFUNDED is terminal too but is
// only reachable out-of-band, never through the webhook surface.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusProcessing PaymentStatus = "PROCESSING"
	StatusCompleted  PaymentStatus = "COMPLETED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusRefunded   PaymentStatus = "REFUNDED"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Terminal reports whether s blocks further webhook transitions.
func (s PaymentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var (
	// ErrPaymentNotFound is returned when no payment matches the reference.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrForbidden is returned when a payment exists but belongs to a
	// different merchant than the caller.
	ErrForbidden = errors.New("payment belongs to a different merchant")
	// ErrValidation wraps input validation failures.
	ErrValidation = errors.New("validation error")
)

// Payment represents the payment entity
type Payment struct {
	ID                  uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Reference           string            `json:"reference" gorm:"uniqueIndex;not null"`
	Amount              float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency            string            `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Status              PaymentStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Metadata            datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	GatewayReference    string            `json:"gatewayReference,omitempty"`
	GatewayResponseCode string            `json:"gatewayResponseCode,omitempty"`
	ErrorMessage        string            `json:"errorMessage,omitempty"`
	IPAddress           string            `json:"-"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
	CompletedAt         *time.Time        `json:"completedAt,omitempty"`
	MerchantID          uuid.UUID         `json:"merchantId" gorm:"type:uuid;not null;index"`
	PaymentMethodID     uuid.UUID         `json:"paymentMethodId" gorm:"type:uuid;not null"`
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate assigns a uuid primary key when none is set.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the payment is in a terminal state.
func (p *Payment) Terminal() bool {
	return p.Status.Terminal()
}

// GatewayUpdate carries the gateway-supplied fields of a status webhook.
type GatewayUpdate struct {
	Status              PaymentStatus
	GatewayReference    string
	GatewayResponseCode string
	ErrorMessage        string
	Metadata            map[string]interface{}
}

// ApplyGatewayUpdate mutates the payment with the webhook payload and
// reports whether the update was applied. Terminal payments are left
// untouched (the idempotency gate). Gateway fields are overwritten
// unconditionally, last webhook wins; metadata is merged per key. The
// completion timestamp is set only on the transition into COMPLETED,
// which the gate guarantees happens at most once.
func (p *Payment) ApplyGatewayUpdate(update GatewayUpdate, now time.Time) bool {
	if p.Terminal() {
		return false
	}

	p.Status = update.Status
	p.GatewayReference = update.GatewayReference
	p.GatewayResponseCode = update.GatewayResponseCode
	p.ErrorMessage = update.ErrorMessage
	p.Metadata = MergeMetadata(p.Metadata, update.Metadata)

	if p.Status == StatusCompleted {
		p.CompletedAt = &now
	}

	return true
}

// MergeMetadata merges patch into base with last-writer-wins per key.
// Keys absent from patch survive untouched. The base map is not mutated.
func MergeMetadata(base datatypes.JSONMap, patch map[string]interface{}) datatypes.JSONMap {
	if len(base) == 0 && len(patch) == 0 {
		return base
	}

	merged := make(datatypes.JSONMap, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(payment *Payment) error
	FindByReference(reference string) (*Payment, error)
	// FindByMerchant returns the merchant's payments newest first together
	// with the total count matching the predicate.
	FindByMerchant(merchantID uuid.UUID, limit, offset int) ([]Payment, int64, error)
	// ApplyGatewayUpdate runs the idempotency-gated update under a row
	// lock so concurrent webhooks for one reference serialize. It returns
	// the resulting payment and whether a transition was applied.
	ApplyGatewayUpdate(reference string, update GatewayUpdate) (*Payment, bool, error)
}
