package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentMethodType enumerates supported payment method kinds.
type PaymentMethodType string

const (
	MethodCreditCard    PaymentMethodType = "credit_card"
	MethodDebitCard     PaymentMethodType = "debit_card"
	MethodBankTransfer  PaymentMethodType = "bank_transfer"
	MethodDigitalWallet PaymentMethodType = "digital_wallet"
)

// ErrPaymentMethodNotFound is returned when a payment method does not
// exist for the merchant. Cross-tenant ids resolve to this same error so
// callers cannot probe other merchants' methods.
var ErrPaymentMethodNotFound = errors.New("payment method not found for this merchant")

// PaymentMethod is a named gateway configuration scoped to one merchant.
type PaymentMethod struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Type          PaymentMethodType `json:"type" gorm:"type:varchar(20);not null;default:'credit_card'"`
	Name          string            `json:"name" gorm:"type:varchar(100);not null"`
	Active        bool              `json:"active" gorm:"default:true"`
	Configuration datatypes.JSONMap `json:"configuration" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	MerchantID    uuid.UUID         `json:"merchantId" gorm:"type:uuid;not null;index"`
}

// TableName specifies the table name
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// BeforeCreate assigns a uuid primary key when none is set.
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// sensitiveConfigKeys are masked before a configuration leaves the API.
var sensitiveConfigKeys = []string{"cardNumber", "accountNumber", "routingNumber"}

// MaskedConfiguration returns a copy of the configuration with sensitive
// values obfuscated down to their last four characters. The stored
// configuration is never mutated; masking is a display-time transform.
func (m *PaymentMethod) MaskedConfiguration() datatypes.JSONMap {
	if m.Configuration == nil {
		return nil
	}

	masked := make(datatypes.JSONMap, len(m.Configuration))
	for k, v := range m.Configuration {
		masked[k] = v
	}

	for _, key := range sensitiveConfigKeys {
		if value, ok := masked[key].(string); ok {
			masked[key] = maskValue(value)
		}
	}

	return masked
}

// maskValue replaces all but the last four characters with '*'. Values of
// four characters or fewer pass through unchanged.
func maskValue(value string) string {
	if len(value) <= 4 {
		return value
	}

	runes := []rune(value)
	for i := 0; i < len(runes)-4; i++ {
		runes[i] = '*'
	}
	return string(runes)
}

// PaymentMethodRepository defines the contract for payment method data access
type PaymentMethodRepository interface {
	Create(method *PaymentMethod) error
	// FindByIDForMerchant resolves a method only when it belongs to the
	// merchant; cross-tenant lookups return ErrPaymentMethodNotFound.
	FindByIDForMerchant(id, merchantID uuid.UUID) (*PaymentMethod, error)
	FindByMerchant(merchantID uuid.UUID) ([]PaymentMethod, error)
}
