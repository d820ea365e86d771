package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrMerchantNotFound is returned when no merchant matches the lookup.
	ErrMerchantNotFound = errors.New("merchant not found")
)

// Merchant represents a merchant account that owns payments and payment
// methods.
type Merchant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Merchant) TableName() string {
	return "merchants"
}

// BeforeCreate assigns a uuid primary key when none is set.
func (m *Merchant) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MerchantRepository defines the contract for merchant data access
type MerchantRepository interface {
	Create(merchant *Merchant) error
	FindByID(id uuid.UUID) (*Merchant, error)
	FindByEmail(email string) (*Merchant, error)
	FindAllActive() ([]Merchant, error)
}
