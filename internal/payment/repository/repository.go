package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Payment{})
}

func (r *GormPaymentRepository) Create(payment *domain.Payment) error {
	return r.db.Create(payment).Error
}

func (r *GormPaymentRepository) FindByReference(reference string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.Where("reference = ?", reference).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindByMerchant(merchantID uuid.UUID, limit, offset int) ([]domain.Payment, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Payment{}).
		Where("merchant_id = ?", merchantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ApplyGatewayUpdate locks the payment row for the duration of the
// read-modify-write so concurrent webhooks for the same reference cannot
// both pass the terminal-state gate. The gate itself lives on the domain
// entity; this method only provides the serialization around it.
func (r *GormPaymentRepository) ApplyGatewayUpdate(reference string, update domain.GatewayUpdate) (*domain.Payment, bool, error) {
	var payment domain.Payment
	applied := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPaymentNotFound
			}
			return fmt.Errorf("failed to lock payment: %w", err)
		}

		if !payment.ApplyGatewayUpdate(update, time.Now()) {
			// Terminal state, nothing to write.
			return nil
		}

		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}

		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &payment, applied, nil
}
