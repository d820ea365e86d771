package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
)

type GormPaymentMethodRepository struct {
	db *gorm.DB
}

func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

func (r *GormPaymentMethodRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.PaymentMethod{})
}

func (r *GormPaymentMethodRepository) Create(method *domain.PaymentMethod) error {
	return r.db.Create(method).Error
}

func (r *GormPaymentMethodRepository) FindByIDForMerchant(id, merchantID uuid.UUID) (*domain.PaymentMethod, error) {
	var method domain.PaymentMethod
	err := r.db.Where("id = ? AND merchant_id = ?", id, merchantID).First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *GormPaymentMethodRepository) FindByMerchant(merchantID uuid.UUID) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	err := r.db.Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&methods).Error
	return methods, err
}
