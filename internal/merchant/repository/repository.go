package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
)

type GormMerchantRepository struct {
	db *gorm.DB
}

func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

func (r *GormMerchantRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Merchant{})
}

func (r *GormMerchantRepository) Create(merchant *domain.Merchant) error {
	return r.db.Create(merchant).Error
}

func (r *GormMerchantRepository) FindByID(id uuid.UUID) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := r.db.Where("id = ?", id).First(&merchant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *GormMerchantRepository) FindByEmail(email string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := r.db.Where("email = ?", email).First(&merchant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

func (r *GormMerchantRepository) FindAllActive() ([]domain.Merchant, error) {
	var merchants []domain.Merchant
	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&merchants).Error
	return merchants, err
}
