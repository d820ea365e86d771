package seeds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	merchantdomain "github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/payment/domain"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/logger"
)

// SeedFile is the on-disk format consumed by Run.
type SeedFile struct {
	Merchants []SeedMerchant `json:"merchants"`
}

// SeedMerchant is a merchant plus its payment methods.
type SeedMerchant struct {
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	Password       string              `json:"password"`
	PaymentMethods []SeedPaymentMethod `json:"paymentMethods"`
}

// SeedPaymentMethod is a payment method definition.
type SeedPaymentMethod struct {
	Type          string                 `json:"type"`
	Name          string                 `json:"name"`
	Configuration map[string]interface{} `json:"configuration"`
}

// Run loads the seed file and inserts merchants and payment methods.
// Merchants that already exist (by email) are skipped, so re-running the
// seeder is safe.
func Run(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, sm := range file.Merchants {
		if err := seedMerchant(db, sm); err != nil {
			return err
		}
	}

	return nil
}

func seedMerchant(db *gorm.DB, sm SeedMerchant) error {
	var existing merchantdomain.Merchant
	err := db.Where("email = ?", sm.Email).First(&existing).Error
	if err == nil {
		logger.Logger.Info().Str("email", sm.Email).Msg("Merchant already seeded, skipping")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check merchant %s: %w", sm.Email, err)
	}

	hashed, err := auth.HashPassword(sm.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", sm.Email, err)
	}

	merchant := merchantdomain.Merchant{
		Name:     sm.Name,
		Email:    sm.Email,
		Password: hashed,
		IsActive: true,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&merchant).Error; err != nil {
			return fmt.Errorf("failed to create merchant %s: %w", sm.Email, err)
		}

		for _, spm := range sm.PaymentMethods {
			method := domain.PaymentMethod{
				Type:          domain.PaymentMethodType(spm.Type),
				Name:          spm.Name,
				Configuration: datatypes.JSONMap(spm.Configuration),
				Active:        true,
				MerchantID:    merchant.ID,
			}
			if err := tx.Create(&method).Error; err != nil {
				return fmt.Errorf("failed to create payment method for %s: %w", sm.Email, err)
			}
		}

		logger.Logger.Info().
			Str("email", sm.Email).
			Int("payment_methods", len(sm.PaymentMethods)).
			Msg("Merchant seeded")
		return nil
	})
}
