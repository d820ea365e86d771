//go:build wireinject
// +build wireinject

package merchant

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/handler"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
)

// InitializeHandler initializes merchant handler with all dependencies
func InitializeHandler(db *gorm.DB, tokens *auth.TokenManager, store *auth.TokenStore) (*handler.MerchantHandler, error) {
	wire.Build(
		AllHandlersSet,
		handler.NewMerchantHandler,
	)
	return nil, nil
}
