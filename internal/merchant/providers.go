package merchant

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/domain"
	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/handler"
	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/repository"
	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/usecase/command"
	"github.com/hayzedDev/istrategy-assessment-test/internal/merchant/usecase/query"
	"github.com/hayzedDev/istrategy-assessment-test/pkg/auth"
)

// ProvideMerchantRepository provides the merchant repository
func ProvideMerchantRepository(db *gorm.DB) domain.MerchantRepository {
	return repository.NewGormMerchantRepository(db)
}

// Command Handlers Providers
func ProvideLoginMerchantHandler(repo domain.MerchantRepository, tokens *auth.TokenManager, store *auth.TokenStore) *command.LoginMerchantHandler {
	return command.NewLoginMerchantHandler(repo, tokens, store)
}

func ProvideLogoutMerchantHandler(tokens *auth.TokenManager, store *auth.TokenStore) *command.LogoutMerchantHandler {
	return command.NewLogoutMerchantHandler(tokens, store)
}

// Query Handlers Providers
func ProvideListMerchantsHandler(repo domain.MerchantRepository) *query.ListMerchantsHandler {
	return query.NewListMerchantsHandler(repo)
}

// ProvideAuthMiddleware provides the auth middleware
func ProvideAuthMiddleware(tokens *auth.TokenManager, store *auth.TokenStore, repo domain.MerchantRepository) *handler.AuthMiddleware {
	return handler.NewAuthMiddleware(tokens, store, repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideMerchantRepository,
)

var HandlerSet = wire.NewSet(
	ProvideLoginMerchantHandler,
	ProvideLogoutMerchantHandler,
	ProvideListMerchantsHandler,
	ProvideAuthMiddleware,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	HandlerSet,
)
