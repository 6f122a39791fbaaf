package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/api/controllers"
	"hairday/internal/repositories"
	"hairday/internal/services"
)

var Module = fx.Provide(
	provideAccountService,
	provideAccountController,
	providePlansController,
)

func provideAccountService(store repositories.Store, logger *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(store, logger)
}

func provideAccountController(accountService services.AccountServiceInterface) *controllers.AccountController {
	return controllers.NewAccountController(accountService)
}

func providePlansController(store repositories.Store) *controllers.PlansController {
	return controllers.NewPlansController(store)
}
