package admin_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/api/controllers"
	"hairday/internal/repositories"
	"hairday/internal/services"
	"hairday/pkg/middleware"
)

var Module = fx.Provide(
	provideAdminService,
	provideSessionValidator,
	provideAdminController,
)

func provideAdminService(store repositories.Store, logger *zap.Logger) services.AdminService {
	return services.NewAdminService(store, logger)
}

func provideSessionValidator(adminService services.AdminService) middleware.SessionValidator {
	return adminService
}

func provideAdminController(adminService services.AdminService, sweeperService services.SweeperService) *controllers.AdminController {
	return controllers.NewAdminController(adminService, sweeperService)
}
