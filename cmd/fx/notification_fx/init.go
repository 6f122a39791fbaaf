package notification_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/api/controllers"
	"hairday/internal/repositories"
	"hairday/internal/services"
)

var Module = fx.Provide(
	provideNotificationService,
	provideNotificationController,
)

func provideNotificationService(store repositories.Store, mailer services.IMailService, logger *zap.Logger) services.NotificationService {
	return services.NewNotificationService(store, mailer, os.Getenv("APP_BASE_URL"), logger)
}

func provideNotificationController(notificationService services.NotificationService) *controllers.NotificationController {
	return controllers.NewNotificationController(notificationService)
}
