package meter_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/repositories"
	"hairday/internal/services"
)

var Module = fx.Provide(
	provideMeterService,
)

func provideMeterService(store repositories.Store, logger *zap.Logger) services.MeterService {
	return services.NewMeterService(store, logger)
}
