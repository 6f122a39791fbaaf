package sweeper_fx

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/repositories"
	"hairday/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideSweeperService),
	fx.Invoke(registerSweepSchedule),
)

func provideSweeperService(store repositories.Store, notifier services.NotificationService, logger *zap.Logger) services.SweeperService {
	return services.NewSweeperService(store, notifier, logger)
}

// registerSweepSchedule runs the expiration sweep once a day for as
// long as the process is up.
func registerSweepSchedule(lc fx.Lifecycle, sweeper services.SweeperService, logger *zap.Logger) error {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		if _, err := sweeper.Run(context.Background()); err != nil {
			logger.Error("scheduled sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-c.Stop().Done()
			return nil
		},
	})
	return nil
}
