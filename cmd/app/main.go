package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"hairday/cmd/fx/account_fx"
	"hairday/cmd/fx/admin_fx"
	"hairday/cmd/fx/db_fx"
	"hairday/cmd/fx/mail_fx"
	"hairday/cmd/fx/meter_fx"
	"hairday/cmd/fx/notification_fx"
	"hairday/cmd/fx/payment_fx"
	"hairday/cmd/fx/style_fx"
	"hairday/cmd/fx/sweeper_fx"
	"hairday/internal/api/controllers"
	"hairday/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(provideLogger),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		db_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		meter_fx.Module,
		style_fx.Module,
		notification_fx.Module,
		payment_fx.Module,
		sweeper_fx.Module,
		admin_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func provideLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	return logger
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				logger.Info("Starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	plansController *controllers.PlansController,
	paymentController *controllers.PaymentController,
	styleController *controllers.StyleController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	sessionValidator middleware.SessionValidator) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, plansController, paymentController,
		styleController, notificationController, adminController, sessionValidator)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	plansController *controllers.PlansController,
	paymentController *controllers.PaymentController,
	styleController *controllers.StyleController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	sessionValidator middleware.SessionValidator) {

	r.POST("/auth/signup", accountController.SignUp)
	r.POST("/auth/login", accountController.Login)
	r.GET("/plans", plansController.ListPlans)

	authed := r.Group("/")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.GET("/account", accountController.GetAccount)
	authed.POST("/payments/verify", paymentController.VerifyPayment)
	authed.POST("/iap/verify", paymentController.VerifyIAP)
	authed.POST("/payments/cancel", paymentController.CancelPayment)
	authed.POST("/ai/style-consult", styleController.StyleConsult)
	authed.GET("/notifications", notificationController.ListNotifications)
	authed.POST("/notifications/:id/read", notificationController.MarkRead)

	adminGroup := r.Group("/admin")
	adminGroup.POST("/login", adminController.Login)
	adminGroup.POST("/register", adminController.Register) // bootstrap allowed without session

	adminSession := adminGroup.Group("/")
	adminSession.Use(middleware.AdminSessionMiddleware(sessionValidator))
	adminSession.POST("/change-password", adminController.ChangePassword)
	adminSession.DELETE("/admins/:email", adminController.Delete)
	adminSession.GET("/admins", adminController.List)
	adminSession.POST("/sweep/run", adminController.RunSweep)
}
