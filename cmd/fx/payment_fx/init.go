package payment_fx

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hairday/internal/api/controllers"
	"hairday/internal/repositories"
	"hairday/internal/services"
	"hairday/pkg/middleware"
)

var Module = fx.Provide(
	provideGateway,
	provideIAPVerifier,
	provideLedgerService,
	providePaymentService,
	providePaymentController,
)

func provideGateway(logger *zap.Logger) services.PaymentGateway {
	cfg := services.GatewayConfig{
		BaseURL:      os.Getenv("GATEWAY_BASE_URL"),
		SecretKey:    os.Getenv("GATEWAY_SECRET_KEY"),
		ProviderName: "toss",
	}
	return services.NewHTTPGateway(cfg, logger)
}

func provideIAPVerifier(logger *zap.Logger) services.IAPVerifier {
	cfg := services.IAPConfig{
		ProductionURL: "https://buy.itunes.apple.com/verifyReceipt",
		SandboxURL:    "https://sandbox.itunes.apple.com/verifyReceipt",
		SharedSecret:  os.Getenv("APPLE_SHARED_SECRET"),
	}
	return services.NewAppleIAPVerifier(cfg, logger)
}

func provideLedgerService(store repositories.Store, gateway services.PaymentGateway, logger *zap.Logger) services.LedgerService {
	return services.NewLedgerService(store, gateway, logger)
}

func providePaymentService(store repositories.Store, gateway services.PaymentGateway,
	iap services.IAPVerifier, ledger services.LedgerService, logger *zap.Logger) services.PaymentService {
	return services.NewPaymentService(store, gateway, iap, ledger, logger)
}

func providePaymentController(paymentService services.PaymentService, ledgerService services.LedgerService,
	sessionValidator middleware.SessionValidator) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, ledgerService, sessionValidator)
}
