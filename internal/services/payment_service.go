package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

// PaymentService is the verify-then-charge front for both payment
// channels. Verification must fully succeed before the ledger is
// touched; the two channels share one LedgerService so web and IAP
// purchases cannot drift apart.
type PaymentService interface {
	VerifyAndChargeWeb(ctx context.Context, userID uuid.UUID, planKey, paymentID string) (*ChargeResult, error)
	VerifyAndChargeIAP(ctx context.Context, userID uuid.UUID, productID, receipt string) (*ChargeResult, error)
}

type paymentService struct {
	store   repositories.Store
	gateway PaymentGateway
	iap     IAPVerifier
	ledger  LedgerService
	logger  *zap.Logger
}

func NewPaymentService(store repositories.Store, gateway PaymentGateway, iap IAPVerifier,
	ledger LedgerService, logger *zap.Logger) PaymentService {
	return &paymentService{
		store:   store,
		gateway: gateway,
		iap:     iap,
		ledger:  ledger,
		logger:  logger,
	}
}

func (p *paymentService) VerifyAndChargeWeb(ctx context.Context, userID uuid.UUID, planKey, paymentID string) (*ChargeResult, error) {
	plan, err := p.store.Plans().FindByCode(ctx, planKey)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	payment, err := p.gateway.Verify(ctx, paymentID, plan.PriceMinor)
	if err != nil {
		return nil, err
	}

	result, err := p.ledger.Charge(ctx, userID, planKey, paymentID, db_models.ChannelWeb, payment.Amount)
	if err != nil {
		return nil, err
	}

	// Card details are cosmetic; losing them never fails the charge.
	if payment.CardLast4 != "" {
		p.saveCard(ctx, userID, payment)
	}

	p.logger.Info("web payment charged",
		zap.String("payment_id", paymentID),
		zap.String("plan_key", planKey),
		zap.Bool("replayed", result.Replayed))
	return result, nil
}

func (p *paymentService) VerifyAndChargeIAP(ctx context.Context, userID uuid.UUID, productID, receipt string) (*ChargeResult, error) {
	plan, err := p.store.Plans().FindByCode(ctx, productID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	verified, err := p.iap.VerifyReceipt(ctx, receipt, productID)
	if err != nil {
		return nil, err
	}

	// The platform transaction id is the idempotency key, prefixed so
	// it can never collide with a web gateway payment id.
	paymentID := fmt.Sprintf("iap:%s", verified.TransactionID)

	result, err := p.ledger.Charge(ctx, userID, productID, paymentID, db_models.ChannelAppleIAP, plan.PriceMinor)
	if err != nil {
		return nil, err
	}

	p.logger.Info("iap payment charged",
		zap.String("payment_id", paymentID),
		zap.String("product_id", productID),
		zap.Bool("replayed", result.Replayed))
	return result, nil
}

// saveCard writes only the card columns. It must never read the row
// and save it whole: the charge already committed, and a concurrent
// deduction or downgrade landing in between would be clobbered.
func (p *paymentService) saveCard(ctx context.Context, userID uuid.UUID, payment *GatewayPayment) {
	if err := p.store.Accounts().UpdateCard(ctx, userID, payment.CardLast4, payment.CardBrand); err != nil {
		p.logger.Warn("failed to save card details", zap.Error(err))
	}
}
