package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

// Fixed token cost per feature invocation. Unknown features are
// rejected outright.
var featureCosts = map[string]int64{
	"style_consult":       200,
	"color_simulation":    300,
	"face_shape_analysis": 150,
}

// MeterService deducts and refunds tokens per feature use. Charge is
// all-or-nothing; Refund always succeeds and is the compensation for
// a downstream step failing after tokens were pre-deducted.
type MeterService interface {
	Charge(ctx context.Context, userID uuid.UUID, feature string) (int64, error)
	Refund(ctx context.Context, userID uuid.UUID, feature string, reason string) (int64, error)
}

type meterService struct {
	store  repositories.Store
	logger *zap.Logger
}

func NewMeterService(store repositories.Store, logger *zap.Logger) MeterService {
	return &meterService{store: store, logger: logger}
}

func FeatureCost(feature string) (int64, bool) {
	cost, ok := featureCosts[feature]
	return cost, ok
}

func (m *meterService) Charge(ctx context.Context, userID uuid.UUID, feature string) (int64, error) {
	cost, ok := featureCosts[feature]
	if !ok {
		return 0, utils.ErrUnknownFeature
	}

	var newBalance int64

	err := m.store.InTx(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.ErrAccountNotFound
		}

		if account.TokenBalance < cost {
			return utils.NewInsufficientTokensError(cost, account.TokenBalance)
		}

		previous := account.TokenBalance
		account.TokenBalance -= cost
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		entry := &db_models.CreditLogEntry{
			UserID:          userID,
			Action:          db_models.ActionDeduct,
			Delta:           -cost,
			PreviousBalance: previous,
			NewBalance:      account.TokenBalance,
			Metadata:        jsonMeta(map[string]any{"feature": feature}),
		}
		if err := tx.CreditLogs().Append(ctx, entry); err != nil {
			return err
		}

		newBalance = account.TokenBalance
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (m *meterService) Refund(ctx context.Context, userID uuid.UUID, feature string, reason string) (int64, error) {
	cost, ok := featureCosts[feature]
	if !ok {
		return 0, utils.ErrUnknownFeature
	}

	var newBalance int64

	err := m.store.InTx(ctx, func(tx repositories.Store) error {
		account, err := tx.Accounts().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.ErrAccountNotFound
		}

		previous := account.TokenBalance
		account.TokenBalance += cost
		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		entry := &db_models.CreditLogEntry{
			UserID:          userID,
			Action:          db_models.ActionRefund,
			Delta:           cost,
			PreviousBalance: previous,
			NewBalance:      account.TokenBalance,
			Metadata:        jsonMeta(map[string]any{"feature": feature, "reason": reason}),
		}
		if err := tx.CreditLogs().Append(ctx, entry); err != nil {
			return err
		}

		newBalance = account.TokenBalance
		return nil
	})
	if err != nil {
		return 0, err
	}

	m.logger.Info("tokens refunded",
		zap.String("user_id", userID.String()),
		zap.String("feature", feature),
		zap.String("reason", reason))
	return newBalance, nil
}
