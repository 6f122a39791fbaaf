package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

type ChargeResult struct {
	PaymentID     string
	TokensGranted int64
	NewBalance    int64
	Plan          db_models.PlanTier
	PlanExpiresAt *int64
	Replayed      bool
}

type CancelResult struct {
	RestoredPlan    db_models.PlanTier
	RestoredBalance int64
}

// LedgerService owns every account mutation tied to a payment: the
// idempotent charge and its reversal. Both run as single store
// transactions so concurrent calls on one account serialize.
type LedgerService interface {
	Charge(ctx context.Context, userID uuid.UUID, planKey string, paymentID string,
		channel db_models.PaymentChannel, amountCharged int64) (*ChargeResult, error)
	Cancel(ctx context.Context, paymentID string, reason string,
		requestedBy uuid.UUID, isAdmin bool) (*CancelResult, error)
}

type ledgerService struct {
	store   repositories.Store
	gateway PaymentGateway
	logger  *zap.Logger
	nowFn   func() time.Time
}

func NewLedgerService(store repositories.Store, gateway PaymentGateway, logger *zap.Logger) LedgerService {
	return &ledgerService{
		store:   store,
		gateway: gateway,
		logger:  logger,
		nowFn:   time.Now,
	}
}

func (l *ledgerService) Charge(ctx context.Context, userID uuid.UUID, planKey string, paymentID string,
	channel db_models.PaymentChannel, amountCharged int64) (*ChargeResult, error) {

	var result *ChargeResult

	err := l.store.InTx(ctx, func(tx repositories.Store) error {
		// Idempotency: a completed record for this paymentId means the
		// charge was already applied; return the original result.
		existing, err := tx.Payments().FindByPaymentID(ctx, paymentID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status == db_models.PaymentCompleted {
			l.logger.Info("duplicate charge submission, replaying prior result",
				zap.String("payment_id", paymentID))
			result = &ChargeResult{
				PaymentID:     existing.PaymentID,
				TokensGranted: existing.TokensGranted,
				NewBalance:    existing.NewBalance,
				Plan:          existing.NewPlan,
				PlanExpiresAt: existing.NewPlanExpiresAt,
				Replayed:      true,
			}
			return nil
		}

		plan, err := tx.Plans().FindByCode(ctx, planKey)
		if err != nil {
			return err
		}
		if plan == nil {
			return utils.ErrPlanNotFound
		}

		account, err := tx.Accounts().FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.ErrAccountNotFound
		}

		snapshot := accountSnapshot{
			Plan:          account.Plan,
			TokenBalance:  account.TokenBalance,
			PlanExpiresAt: account.PlanExpiresAt,
		}

		now := l.nowFn()
		if plan.ProductType == db_models.ProductPlan {
			// Tier purchase: balance is reset to the allotment, not
			// accumulated, and a fresh validity window starts.
			validity := time.Duration(plan.ValidityDays) * 24 * time.Hour
			state, stateErr := db_models.PaidState(db_models.PlanTier(plan.Code), now.Add(validity))
			if stateErr != nil {
				return stateErr
			}
			account.ApplyPlanState(state, now)
			account.TokenBalance = plan.TokenAllotment
		} else {
			// Token pack: balance accumulates, plan and expiry untouched.
			account.TokenBalance += plan.TokenAllotment
		}

		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		record := &db_models.PaymentRecord{
			PaymentID:         paymentID,
			UserID:            userID,
			PlanKey:           planKey,
			Channel:           channel,
			AmountCharged:     amountCharged,
			TokensGranted:     plan.TokenAllotment,
			NewBalance:        account.TokenBalance,
			NewPlan:           account.Plan,
			NewPlanExpiresAt:  account.PlanExpiresAt,
			Status:            db_models.PaymentCompleted,
			PrevPlan:          snapshot.Plan,
			PrevTokenBalance:  snapshot.TokenBalance,
			PrevPlanExpiresAt: snapshot.PlanExpiresAt,
		}
		if err := tx.Payments().Insert(ctx, record); err != nil {
			return err
		}

		action := db_models.ActionPurchase
		if channel == db_models.ChannelAppleIAP {
			action = db_models.ActionIAPPurchase
		}
		entry := &db_models.CreditLogEntry{
			UserID:          userID,
			Action:          action,
			Delta:           account.TokenBalance - snapshot.TokenBalance,
			PreviousBalance: snapshot.TokenBalance,
			NewBalance:      account.TokenBalance,
			Metadata:        jsonMeta(map[string]any{"payment_id": paymentID, "plan_key": planKey}),
		}
		if err := tx.CreditLogs().Append(ctx, entry); err != nil {
			return err
		}

		result = &ChargeResult{
			PaymentID:     paymentID,
			TokensGranted: plan.TokenAllotment,
			NewBalance:    account.TokenBalance,
			Plan:          account.Plan,
			PlanExpiresAt: account.PlanExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (l *ledgerService) Cancel(ctx context.Context, paymentID string, reason string,
	requestedBy uuid.UUID, isAdmin bool) (*CancelResult, error) {

	record, err := l.store.Payments().FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, utils.ErrPaymentNotFound
	}
	if !isAdmin && record.UserID != requestedBy {
		return nil, utils.ErrUnauthorized
	}
	if record.Status == db_models.PaymentCancelled {
		return nil, utils.ErrAlreadyCancelled
	}

	// The gateway must actually reverse the charge before anything is
	// recorded locally; its error is surfaced untouched.
	if err := l.gateway.Cancel(ctx, paymentID, reason); err != nil {
		return nil, err
	}

	var result *CancelResult

	err = l.store.InTx(ctx, func(tx repositories.Store) error {
		locked, err := tx.Payments().FindByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if locked == nil {
			return utils.ErrPaymentNotFound
		}
		if locked.Status == db_models.PaymentCancelled {
			return utils.ErrAlreadyCancelled
		}

		account, err := tx.Accounts().FindByIDForUpdate(ctx, locked.UserID)
		if err != nil {
			return err
		}
		if account == nil {
			return utils.ErrAccountNotFound
		}

		currentBalance := account.TokenBalance

		// Restore the snapshot, but tolerate tokens already spent
		// between charge and cancel: never go below zero.
		restoredBalance := currentBalance - locked.TokensGranted
		if restoredBalance < 0 {
			restoredBalance = 0
		}

		state, err := stateFromSnapshot(locked.PrevPlan, locked.PrevPlanExpiresAt)
		if err != nil {
			return err
		}
		account.ApplyPlanState(state, l.nowFn())
		account.TokenBalance = restoredBalance

		if err := tx.Accounts().Update(ctx, account); err != nil {
			return err
		}

		cancelledAt := l.nowFn().Unix()
		locked.Status = db_models.PaymentCancelled
		locked.CancelledAt = &cancelledAt
		if err := tx.Payments().Update(ctx, locked); err != nil {
			return err
		}

		entry := &db_models.CreditLogEntry{
			UserID:          locked.UserID,
			Action:          db_models.ActionPaymentCancelled,
			Delta:           restoredBalance - currentBalance,
			PreviousBalance: currentBalance,
			NewBalance:      restoredBalance,
			Metadata:        jsonMeta(map[string]any{"payment_id": paymentID, "reason": reason}),
		}
		if err := tx.CreditLogs().Append(ctx, entry); err != nil {
			return err
		}

		result = &CancelResult{
			RestoredPlan:    account.Plan,
			RestoredBalance: restoredBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("payment cancelled",
		zap.String("payment_id", paymentID),
		zap.String("restored_plan", string(result.RestoredPlan)),
		zap.Int64("restored_balance", result.RestoredBalance))
	return result, nil
}

type accountSnapshot struct {
	Plan          db_models.PlanTier
	TokenBalance  int64
	PlanExpiresAt *int64
}

func stateFromSnapshot(plan db_models.PlanTier, expiresAt *int64) (db_models.PlanState, error) {
	if plan == db_models.PlanFree || plan == "" {
		return db_models.FreeState(), nil
	}
	if expiresAt == nil {
		// Paid snapshot without an expiry cannot be represented; fall
		// back to free rather than fabricate a window.
		return db_models.FreeState(), nil
	}
	return db_models.PaidState(plan, time.Unix(*expiresAt, 0))
}

func jsonMeta(v map[string]any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}
