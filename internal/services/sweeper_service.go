package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

type SweepStats struct {
	Checked      int            `json:"checked"`
	Expired      int            `json:"expired"`
	Warned       map[string]int `json:"warned"`
	EmailsSent   int            `json:"emails_sent"`
	EmailsFailed int            `json:"emails_failed"`
	Errors       int            `json:"errors"`
}

// SweeperService is the daily batch: downgrade expired plans, warn at
// 7/3/1 days remaining. One account's failure never aborts the rest.
type SweeperService interface {
	Run(ctx context.Context) (*SweepStats, error)
}

type sweeperService struct {
	store    repositories.Store
	notifier NotificationService
	logger   *zap.Logger
	nowFn    func() time.Time
}

func NewSweeperService(store repositories.Store, notifier NotificationService, logger *zap.Logger) SweeperService {
	return &sweeperService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		nowFn:    time.Now,
	}
}

var warningTypes = map[int]db_models.NotificationType{
	7: db_models.NotifyExpiring7Days,
	3: db_models.NotifyExpiring3Days,
	1: db_models.NotifyExpiring1Day,
}

func (s *sweeperService) Run(ctx context.Context) (*SweepStats, error) {
	stats := &SweepStats{Warned: map[string]int{}}

	accounts, err := s.store.Accounts().FindPaid(ctx)
	if err != nil {
		return nil, err
	}

	now := s.nowFn()
	for i := range accounts {
		account := &accounts[i]
		stats.Checked++

		if err := s.sweepAccount(ctx, account, now, stats); err != nil {
			stats.Errors++
			s.logger.Error("sweep failed for account",
				zap.String("user_id", account.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("expiration sweep finished",
		zap.Int("checked", stats.Checked),
		zap.Int("expired", stats.Expired),
		zap.Int("errors", stats.Errors))
	return stats, nil
}

func (s *sweeperService) sweepAccount(ctx context.Context, account *db_models.Account,
	now time.Time, stats *SweepStats) error {

	if account.PlanExpiresAt == nil {
		// Paid plan without expiry violates the invariant; expire it.
		return s.expire(ctx, account, stats)
	}

	daysRemaining := utils.DaysRemaining(time.Unix(*account.PlanExpiresAt, 0), now)
	if daysRemaining <= 0 {
		return s.expire(ctx, account, stats)
	}

	typ, ok := warningTypes[daysRemaining]
	if !ok {
		return nil
	}

	result, err := s.notifier.Dispatch(ctx, account, typ, map[string]any{
		"plan":           string(account.Plan),
		"days_remaining": daysRemaining,
	})
	if err != nil {
		return err
	}
	if result.Created {
		stats.Warned[string(typ)]++
		if result.EmailSent {
			stats.EmailsSent++
		} else {
			stats.EmailsFailed++
		}
	}
	return nil
}

func (s *sweeperService) expire(ctx context.Context, account *db_models.Account, stats *SweepStats) error {
	var expired *db_models.Account

	err := s.store.InTx(ctx, func(tx repositories.Store) error {
		locked, err := tx.Accounts().FindByIDForUpdate(ctx, account.ID)
		if err != nil {
			return err
		}
		if locked == nil || locked.Plan == db_models.PlanFree {
			// Already downgraded by a concurrent run.
			return nil
		}

		priorPlan := locked.Plan
		priorBalance := locked.TokenBalance

		locked.PreviousPlan = &priorPlan
		locked.PreviousTokenBalance = &priorBalance
		locked.ApplyPlanState(db_models.FreeState(), s.nowFn())
		locked.TokenBalance = 0

		if err := tx.Accounts().Update(ctx, locked); err != nil {
			return err
		}

		entry := &db_models.CreditLogEntry{
			UserID:          locked.ID,
			Action:          db_models.ActionPlanExpired,
			Delta:           -priorBalance,
			PreviousBalance: priorBalance,
			NewBalance:      0,
			Metadata:        jsonMeta(map[string]any{"expired_plan": string(priorPlan)}),
		}
		if err := tx.CreditLogs().Append(ctx, entry); err != nil {
			return err
		}

		expired = locked
		return nil
	})
	if err != nil {
		return err
	}
	if expired == nil {
		return nil
	}

	stats.Expired++

	result, err := s.notifier.Dispatch(ctx, expired, db_models.NotifyExpired, map[string]any{
		"expired_plan": string(*expired.PreviousPlan),
	})
	if err != nil {
		return err
	}
	if result.Created {
		if result.EmailSent {
			stats.EmailsSent++
		} else {
			stats.EmailsFailed++
		}
	}
	return nil
}
