package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

type DispatchResult struct {
	Created   bool
	EmailSent bool
}

// NotificationService emits in-app notifications and the matching
// email. Emission is idempotent per (user, type) per calendar day;
// email failure never fails the dispatch.
type NotificationService interface {
	Dispatch(ctx context.Context, account *db_models.Account,
		typ db_models.NotificationType, data map[string]any) (*DispatchResult, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

type notificationService struct {
	store  repositories.Store
	mailer IMailService
	appURL string
	logger *zap.Logger
	nowFn  func() time.Time
}

func NewNotificationService(store repositories.Store, mailer IMailService, appURL string, logger *zap.Logger) NotificationService {
	return &notificationService{
		store:  store,
		mailer: mailer,
		appURL: appURL,
		logger: logger,
		nowFn:  time.Now,
	}
}

func (n *notificationService) Dispatch(ctx context.Context, account *db_models.Account,
	typ db_models.NotificationType, data map[string]any) (*DispatchResult, error) {

	startOfDay := utils.StartOfDay(n.nowFn())

	// Check and insert under one transaction, serialized on the account
	// row, so concurrent sweeps cannot both pass the exists check.
	created := false
	err := n.store.InTx(ctx, func(tx repositories.Store) error {
		if _, err := tx.Accounts().FindByIDForUpdate(ctx, account.ID); err != nil {
			return err
		}

		exists, err := tx.Notifications().ExistsSince(ctx, account.ID, typ, startOfDay)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		notification := &db_models.Notification{
			UserID: account.ID,
			Type:   typ,
			Data:   jsonMeta(data),
		}
		if err := tx.Notifications().Insert(ctx, notification); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return &DispatchResult{Created: false}, nil
	}

	result := &DispatchResult{Created: true}

	subject, body := noticeContent(typ, account)
	if account.Email != "" {
		if err := n.mailer.SendMailToNotifyUser(account.Email, subject, body, "Open the app", n.appURL); err != nil {
			n.logger.Warn("notification email failed",
				zap.String("user_id", account.ID.String()),
				zap.String("type", string(typ)),
				zap.Error(err))
		} else {
			result.EmailSent = true
		}
	}

	return result, nil
}

func (n *notificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.Notification, error) {
	return n.store.Notifications().ListByUser(ctx, userID, limit)
}

func (n *notificationService) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return n.store.Notifications().MarkRead(ctx, id, userID)
}

func noticeContent(typ db_models.NotificationType, account *db_models.Account) (subject string, body string) {
	plan := string(account.Plan)
	switch typ {
	case db_models.NotifyExpiring7Days:
		return "Your plan expires in 7 days",
			fmt.Sprintf("Your %s plan expires in 7 days. Renew to keep your tokens and features.", plan)
	case db_models.NotifyExpiring3Days:
		return "Your plan expires in 3 days",
			fmt.Sprintf("Your %s plan expires in 3 days. Renew to keep your tokens and features.", plan)
	case db_models.NotifyExpiring1Day:
		return "Your plan expires tomorrow",
			fmt.Sprintf("Your %s plan expires tomorrow. Renew now to avoid losing your remaining tokens.", plan)
	case db_models.NotifyExpired:
		prior := plan
		if account.PreviousPlan != nil {
			prior = string(*account.PreviousPlan)
		}
		return "Your plan has expired",
			fmt.Sprintf("Your %s plan has expired and your account is back on the free plan.", prior)
	default:
		return "Notification", "You have a new notification."
	}
}
