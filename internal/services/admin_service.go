package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

const sessionTTL = 24 * time.Hour

type AdminInfo struct {
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// AdminService handles admin credentials and sessions: bcrypt with a
// legacy SHA-256 fallback that migrates in place on login, one active
// 24h session token per admin, and session-guarded management. The
// very first admin may self-register; after that a valid session from
// an existing admin is required.
type AdminService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, sessionToken, email, password string) error
	ChangePassword(ctx context.Context, sessionToken, currentPassword, newPassword string) error
	Delete(ctx context.Context, sessionToken, email string) error
	List(ctx context.Context, sessionToken string) ([]AdminInfo, error)
	ValidateSession(ctx context.Context, token string) (*db_models.AdminUser, error)
}

type adminService struct {
	store  repositories.Store
	logger *zap.Logger
	nowFn  func() time.Time
}

func NewAdminService(store repositories.Store, logger *zap.Logger) AdminService {
	return &adminService{store: store, logger: logger, nowFn: time.Now}
}

func (a *adminService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := a.store.Admins().FindByEmail(ctx, email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if admin == nil {
		return "", utils.ErrInvalidCredentials
	}

	migrated := false
	switch {
	case admin.PasswordHash != "":
		if err := utils.ComparePasswords(admin.PasswordHash, password); err != nil {
			return "", utils.ErrInvalidCredentials
		}
	case admin.LegacyPasswordHash != nil:
		if !utils.CompareLegacyHash(*admin.LegacyPasswordHash, password) {
			return "", utils.ErrInvalidCredentials
		}
		// Legacy match: migrate to bcrypt and drop the old hash in the
		// same update that stores the session.
		modern, hashErr := utils.HashPassword(password)
		if hashErr != nil {
			return "", utils.ErrDatabaseError
		}
		admin.PasswordHash = modern
		admin.LegacyPasswordHash = nil
		migrated = true
	default:
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	expiresAt := a.nowFn().Add(sessionTTL).Unix()
	admin.SessionToken = &token
	admin.SessionExpiresAt = &expiresAt

	if err := a.store.Admins().Update(ctx, admin); err != nil {
		return "", utils.ErrDatabaseError
	}

	if migrated {
		a.logger.Info("admin password hash migrated to bcrypt", zap.String("email", email))
	}
	return token, nil
}

func (a *adminService) Register(ctx context.Context, sessionToken, email, password string) error {
	count, err := a.store.Admins().Count(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}

	// Bootstrap: only the very first admin may register without a
	// session from an existing admin.
	if count > 0 {
		if sessionToken == "" {
			return utils.ErrSessionRequired
		}
		if _, err := a.ValidateSession(ctx, sessionToken); err != nil {
			return err
		}
	}

	existing, err := a.store.Admins().FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	admin := &db_models.AdminUser{
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.store.Admins().Insert(ctx, admin); err != nil {
		return utils.ErrDatabaseError
	}

	a.logger.Info("admin registered", zap.String("email", email), zap.Bool("bootstrap", count == 0))
	return nil
}

func (a *adminService) ChangePassword(ctx context.Context, sessionToken, currentPassword, newPassword string) error {
	admin, err := a.ValidateSession(ctx, sessionToken)
	if err != nil {
		return err
	}

	if err := utils.ComparePasswords(admin.PasswordHash, currentPassword); err != nil {
		return utils.ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	admin.PasswordHash = hash

	if err := a.store.Admins().Update(ctx, admin); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *adminService) Delete(ctx context.Context, sessionToken, email string) error {
	caller, err := a.ValidateSession(ctx, sessionToken)
	if err != nil {
		return err
	}
	if caller.Email == email {
		return utils.ErrUnauthorized
	}

	target, err := a.store.Admins().FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if target == nil {
		return utils.ErrAccountNotFound
	}

	if err := a.store.Admins().DeleteByEmail(ctx, email); err != nil {
		return utils.ErrDatabaseError
	}
	a.logger.Info("admin deleted", zap.String("email", email), zap.String("by", caller.Email))
	return nil
}

func (a *adminService) List(ctx context.Context, sessionToken string) ([]AdminInfo, error) {
	if _, err := a.ValidateSession(ctx, sessionToken); err != nil {
		return nil, err
	}

	admins, err := a.store.Admins().List(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	infos := make([]AdminInfo, 0, len(admins))
	for _, admin := range admins {
		infos = append(infos, AdminInfo{Email: admin.Email, CreatedAt: admin.CreatedAt})
	}
	return infos, nil
}

func (a *adminService) ValidateSession(ctx context.Context, token string) (*db_models.AdminUser, error) {
	if token == "" {
		return nil, utils.ErrSessionNotFound
	}

	admin, err := a.store.Admins().FindBySessionToken(ctx, token)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if admin == nil {
		return nil, utils.ErrSessionNotFound
	}
	if admin.SessionExpiresAt == nil || a.nowFn().Unix() > *admin.SessionExpiresAt {
		return nil, utils.ErrSessionExpired
	}
	return admin, nil
}
