package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/models/request_models"
	"hairday/internal/repositories"
	"hairday/pkg/utils"
)

// signupTokenGrant is the free allotment every new account starts with.
const signupTokenGrant = 200

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetAccount(ctx context.Context, userID uuid.UUID) (*db_models.Account, error)
}

type AccountService struct {
	store  repositories.Store
	logger *zap.Logger
}

func NewAccountService(store repositories.Store, logger *zap.Logger) AccountServiceInterface {
	return &AccountService{store: store, logger: logger}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {
	account, err := a.store.Accounts().FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if account == nil {
		return "", utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existing, err := a.store.Accounts().FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	// Every new account starts free with the signup token grant.
	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Plan:         db_models.PlanFree,
		TokenBalance: signupTokenGrant,
	}

	if err := a.store.Accounts().Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	a.logger.Info("account created", zap.String("email", request.Email))
	return nil
}

func (a *AccountService) GetAccount(ctx context.Context, userID uuid.UUID) (*db_models.Account, error) {
	account, err := a.store.Accounts().FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}
