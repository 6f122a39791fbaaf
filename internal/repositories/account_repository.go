package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hairday/internal/models/db_models"
)

type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	// FindByIDForUpdate takes a row lock; only valid inside InTx.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Account, error)
	FindByEmail(ctx context.Context, email string) (*db_models.Account, error)
	// FindPaid returns every account on a non-free plan, ordered by id
	// so the sweep walks them deterministically.
	FindPaid(ctx context.Context) ([]db_models.Account, error)
	Insert(ctx context.Context, account *db_models.Account) error
	// Update saves the whole row; only valid on a row read under
	// FindByIDForUpdate inside InTx.
	Update(ctx context.Context, account *db_models.Account) error
	// UpdateCard writes only the card columns, so it is safe outside a
	// transaction: balance and plan columns are never rewritten.
	UpdateCard(ctx context.Context, id uuid.UUID, last4, brand string) error
}

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	var account db_models.Account
	err := r.db.WithContext(ctx).First(&account, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindPaid(ctx context.Context) ([]db_models.Account, error) {
	var accounts []db_models.Account
	err := r.db.WithContext(ctx).
		Where("plan <> ?", db_models.PlanFree).
		Order("id").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepository) UpdateCard(ctx context.Context, id uuid.UUID, last4, brand string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"card_last4": last4, "card_brand": brand}).Error
}
