package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hairday/internal/models/db_models"
)

type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*db_models.AdminUser, error)
	FindBySessionToken(ctx context.Context, token string) (*db_models.AdminUser, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]db_models.AdminUser, error)
	Insert(ctx context.Context, admin *db_models.AdminUser) error
	Update(ctx context.Context, admin *db_models.AdminUser) error
	DeleteByEmail(ctx context.Context, email string) error
}

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*db_models.AdminUser, error) {
	var admin db_models.AdminUser
	err := r.db.WithContext(ctx).First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindBySessionToken(ctx context.Context, token string) (*db_models.AdminUser, error) {
	var admin db_models.AdminUser
	err := r.db.WithContext(ctx).First(&admin, "session_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.AdminUser{}).Count(&count).Error
	return count, err
}

func (r *adminRepository) List(ctx context.Context) ([]db_models.AdminUser, error) {
	var admins []db_models.AdminUser
	err := r.db.WithContext(ctx).Order("created_at").Find(&admins).Error
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminRepository) Insert(ctx context.Context, admin *db_models.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) Update(ctx context.Context, admin *db_models.AdminUser) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&db_models.AdminUser{}, "email = ?", email).Error
}
