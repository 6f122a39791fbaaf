package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hairday/internal/models/db_models"
)

type PaymentRepository interface {
	FindByPaymentID(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error)
	// FindByPaymentIDForUpdate locks the row so concurrent cancel
	// attempts on the same payment serialize; only valid inside InTx.
	FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error)
	Insert(ctx context.Context, record *db_models.PaymentRecord) error
	Update(ctx context.Context, record *db_models.PaymentRecord) error
}

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error) {
	var record db_models.PaymentRecord
	err := r.db.WithContext(ctx).First(&record, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *paymentRepository) FindByPaymentIDForUpdate(ctx context.Context, paymentID string) (*db_models.PaymentRecord, error) {
	var record db_models.PaymentRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&record, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *paymentRepository) Insert(ctx context.Context, record *db_models.PaymentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *paymentRepository) Update(ctx context.Context, record *db_models.PaymentRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
