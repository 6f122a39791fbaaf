package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hairday/internal/models/db_models"
)

// CreditLogRepository is append-only; entries are never updated or
// deleted.
type CreditLogRepository interface {
	Append(ctx context.Context, entry *db_models.CreditLogEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.CreditLogEntry, error)
}

type creditLogRepository struct {
	db *gorm.DB
}

func (r *creditLogRepository) Append(ctx context.Context, entry *db_models.CreditLogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *creditLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db_models.CreditLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []db_models.CreditLogEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
