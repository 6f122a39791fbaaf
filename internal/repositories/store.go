package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Store aggregates the collection repositories and owns the
// transaction boundary. Every balance-mutating operation runs inside
// InTx so reads and writes on an account serialize; nothing reads an
// account, computes, and writes outside a single transaction.
type Store interface {
	Accounts() AccountRepository
	Plans() PlanRepository
	Payments() PaymentRepository
	CreditLogs() CreditLogRepository
	Notifications() NotificationRepository
	Admins() AdminRepository

	// InTx runs fn against a transaction-scoped Store; if fn returns
	// an error nothing is committed.
	InTx(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Accounts() AccountRepository           { return &accountRepository{db: s.db} }
func (s *gormStore) Plans() PlanRepository                 { return &planRepository{db: s.db} }
func (s *gormStore) Payments() PaymentRepository           { return &paymentRepository{db: s.db} }
func (s *gormStore) CreditLogs() CreditLogRepository       { return &creditLogRepository{db: s.db} }
func (s *gormStore) Notifications() NotificationRepository { return &notificationRepository{db: s.db} }
func (s *gormStore) Admins() AdminRepository               { return &adminRepository{db: s.db} }

func (s *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
