package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreditAction string

const (
	ActionPurchase         CreditAction = "purchase"
	ActionIAPPurchase      CreditAction = "iap_purchase"
	ActionDeduct           CreditAction = "deduct"
	ActionRefund           CreditAction = "refund"
	ActionPlanExpired      CreditAction = "plan_expired"
	ActionPaymentCancelled CreditAction = "payment_cancelled"
)

// CreditLogEntry is the append-only audit trail; one row per
// balance-changing operation, never mutated.
type CreditLogEntry struct {
	BaseModel
	UserID          uuid.UUID    `gorm:"index"`
	Action          CreditAction `gorm:"type:varchar(24);index"`
	Delta           int64
	PreviousBalance int64
	NewBalance      int64
	Metadata        datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
