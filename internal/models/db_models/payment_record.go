package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

type PaymentChannel string

const (
	ChannelWeb      PaymentChannel = "web"
	ChannelAppleIAP PaymentChannel = "apple_iap"
)

// PaymentRecord is the idempotency anchor: one row per payment id,
// written atomically with the account mutation it describes. The
// Prev* columns snapshot the account state before the charge so a
// cancellation can restore it.
type PaymentRecord struct {
	BaseModel
	PaymentID string    `gorm:"uniqueIndex"`
	UserID    uuid.UUID `gorm:"index"`
	PlanKey   string
	Channel   PaymentChannel `gorm:"type:varchar(16)"`

	AmountCharged int64
	TokensGranted int64
	Status        PaymentStatus `gorm:"type:varchar(16);index"`

	// State produced by the charge; replays return these verbatim.
	NewBalance       int64
	NewPlan          PlanTier
	NewPlanExpiresAt *int64

	PrevPlan          PlanTier
	PrevTokenBalance  int64
	PrevPlanExpiresAt *int64

	CancelledAt *int64
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
