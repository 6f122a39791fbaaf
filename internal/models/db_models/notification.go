package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotifyExpiring7Days NotificationType = "plan_expiring_7days"
	NotifyExpiring3Days NotificationType = "plan_expiring_3days"
	NotifyExpiring1Day  NotificationType = "plan_expiring_1day"
	NotifyExpired       NotificationType = "plan_expired"
)

// Notification is the in-app inbox row. At most one per
// (user, type) per calendar day; the repository's same-day existence
// check enforces it.
type Notification struct {
	BaseModel
	UserID uuid.UUID        `gorm:"index"`
	Type   NotificationType `gorm:"type:varchar(32);index"`
	Read   bool             `gorm:"default:false"`
	Data   datatypes.JSON   `gorm:"type:jsonb;default:'{}'"`
}
