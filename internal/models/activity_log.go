package models

import (
	"time"

	"github.com/google/uuid"
)

type ActivityAction string

const (
	ActionLogin          ActivityAction = "login"
	ActionLogout         ActivityAction = "logout"
	ActionPasswordChange ActivityAction = "password_change"
	ActionPasswordReset  ActivityAction = "password_reset"
)

// ActivityLogEntry is an append-only security event record. Written by the
// auth flows, read only by the admin dashboard.
type ActivityLogEntry struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Action        ActivityAction `gorm:"size:32;not null;index" json:"action"`
	Details       string         `gorm:"size:512" json:"details"`
	SourceAddress string         `gorm:"size:45" json:"source_address"`
	UserAgent     string         `gorm:"size:512" json:"user_agent"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
}

func (ActivityLogEntry) TableName() string {
	return "activity_log"
}
