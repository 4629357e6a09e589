package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminUser struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	TOTPSecret   *string    `gorm:"type:varchar(32)" json:"-"`
	TOTPEnabled  *bool      `gorm:"default:false" json:"totp_enabled"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// BeforeCreate hook to generate UUID
func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
