package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginChallenge is the short-lived record between a successful password step
// and the TOTP step for admins with a second factor enabled. The session
// cookie is only issued once the challenge is consumed.
type LoginChallenge struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time  `gorm:"not null"`
	ExpiresAt      time.Time  `gorm:"not null;index"`
	ConsumedAt     *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
}

func (LoginChallenge) TableName() string {
	return "login_challenges"
}

func (c *LoginChallenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
