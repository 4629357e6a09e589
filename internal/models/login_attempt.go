package models

import "time"

// LoginAttempt records one failed password verification. Rows are append-only
// and read as a sliding count over the brute-force window.
type LoginAttempt struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Username      string    `gorm:"size:64;not null;index:idx_login_attempts_lookup"`
	SourceAddress string    `gorm:"size:45;not null;index:idx_login_attempts_lookup"`
	CreatedAt     time.Time `gorm:"not null;index"`
}

func (LoginAttempt) TableName() string {
	return "login_attempts"
}
