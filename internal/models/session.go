package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is the server-side record behind the admin session cookie. The ID is
// the opaque value the cookie carries; a fresh one is minted on every login.
type Session struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	CSRFToken      string    `gorm:"type:varchar(64)"`
	LoginAt        time.Time `gorm:"not null"`
	LastActivityAt time.Time `gorm:"not null;index"`
}

func (Session) TableName() string {
	return "admin_sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IdleExpired reports whether the session has been inactive longer than timeout.
func (s *Session) IdleExpired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivityAt) > timeout
}
