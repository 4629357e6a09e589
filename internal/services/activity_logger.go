package services

import (
	"log"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
	"github.com/google/uuid"
)

// ActivityLogger appends security events fire-and-forget. A write failure is
// logged locally and never surfaced, so an audit outage cannot block a login.
type ActivityLogger struct {
	repo repositories.ActivityLogRepository
}

func NewActivityLogger(repo repositories.ActivityLogRepository) *ActivityLogger {
	return &ActivityLogger{repo: repo}
}

func (l *ActivityLogger) Record(userID uuid.UUID, action models.ActivityAction, details, sourceAddress, userAgent string) {
	entry := &models.ActivityLogEntry{
		UserID:        userID,
		Action:        action,
		Details:       details,
		SourceAddress: sourceAddress,
		UserAgent:     userAgent,
		CreatedAt:     time.Now().UTC(),
	}
	if err := l.repo.Append(entry); err != nil {
		log.Printf("activity log write failed (action=%s): %v", action, err)
	}
}

// Recent returns the newest entries for the admin dashboard.
func (l *ActivityLogger) Recent(limit int) ([]models.ActivityLogEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return l.repo.ListRecent(limit)
}
