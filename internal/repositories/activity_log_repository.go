package repositories

import (
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Append(entry *models.ActivityLogEntry) error
	ListRecent(limit int) ([]models.ActivityLogEntry, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Append(entry *models.ActivityLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *activityLogRepository) ListRecent(limit int) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
