package repositories

import (
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"gorm.io/gorm"
)

type LoginAttemptRepository interface {
	CountSince(username, sourceAddress string, since time.Time) (int64, error)
	Record(username, sourceAddress string, at time.Time) error
	DeleteBefore(cutoff time.Time) (int64, error)
}

type loginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) LoginAttemptRepository {
	return &loginAttemptRepository{db: db}
}

func (r *loginAttemptRepository) CountSince(username, sourceAddress string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.LoginAttempt{}).
		Where("username = ? AND source_address = ? AND created_at >= ?", username, sourceAddress, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *loginAttemptRepository) Record(username, sourceAddress string, at time.Time) error {
	attempt := &models.LoginAttempt{
		Username:      username,
		SourceAddress: sourceAddress,
		CreatedAt:     at,
	}
	return r.db.Create(attempt).Error
}

func (r *loginAttemptRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	res := r.db.Delete(&models.LoginAttempt{}, "created_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
