package repositories

import (
	"errors"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(userID uuid.UUID, now time.Time) (*models.Session, error)
	GetByID(id uuid.UUID) (*models.Session, error)
	Touch(id uuid.UUID, at time.Time) error
	SetCSRFToken(id uuid.UUID, token string) error
	Delete(id uuid.UUID) error
	DeleteIdleBefore(cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(userID uuid.UUID, now time.Time) (*models.Session, error) {
	session := &models.Session{
		UserID:         userID,
		LoginAt:        now,
		LastActivityAt: now,
	}
	if err := r.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) GetByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Touch(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("last_activity_at", at).Error
}

func (r *sessionRepository) SetCSRFToken(id uuid.UUID, token string) error {
	return r.db.Model(&models.Session{}).
		Where("id = ?", id).
		Update("csrf_token", token).Error
}

func (r *sessionRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Session{}, "id = ?", id).Error
}

func (r *sessionRepository) DeleteIdleBefore(cutoff time.Time) (int64, error) {
	res := r.db.Delete(&models.Session{}, "last_activity_at < ?", cutoff)
	return res.RowsAffected, res.Error
}
