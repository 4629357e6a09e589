package repositories

import (
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LoginChallengeRepository interface {
	Create(userID uuid.UUID, ttl time.Duration) (*models.LoginChallenge, error)
	GetActiveByID(id uuid.UUID, now time.Time) (*models.LoginChallenge, error)
	IncrementFailedAttempts(id uuid.UUID) error
	MarkConsumed(id uuid.UUID, consumedAt time.Time) error
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

type loginChallengeRepository struct {
	db *gorm.DB
}

func NewLoginChallengeRepository(db *gorm.DB) LoginChallengeRepository {
	return &loginChallengeRepository{db: db}
}

func (r *loginChallengeRepository) Create(userID uuid.UUID, ttl time.Duration) (*models.LoginChallenge, error) {
	now := time.Now().UTC()
	challenge := &models.LoginChallenge{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := r.db.Create(challenge).Error; err != nil {
		return nil, err
	}
	return challenge, nil
}

func (r *loginChallengeRepository) GetActiveByID(id uuid.UUID, now time.Time) (*models.LoginChallenge, error) {
	var challenge models.LoginChallenge
	err := r.db.
		Where("id = ? AND consumed_at IS NULL AND expires_at > ?", id, now).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *loginChallengeRepository) IncrementFailedAttempts(id uuid.UUID) error {
	return r.db.Model(&models.LoginChallenge{}).
		Where("id = ?", id).
		UpdateColumn("failed_attempts", gorm.Expr("failed_attempts + 1")).Error
}

func (r *loginChallengeRepository) MarkConsumed(id uuid.UUID, consumedAt time.Time) error {
	return r.db.Model(&models.LoginChallenge{}).
		Where("id = ?", id).
		Update("consumed_at", consumedAt).Error
}

func (r *loginChallengeRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	res := r.db.Delete(&models.LoginChallenge{}, "expires_at < ? OR consumed_at IS NOT NULL", cutoff)
	return res.RowsAffected, res.Error
}
