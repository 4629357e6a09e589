package repositories

import (
	"errors"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAdminUserRepository implements AdminUserRepository using GORM.
type GormAdminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

func (r *GormAdminUserRepository) GetByID(id uuid.UUID) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetActiveByUsername returns (nil, nil) for unknown and inactive usernames
// alike; callers cannot tell the two apart.
func (r *GormAdminUserRepository) GetActiveByUsername(username string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.First(&user, "username = ? AND is_active = ?", username, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormAdminUserRepository) Create(user *models.AdminUser) error {
	return r.db.Create(user).Error
}

func (r *GormAdminUserRepository) Update(user *models.AdminUser) error {
	return r.db.Save(user).Error
}

func (r *GormAdminUserRepository) UpdatePasswordHash(id uuid.UUID, hash string) error {
	return r.db.Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *GormAdminUserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

func (r *GormAdminUserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
