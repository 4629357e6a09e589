package repositories

import (
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/google/uuid"
)

type AdminUserRepository interface {
	GetByID(id uuid.UUID) (*models.AdminUser, error)
	GetActiveByUsername(username string) (*models.AdminUser, error)
	Create(user *models.AdminUser) error
	Update(user *models.AdminUser) error
	UpdatePasswordHash(id uuid.UUID, hash string) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	ExistsByUsername(username string) (bool, error)
}
