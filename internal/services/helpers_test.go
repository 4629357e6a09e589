package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

type mockUserRepo struct {
	getByIDFunc             func(id uuid.UUID) (*models.AdminUser, error)
	getActiveByUsernameFunc func(username string) (*models.AdminUser, error)
	createFunc              func(user *models.AdminUser) error
	updateFunc              func(user *models.AdminUser) error
	updatePasswordHashFunc  func(id uuid.UUID, hash string) error
	updateLastLoginFunc     func(id uuid.UUID, at time.Time) error
	existsByUsernameFunc    func(username string) (bool, error)
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.AdminUser, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockUserRepo) GetActiveByUsername(username string) (*models.AdminUser, error) {
	if m.getActiveByUsernameFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getActiveByUsernameFunc(username)
}

func (m *mockUserRepo) Create(user *models.AdminUser) error {
	if m.createFunc == nil {
		return errors.New("not implemented")
	}
	return m.createFunc(user)
}

func (m *mockUserRepo) Update(user *models.AdminUser) error {
	if m.updateFunc == nil {
		return errors.New("not implemented")
	}
	return m.updateFunc(user)
}

func (m *mockUserRepo) UpdatePasswordHash(id uuid.UUID, hash string) error {
	if m.updatePasswordHashFunc == nil {
		return errors.New("not implemented")
	}
	return m.updatePasswordHashFunc(id, hash)
}

func (m *mockUserRepo) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	if m.updateLastLoginFunc == nil {
		return nil
	}
	return m.updateLastLoginFunc(id, at)
}

func (m *mockUserRepo) ExistsByUsername(username string) (bool, error) {
	if m.existsByUsernameFunc == nil {
		return false, errors.New("not implemented")
	}
	return m.existsByUsernameFunc(username)
}

type mockSessionRepo struct {
	createFunc           func(userID uuid.UUID, now time.Time) (*models.Session, error)
	getByIDFunc          func(id uuid.UUID) (*models.Session, error)
	touchFunc            func(id uuid.UUID, at time.Time) error
	setCSRFTokenFunc     func(id uuid.UUID, token string) error
	deleteFunc           func(id uuid.UUID) error
	deleteIdleBeforeFunc func(cutoff time.Time) (int64, error)
}

func (m *mockSessionRepo) Create(userID uuid.UUID, now time.Time) (*models.Session, error) {
	if m.createFunc == nil {
		return &models.Session{ID: uuid.New(), UserID: userID, LoginAt: now, LastActivityAt: now}, nil
	}
	return m.createFunc(userID, now)
}

func (m *mockSessionRepo) GetByID(id uuid.UUID) (*models.Session, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getByIDFunc(id)
}

func (m *mockSessionRepo) Touch(id uuid.UUID, at time.Time) error {
	if m.touchFunc == nil {
		return nil
	}
	return m.touchFunc(id, at)
}

func (m *mockSessionRepo) SetCSRFToken(id uuid.UUID, token string) error {
	if m.setCSRFTokenFunc == nil {
		return nil
	}
	return m.setCSRFTokenFunc(id, token)
}

func (m *mockSessionRepo) Delete(id uuid.UUID) error {
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(id)
}

func (m *mockSessionRepo) DeleteIdleBefore(cutoff time.Time) (int64, error) {
	if m.deleteIdleBeforeFunc == nil {
		return 0, nil
	}
	return m.deleteIdleBeforeFunc(cutoff)
}

type mockAttemptRepo struct {
	countSinceFunc   func(username, sourceAddress string, since time.Time) (int64, error)
	recordFunc       func(username, sourceAddress string, at time.Time) error
	deleteBeforeFunc func(cutoff time.Time) (int64, error)
}

func (m *mockAttemptRepo) CountSince(username, sourceAddress string, since time.Time) (int64, error) {
	if m.countSinceFunc == nil {
		return 0, nil
	}
	return m.countSinceFunc(username, sourceAddress, since)
}

func (m *mockAttemptRepo) Record(username, sourceAddress string, at time.Time) error {
	if m.recordFunc == nil {
		return nil
	}
	return m.recordFunc(username, sourceAddress, at)
}

func (m *mockAttemptRepo) DeleteBefore(cutoff time.Time) (int64, error) {
	if m.deleteBeforeFunc == nil {
		return 0, nil
	}
	return m.deleteBeforeFunc(cutoff)
}

type mockChallengeRepo struct {
	createFunc              func(userID uuid.UUID, ttl time.Duration) (*models.LoginChallenge, error)
	getActiveByIDFunc       func(id uuid.UUID, now time.Time) (*models.LoginChallenge, error)
	incrementFailedFunc     func(id uuid.UUID) error
	markConsumedFunc        func(id uuid.UUID, consumedAt time.Time) error
	deleteExpiredBeforeFunc func(cutoff time.Time) (int64, error)
}

func (m *mockChallengeRepo) Create(userID uuid.UUID, ttl time.Duration) (*models.LoginChallenge, error) {
	if m.createFunc == nil {
		return &models.LoginChallenge{ID: uuid.New(), UserID: userID, ExpiresAt: time.Now().Add(ttl)}, nil
	}
	return m.createFunc(userID, ttl)
}

func (m *mockChallengeRepo) GetActiveByID(id uuid.UUID, now time.Time) (*models.LoginChallenge, error) {
	if m.getActiveByIDFunc == nil {
		return nil, errors.New("not implemented")
	}
	return m.getActiveByIDFunc(id, now)
}

func (m *mockChallengeRepo) IncrementFailedAttempts(id uuid.UUID) error {
	if m.incrementFailedFunc == nil {
		return nil
	}
	return m.incrementFailedFunc(id)
}

func (m *mockChallengeRepo) MarkConsumed(id uuid.UUID, consumedAt time.Time) error {
	if m.markConsumedFunc == nil {
		return nil
	}
	return m.markConsumedFunc(id, consumedAt)
}

func (m *mockChallengeRepo) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	if m.deleteExpiredBeforeFunc == nil {
		return 0, nil
	}
	return m.deleteExpiredBeforeFunc(cutoff)
}

type mockActivityRepo struct {
	appendFunc     func(entry *models.ActivityLogEntry) error
	listRecentFunc func(limit int) ([]models.ActivityLogEntry, error)
}

func (m *mockActivityRepo) Append(entry *models.ActivityLogEntry) error {
	if m.appendFunc == nil {
		return nil
	}
	return m.appendFunc(entry)
}

func (m *mockActivityRepo) ListRecent(limit int) ([]models.ActivityLogEntry, error) {
	if m.listRecentFunc == nil {
		return nil, nil
	}
	return m.listRecentFunc(limit)
}

func newAuthTestConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			SessionTimeout:   "1h",
			BruteForceWindow: "15m",
			MaxFailedLogins:  5,
			CookieName:       "cms_session",
		},
		TOTP: config.TOTPConfig{
			Issuer: "Test CMS",
			Period: 30,
			Digits: 6,
		},
	}
}

type authFixture struct {
	users      *mockUserRepo
	sessions   *mockSessionRepo
	attempts   *mockAttemptRepo
	challenges *mockChallengeRepo
	activity   *mockActivityRepo
	service    *services.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:      &mockUserRepo{},
		sessions:   &mockSessionRepo{},
		attempts:   &mockAttemptRepo{},
		challenges: &mockChallengeRepo{},
		activity:   &mockActivityRepo{},
	}
	var _ repositories.AdminUserRepository = f.users
	guard := services.NewBruteForceGuard(f.attempts, 15*time.Minute, 5)
	logger := services.NewActivityLogger(f.activity)
	f.service = services.NewAuthService(f.users, f.sessions, f.challenges, guard, logger, newAuthTestConfig())
	return f
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func activeAdmin(t *testing.T, username, password string) *models.AdminUser {
	t.Helper()
	return &models.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashPassword(t, password),
		IsActive:     true,
	}
}
