package repositories_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
)

func newAuthDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.AdminUser{},
		&models.Session{},
		&models.LoginAttempt{},
		&models.LoginChallenge{},
		&models.ActivityLogEntry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestSessionLifecycle(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewSessionRepository(db)

	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	session, err := repo.Create(userID, now)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.ID == uuid.Nil {
		t.Fatal("session must get an id")
	}

	got, err := repo.GetByID(session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.UserID != userID {
		t.Fatalf("wrong session loaded: %+v", got)
	}

	later := now.Add(10 * time.Minute)
	if err := repo.Touch(session.ID, later); err != nil {
		t.Fatalf("touch failed: %v", err)
	}
	got, err = repo.GetByID(session.ID)
	if err != nil {
		t.Fatalf("get after touch failed: %v", err)
	}
	if !got.LastActivityAt.After(now.Add(-time.Second)) || got.LastActivityAt.Before(later.Add(-time.Second)) {
		t.Fatalf("touch did not advance last activity: %v", got.LastActivityAt)
	}

	if err := repo.Delete(session.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err = repo.GetByID(session.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Fatal("deleted session must read as missing, not an error")
	}
}

func TestSessionCSRFTokenPersists(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewSessionRepository(db)

	session, err := repo.Create(uuid.New(), time.Now().UTC())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.SetCSRFToken(session.ID, "csrf-token-value"); err != nil {
		t.Fatalf("set token failed: %v", err)
	}
	got, err := repo.GetByID(session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.CSRFToken != "csrf-token-value" {
		t.Fatalf("token not persisted, got %q", got.CSRFToken)
	}
}

func TestSessionDeleteIdleBefore(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewSessionRepository(db)

	now := time.Now().UTC()
	fresh, err := repo.Create(uuid.New(), now)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	stale, err := repo.Create(uuid.New(), now.Add(-3*time.Hour))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	removed, err := repo.DeleteIdleBefore(now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}

	if got, _ := repo.GetByID(stale.ID); got != nil {
		t.Fatal("stale session should be gone")
	}
	if got, _ := repo.GetByID(fresh.ID); got == nil {
		t.Fatal("fresh session should survive")
	}
}

func TestLoginAttemptCounting(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewLoginAttemptRepository(db)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if err := repo.Record("admin", "1.2.3.4", now); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}
	// A different pair must not count toward the first.
	if err := repo.Record("admin", "5.6.7.8", now); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := repo.Record("other", "1.2.3.4", now.Add(-time.Hour)); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	count, err := repo.CountSince("admin", "1.2.3.4", now.Add(-15*time.Minute))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 attempts for the pair, got %d", count)
	}

	removed, err := repo.DeleteBefore(now.Add(-30 * time.Minute))
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 aged-out row removed, got %d", removed)
	}
}

func TestLoginChallengeLifecycle(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewLoginChallengeRepository(db)

	userID := uuid.New()
	challenge, err := repo.Create(userID, 5*time.Minute)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now().UTC()
	got, err := repo.GetActiveByID(challenge.ID, now)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.UserID != userID {
		t.Fatalf("wrong challenge loaded: %+v", got)
	}

	if err := repo.IncrementFailedAttempts(challenge.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	got, err = repo.GetActiveByID(challenge.ID, now)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.FailedAttempts != 1 {
		t.Fatalf("expected 1 failed attempt, got %d", got.FailedAttempts)
	}

	if err := repo.MarkConsumed(challenge.ID, now); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if _, err := repo.GetActiveByID(challenge.ID, now); err == nil {
		t.Fatal("a consumed challenge must not be active")
	}
}

func TestLoginChallengeExpiry(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewLoginChallengeRepository(db)

	challenge, err := repo.Create(uuid.New(), time.Millisecond)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	future := time.Now().UTC().Add(time.Minute)
	if _, err := repo.GetActiveByID(challenge.ID, future); err == nil {
		t.Fatal("an expired challenge must not be active")
	}

	removed, err := repo.DeleteExpiredBefore(future)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 expired challenge removed, got %d", removed)
	}
}

func TestAdminUserActiveFilter(t *testing.T) {
	db := newAuthDB(t)
	repo := repositories.NewAdminUserRepository(db)

	active := &models.AdminUser{Username: "active-admin", PasswordHash: "x", IsActive: true}
	inactive := &models.AdminUser{Username: "former-admin", PasswordHash: "x", IsActive: true}
	if err := repo.Create(active); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(inactive); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	inactive.IsActive = false
	if err := repo.Update(inactive); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	got, err := repo.GetActiveByUsername("active-admin")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got == nil {
		t.Fatal("active admin should resolve")
	}

	// Inactive and unknown accounts look identical to the caller.
	got, err = repo.GetActiveByUsername("former-admin")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != nil {
		t.Fatal("inactive admin must not resolve")
	}
	got, err = repo.GetActiveByUsername("ghost")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != nil {
		t.Fatal("unknown admin must not resolve")
	}
}
