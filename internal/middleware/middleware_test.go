package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

type authEnv struct {
	db      *gorm.DB
	service *services.AuthService
	cfg     *config.Config
	user    *models.AdminUser
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SessionTimeout:   "1h",
			BruteForceWindow: "15m",
			MaxFailedLogins:  5,
			CookieName:       "cms_session",
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	user := &models.AdminUser{Username: "admin", PasswordHash: string(hash), IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}

	userRepo := repositories.NewAdminUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	attemptRepo := repositories.NewLoginAttemptRepository(db)
	challengeRepo := repositories.NewLoginChallengeRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	guard := services.NewBruteForceGuard(attemptRepo, 15*time.Minute, 5)
	activity := services.NewActivityLogger(activityRepo)
	service := services.NewAuthService(userRepo, sessionRepo, challengeRepo, guard, activity, cfg)

	return &authEnv{db: db, service: service, cfg: cfg, user: user}
}

func (e *authEnv) login(t *testing.T) *models.Session {
	t.Helper()
	result, err := e.service.Login("admin", "correct-horse-battery", "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return result.Session
}

func protectedRouter(e *authEnv) *gin.Engine {
	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(middleware.SessionAuth(e.service, &e.cfg.Auth))
	admin.Use(middleware.RequireCSRF(e.service))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	admin.POST("/mutate", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"done": true})
	})
	return router
}

func TestSessionAuthMissingCookie(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a cookie, got %d", w.Code)
	}
}

func TestSessionAuthGarbageCookie(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: "not-a-uuid"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a malformed cookie, got %d", w.Code)
	}
}

func TestSessionAuthUnknownSession(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: uuid.NewString()})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unknown session, got %d", w.Code)
	}
}

func TestSessionAuthValidCookie(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)
	session := env.login(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: session.ID.String()})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a live session, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCSRFSafeMethodPasses(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)
	session := env.login(t)

	// GET needs no CSRF header.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: session.ID.String()})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for GET, got %d", w.Code)
	}
}

func TestCSRFMutationRequiresToken(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)
	session := env.login(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/mutate", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: session.ID.String()})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without a CSRF token, got %d", w.Code)
	}
}

func TestCSRFMutationWithToken(t *testing.T) {
	env := newAuthEnv(t)
	router := protectedRouter(env)
	session := env.login(t)

	token, err := env.service.CSRFToken(session.ID)
	if err != nil {
		t.Fatalf("token fetch failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/mutate", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: session.ID.String()})
	req.Header.Set(middleware.CSRFHeader, token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with a valid token, got %d: %s", w.Code, w.Body.String())
	}

	// A wrong token is still rejected.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/mutate", nil)
	req.AddCookie(&http.Cookie{Name: "cms_session", Value: session.ID.String()})
	req.Header.Set(middleware.CSRFHeader, "forged-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with a forged token, got %d", w.Code)
	}
}

func TestEmergencyResetAllowlist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.EmergencyResetConfig{
		Enabled:          true,
		AllowedAddresses: []string{"10.1.2.3"},
	}
	router := gin.New()
	router.POST("/reset", middleware.EmergencyResetAllowlist(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.RemoteAddr = "10.1.2.3:55000"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("allowlisted address should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.RemoteAddr = "10.9.9.9:55000"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("other addresses must see 404, got %d", w.Code)
	}

	cfg.Enabled = false
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/reset", nil)
	req.RemoteAddr = "10.1.2.3:55000"
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("disabled endpoint must see 404 even from the allowlist, got %d", w.Code)
	}
}

func TestCronSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.MaintenanceConfig{CronSecret: "cron-secret"}
	router := gin.New()
	router.POST("/cleanup", middleware.CronSecret(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	req.Header.Set("X-Cron-Secret", "cron-secret")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("correct secret should pass, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret must see 401, got %d", w.Code)
	}

	// An empty configured secret disables the endpoint entirely.
	cfg.CronSecret = ""
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unset secret must reject everything, got %d", w.Code)
	}
}
