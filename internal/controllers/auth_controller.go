package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/middleware"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

// AuthController handles admin login, session lifecycle and credential
// management.
type AuthController struct {
	auth     *services.AuthService
	activity *services.ActivityLogger
	cfg      *config.Config
	metrics  *metrics.Metrics
}

func NewAuthController(auth *services.AuthService, activity *services.ActivityLogger, cfg *config.Config, m *metrics.Metrics) *AuthController {
	return &AuthController{auth: auth, activity: activity, cfg: cfg, metrics: m}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login - authenticate an admin and establish a session
// POST /api/v1/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "username and password are required",
		})
		return
	}

	result, err := ac.auth.Login(req.Username, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		ac.respondLoginError(c, err)
		return
	}

	if result.TOTPRequired {
		c.JSON(http.StatusOK, gin.H{
			"totp_required": true,
			"challenge_id":  result.ChallengeID,
		})
		return
	}

	ac.countLogin("success")
	ac.setSessionCookie(c, result.Session.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user": gin.H{
			"id":       result.User.ID,
			"username": result.User.Username,
		},
	})
}

type totpLoginRequest struct {
	ChallengeID uuid.UUID `json:"challenge_id" binding:"required"`
	Code        string    `json:"code" binding:"required"`
}

// LoginTOTP - complete a two-factor login challenge
// POST /api/v1/auth/login/totp
func (ac *AuthController) LoginTOTP(c *gin.Context) {
	var req totpLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "challenge_id and code are required",
		})
		return
	}

	result, err := ac.auth.LoginWithTOTP(req.ChallengeID, req.Code, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginChallengeExpired):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Login challenge has expired, start over",
			})
		case errors.Is(err, services.ErrInvalidTOTPCode):
			ac.countLogin("failure")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Invalid verification code",
			})
		default:
			internalError(c)
		}
		return
	}

	ac.countLogin("success")
	ac.setSessionCookie(c, result.Session.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"user": gin.H{
			"id":       result.User.ID,
			"username": result.User.Username,
		},
	})
}

// Session - report the authenticated admin behind the current session
// GET /api/v1/admin/session
func (ac *AuthController) Session(c *gin.Context) {
	adminID, _ := c.Get(middleware.ContextAdminID)
	username, _ := c.Get(middleware.ContextAdminName)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       adminID,
			"username": username,
		},
	})
}

// Logout - terminate the current session
// POST /api/v1/admin/logout
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID := c.MustGet(middleware.ContextSessionID).(uuid.UUID)
	if err := ac.auth.Logout(sessionID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		internalError(c)
		return
	}
	ac.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CSRFToken - fetch (lazily creating) the session's CSRF token
// GET /api/v1/admin/csrf
func (ac *AuthController) CSRFToken(c *gin.Context) {
	sessionID := c.MustGet(middleware.ContextSessionID).(uuid.UUID)
	token, err := ac.auth.CSRFToken(sessionID)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"csrf_token": token})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword - rotate the admin's own password
// POST /api/v1/admin/password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "old_password and new_password are required",
		})
		return
	}

	adminID := c.MustGet(middleware.ContextAdminID).(uuid.UUID)
	err := ac.auth.ChangePassword(adminID, req.OldPassword, req.NewPassword, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Password must be at least 8 characters",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Current password is incorrect",
			})
		default:
			internalError(c)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

type emergencyResetRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// EmergencyReset - reset a password without a session; reachable only from
// allowlisted addresses
// POST /api/v1/auth/emergency-reset
func (ac *AuthController) EmergencyReset(c *gin.Context) {
	var req emergencyResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "username and new_password are required",
		})
		return
	}

	err := ac.auth.EmergencyReset(req.Username, req.NewPassword, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "Password must be at least 8 characters",
			})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Not Found",
				"message": "Unknown account",
			})
		default:
			internalError(c)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}

// ActivityLog - recent authentication and credential events
// GET /api/v1/admin/activity
func (ac *AuthController) ActivityLog(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	entries, err := ac.activity.Recent(limit)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (ac *AuthController) respondLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTooManyAttempts):
		ac.countLogin("blocked")
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":   "Too Many Requests",
			"message": "Too many failed attempts, try again later",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		ac.countLogin("failure")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Invalid username or password",
		})
	default:
		internalError(c)
	}
}

func (ac *AuthController) setSessionCookie(c *gin.Context, sessionID uuid.UUID) {
	// No Max-Age: the browser keeps the cookie for the browsing session and
	// the server decides expiry through the sliding idle window. A fixed
	// Max-Age would log out an active admin exactly one timeout after login.
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		ac.cfg.Auth.CookieName,
		sessionID.String(),
		0,
		"/",
		ac.cfg.Auth.CookieDomain,
		ac.cfg.Auth.CookieSecure,
		true,
	)
	if ac.metrics != nil {
		ac.metrics.SessionsActive.Inc()
	}
}

func (ac *AuthController) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cfg.Auth.CookieName, "", -1, "/", ac.cfg.Auth.CookieDomain, ac.cfg.Auth.CookieSecure, true)
	if ac.metrics != nil {
		ac.metrics.SessionsActive.Dec()
	}
}

func (ac *AuthController) countLogin(outcome string) {
	if ac.metrics != nil {
		ac.metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}
