package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/models"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTooManyAttempts       = errors.New("too many failed login attempts, try again later")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrPasswordTooShort      = errors.New("password too short, minimum 8 characters required")
	ErrInvalidCSRFToken      = errors.New("invalid csrf token")
	ErrUserNotFound          = errors.New("user not found")
	ErrTOTPNotEnabled        = errors.New("totp not enabled")
	ErrTOTPSecretNotCreated  = errors.New("totp secret not created")
	ErrInvalidTOTPCode       = errors.New("invalid totp code")
	ErrLoginChallengeExpired = errors.New("login challenge expired")
)

const bcryptCost = 12

// AuthService owns the admin authentication state machine: credential
// verification, server-side sessions, per-session CSRF tokens and the
// optional TOTP second factor.
type AuthService struct {
	users      repositories.AdminUserRepository
	sessions   repositories.SessionRepository
	challenges repositories.LoginChallengeRepository
	guard      *BruteForceGuard
	activity   *ActivityLogger
	cfg        *config.Config

	sessionTimeout time.Duration
	challengeTTL   time.Duration
}

// LoginResult is what a password check yields: either an established session,
// or a pending TOTP challenge when the account has a second factor.
type LoginResult struct {
	User         *models.AdminUser
	Session      *models.Session
	TOTPRequired bool
	ChallengeID  uuid.UUID
}

func NewAuthService(
	users repositories.AdminUserRepository,
	sessions repositories.SessionRepository,
	challenges repositories.LoginChallengeRepository,
	guard *BruteForceGuard,
	activity *ActivityLogger,
	cfg *config.Config,
) *AuthService {
	timeout, err := cfg.Auth.GetSessionTimeout()
	if err != nil || timeout <= 0 {
		timeout = time.Hour
	}
	return &AuthService{
		users:          users,
		sessions:       sessions,
		challenges:     challenges,
		guard:          guard,
		activity:       activity,
		cfg:            cfg,
		sessionTimeout: timeout,
		challengeTTL:   5 * time.Minute,
	}
}

// Login verifies the credentials and either establishes a session or, for
// TOTP-enabled accounts, hands back a short-lived challenge. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(username, password, sourceAddress, userAgent string) (*LoginResult, error) {
	if s.guard.IsBlocked(username, sourceAddress) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.users.GetActiveByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.guard.RecordFailure(username, sourceAddress)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.guard.RecordFailure(username, sourceAddress)
		return nil, ErrInvalidCredentials
	}

	if user.TOTPEnabled != nil && *user.TOTPEnabled {
		challenge, err := s.challenges.Create(user.ID, s.challengeTTL)
		if err != nil {
			return nil, err
		}
		return &LoginResult{User: user, TOTPRequired: true, ChallengeID: challenge.ID}, nil
	}

	return s.establishSession(user, sourceAddress, userAgent)
}

// LoginWithTOTP consumes a pending challenge and establishes the session.
func (s *AuthService) LoginWithTOTP(challengeID uuid.UUID, code, sourceAddress, userAgent string) (*LoginResult, error) {
	now := time.Now().UTC()
	challenge, err := s.challenges.GetActiveByID(challengeID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoginChallengeExpired
		}
		return nil, err
	}

	user, err := s.users.GetByID(challenge.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if user.TOTPEnabled == nil || !*user.TOTPEnabled {
		return nil, ErrTOTPNotEnabled
	}
	if user.TOTPSecret == nil {
		return nil, ErrTOTPSecretNotCreated
	}

	if !s.validateTOTP(*user.TOTPSecret, code) {
		_ = s.challenges.IncrementFailedAttempts(challenge.ID)
		return nil, ErrInvalidTOTPCode
	}

	if err := s.challenges.MarkConsumed(challenge.ID, now); err != nil {
		return nil, err
	}

	return s.establishSession(user, sourceAddress, userAgent)
}

// establishSession mints a brand-new session identifier on every privilege
// transition, which is what defeats session fixation.
func (s *AuthService) establishSession(user *models.AdminUser, sourceAddress, userAgent string) (*LoginResult, error) {
	now := time.Now().UTC()
	session, err := s.sessions.Create(user.ID, now)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(user.ID, now); err != nil {
		log.Printf("failed to update last login for %s: %v", user.Username, err)
	}
	s.activity.Record(user.ID, models.ActionLogin, "admin login", sourceAddress, userAgent)

	return &LoginResult{User: user, Session: session}, nil
}

// CheckAuthenticated resolves a session cookie value to an admin user. An idle
// session past the timeout is torn down and reported as nonexistent; a live
// one has its last-activity refreshed, silently extending it.
func (s *AuthService) CheckAuthenticated(sessionID uuid.UUID) (*models.AdminUser, *models.Session, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrNotAuthenticated
	}

	now := time.Now().UTC()
	if session.IdleExpired(now, s.sessionTimeout) {
		if err := s.sessions.Delete(session.ID); err != nil {
			log.Printf("failed to delete expired session: %v", err)
		}
		return nil, nil, ErrNotAuthenticated
	}

	if err := s.sessions.Touch(session.ID, now); err != nil {
		return nil, nil, err
	}
	session.LastActivityAt = now

	user, err := s.users.GetByID(session.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		_ = s.sessions.Delete(session.ID)
		return nil, nil, ErrNotAuthenticated
	}

	return user, session, nil
}

// Logout is idempotent: an unknown or already-removed session is a no-op.
func (s *AuthService) Logout(sessionID uuid.UUID, sourceAddress, userAgent string) error {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	s.activity.Record(session.UserID, models.ActionLogout, "admin logout", sourceAddress, userAgent)
	return s.sessions.Delete(session.ID)
}

// ChangePassword re-verifies the current password before accepting a new one.
// Callers are expected to already hold a valid session for userID.
func (s *AuthService) ChangePassword(userID uuid.UUID, oldPassword, newPassword, sourceAddress, userAgent string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		return err
	}

	s.activity.Record(user.ID, models.ActionPasswordChange, "password changed", sourceAddress, userAgent)
	return nil
}

// EmergencyReset bypasses sessions entirely. Access control (the source
// address allow-list) happens before this is reached.
func (s *AuthService) EmergencyReset(username, newPassword, sourceAddress, userAgent string) error {
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetActiveByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		return err
	}

	s.activity.Record(user.ID, models.ActionPasswordReset,
		fmt.Sprintf("emergency reset from %s", sourceAddress), sourceAddress, userAgent)
	return nil
}

// CSRFToken returns the session's anti-forgery token, generating it on first
// access. Tokens rotate per session, not per request.
func (s *AuthService) CSRFToken(sessionID uuid.UUID) (string, error) {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		return "", err
	}
	if session == nil {
		return "", ErrNotAuthenticated
	}

	if session.CSRFToken == "" {
		token := generateSecureToken(32)
		if err := s.sessions.SetCSRFToken(session.ID, token); err != nil {
			return "", err
		}
		session.CSRFToken = token
	}
	return session.CSRFToken, nil
}

// ValidateCSRF compares the supplied header token against the session's token
// in constant time. A session that never fetched a token has an empty stored
// token and cannot match anything.
func (s *AuthService) ValidateCSRF(stored, supplied string) error {
	if stored == "" || supplied == "" {
		return ErrInvalidCSRFToken
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) != 1 {
		return ErrInvalidCSRFToken
	}
	return nil
}

// SessionTimeout exposes the idle timeout for cookie handling.
func (s *AuthService) SessionTimeout() time.Duration {
	return s.sessionTimeout
}
