package services

import (
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
)

// MaintenanceService prunes the auth subsystem's transient rows. Exposed via
// the cron-secret-guarded cleanup endpoint.
type MaintenanceService struct {
	sessions   repositories.SessionRepository
	attempts   repositories.LoginAttemptRepository
	challenges repositories.LoginChallengeRepository

	sessionTimeout   time.Duration
	bruteForceWindow time.Duration
}

func NewMaintenanceService(
	sessions repositories.SessionRepository,
	attempts repositories.LoginAttemptRepository,
	challenges repositories.LoginChallengeRepository,
	sessionTimeout, bruteForceWindow time.Duration,
) *MaintenanceService {
	return &MaintenanceService{
		sessions:         sessions,
		attempts:         attempts,
		challenges:       challenges,
		sessionTimeout:   sessionTimeout,
		bruteForceWindow: bruteForceWindow,
	}
}

type CleanupReport struct {
	SessionsRemoved   int64 `json:"sessions_removed"`
	AttemptsRemoved   int64 `json:"attempts_removed"`
	ChallengesRemoved int64 `json:"challenges_removed"`
}

// Cleanup removes idle-expired sessions, login attempts older than the
// brute-force window and spent TOTP challenges.
func (s *MaintenanceService) Cleanup() (*CleanupReport, error) {
	now := time.Now().UTC()
	report := &CleanupReport{}

	sessions, err := s.sessions.DeleteIdleBefore(now.Add(-s.sessionTimeout))
	if err != nil {
		return nil, err
	}
	report.SessionsRemoved = sessions

	attempts, err := s.attempts.DeleteBefore(now.Add(-s.bruteForceWindow))
	if err != nil {
		return nil, err
	}
	report.AttemptsRemoved = attempts

	challenges, err := s.challenges.DeleteExpiredBefore(now)
	if err != nil {
		return nil, err
	}
	report.ChallengesRemoved = challenges

	return report, nil
}
