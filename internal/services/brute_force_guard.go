package services

import (
	"log"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
)

// BruteForceGuard is a fixed-window counter of failed logins per
// (username, source address) pair. It is consulted before every password
// verification and written only after a failed one.
type BruteForceGuard struct {
	attempts    repositories.LoginAttemptRepository
	window      time.Duration
	maxAttempts int
}

func NewBruteForceGuard(attempts repositories.LoginAttemptRepository, window time.Duration, maxAttempts int) *BruteForceGuard {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &BruteForceGuard{
		attempts:    attempts,
		window:      window,
		maxAttempts: maxAttempts,
	}
}

// IsBlocked reports whether the pair has reached the attempt limit inside the
// trailing window. When the count itself fails the guard fails open:
// availability wins over throttling while the store is degraded.
func (g *BruteForceGuard) IsBlocked(username, sourceAddress string) bool {
	since := time.Now().UTC().Add(-g.window)
	count, err := g.attempts.CountSince(username, sourceAddress, since)
	if err != nil {
		log.Printf("brute-force guard count failed, failing open: %v", err)
		return false
	}
	return count >= int64(g.maxAttempts)
}

// RecordFailure appends one attempt row and prunes rows that have aged out of
// the window, so the table cannot grow without bound.
func (g *BruteForceGuard) RecordFailure(username, sourceAddress string) {
	now := time.Now().UTC()
	if _, err := g.attempts.DeleteBefore(now.Add(-g.window)); err != nil {
		log.Printf("failed to prune stale login attempts: %v", err)
	}
	if err := g.attempts.Record(username, sourceAddress, now); err != nil {
		log.Printf("failed to record login attempt: %v", err)
	}
}
