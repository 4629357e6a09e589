package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
)

func TestGuardBlocksAtLimit(t *testing.T) {
	attempts := &mockAttemptRepo{}
	guard := services.NewBruteForceGuard(attempts, 15*time.Minute, 5)

	attempts.countSinceFunc = func(string, string, time.Time) (int64, error) { return 4, nil }
	if guard.IsBlocked("admin", "1.2.3.4") {
		t.Fatal("4 failures must not block")
	}

	attempts.countSinceFunc = func(string, string, time.Time) (int64, error) { return 5, nil }
	if !guard.IsBlocked("admin", "1.2.3.4") {
		t.Fatal("5 failures must block")
	}
}

func TestGuardWindowBoundsCount(t *testing.T) {
	attempts := &mockAttemptRepo{}
	guard := services.NewBruteForceGuard(attempts, 15*time.Minute, 5)

	var since time.Time
	attempts.countSinceFunc = func(username, source string, s time.Time) (int64, error) {
		since = s
		return 0, nil
	}
	guard.IsBlocked("admin", "1.2.3.4")

	age := time.Now().UTC().Sub(since)
	if age < 14*time.Minute || age > 16*time.Minute {
		t.Fatalf("count window should trail by ~15m, got %v", age)
	}
}

func TestGuardFailsOpenOnCountError(t *testing.T) {
	attempts := &mockAttemptRepo{
		countSinceFunc: func(string, string, time.Time) (int64, error) {
			return 0, errors.New("store down")
		},
	}
	guard := services.NewBruteForceGuard(attempts, 15*time.Minute, 5)
	if guard.IsBlocked("admin", "1.2.3.4") {
		t.Fatal("a degraded store must not lock admins out")
	}
}

func TestGuardRecordFailurePrunes(t *testing.T) {
	pruned := false
	recorded := false
	attempts := &mockAttemptRepo{
		deleteBeforeFunc: func(cutoff time.Time) (int64, error) {
			pruned = true
			return 3, nil
		},
		recordFunc: func(username, source string, at time.Time) error {
			recorded = true
			return nil
		},
	}
	guard := services.NewBruteForceGuard(attempts, 15*time.Minute, 5)
	guard.RecordFailure("admin", "1.2.3.4")

	if !pruned {
		t.Fatal("RecordFailure must prune rows outside the window")
	}
	if !recorded {
		t.Fatal("RecordFailure must append the new attempt")
	}
}

func TestGuardSwallowsWriteErrors(t *testing.T) {
	attempts := &mockAttemptRepo{
		deleteBeforeFunc: func(time.Time) (int64, error) { return 0, errors.New("prune failed") },
		recordFunc:       func(string, string, time.Time) error { return errors.New("write failed") },
	}
	guard := services.NewBruteForceGuard(attempts, 15*time.Minute, 5)
	// Must not panic or propagate; failures here only weaken throttling.
	guard.RecordFailure("admin", "1.2.3.4")
}
