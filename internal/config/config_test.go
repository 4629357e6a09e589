package config

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"30m", 30 * time.Minute},
		{"1h", time.Hour},
		{"90s", 90 * time.Second},
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := parseDuration(tc.in)
		if err != nil {
			t.Errorf("parseDuration(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"xd", "abc", "1w"} {
		if _, err := parseDuration(in); err == nil {
			t.Errorf("parseDuration(%q) should fail", in)
		}
	}
}

func TestAuthConfigAccessors(t *testing.T) {
	cfg := AuthConfig{SessionTimeout: "1h", BruteForceWindow: "15m"}

	timeout, err := cfg.GetSessionTimeout()
	if err != nil || timeout != time.Hour {
		t.Fatalf("GetSessionTimeout = %v, %v", timeout, err)
	}
	window, err := cfg.GetBruteForceWindow()
	if err != nil || window != 15*time.Minute {
		t.Fatalf("GetBruteForceWindow = %v, %v", window, err)
	}
}

func TestTunePoolRejectsBadLifetime(t *testing.T) {
	cfg := DatabaseConfig{MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: "xd"}
	if err := cfg.TunePool(nil); err == nil {
		t.Fatal("an unparseable conn_max_lifetime must be rejected")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "cms", Password: "secret",
		Name: "eastafricom_cms", SSLMode: "disable", Timezone: "UTC",
	}
	want := "host=db port=5432 user=cms password=secret dbname=eastafricom_cms sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("GetDSN = %q, want %q", got, want)
	}

	wantURL := "postgres://cms:secret@db:5432/eastafricom_cms?sslmode=disable"
	if got := cfg.GetURL(); got != wantURL {
		t.Fatalf("GetURL = %q, want %q", got, wantURL)
	}
}
