package config

import (
	"os"
	"testing"
	"time"
)

var allKeys = []string{
	"WORKTIME_HTTP_PORT",
	"WORKTIME_SQLITE_DSN",
	"WORKTIME_PASSWORD",
	"WORKTIME_SESSION_TTL",
	"WORKTIME_TIMEZONE",
	"WORKTIME_WEEK_DAYS",
	"WORKTIME_DAY_CAP_HOURS",
	"WORKTIME_WEEK_CAP_HOURS",
	"WORKTIME_EARLY_CAP_HOURS",
	"WORKTIME_WEEKEND_CAP_HOURS",
	"WORKTIME_MAX_BLOCK_HOURS",
}

func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("WORKTIME_PASSWORD", "letmein")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 3000 {
			t.Fatalf("expected default HTTP port 3000, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:worktime.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.Password != "letmein" {
			t.Fatalf("expected password to be kept, got %q", cfg.Password)
		}
		if cfg.SessionTTL != time.Hour {
			t.Fatalf("expected default TTL 1h, got %v", cfg.SessionTTL)
		}
		if cfg.Timezone != "Europe/Brussels" {
			t.Fatalf("unexpected default timezone: %q", cfg.Timezone)
		}
		if cfg.WeekDays != 5 || cfg.DayCapHours != 8 || cfg.WeekCapHours != 40 {
			t.Fatalf("unexpected default policy values: %+v", cfg)
		}
		if cfg.EarlyCapHours != 0 || cfg.WeekendCapHours != 0 || cfg.MaxBlockHours != 0 {
			t.Fatalf("expected optional caps disabled by default: %+v", cfg)
		}
	})

	t.Run("errors when the password is missing", func(t *testing.T) {
		clearEnvironment(t)

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error when required values are missing")
		}
		expected := "missing required environment variables: WORKTIME_PASSWORD"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses overrides", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("WORKTIME_PASSWORD", "letmein")
		t.Setenv("WORKTIME_HTTP_PORT", "8081")
		t.Setenv("WORKTIME_SQLITE_DSN", "file:/tmp/cal.db")
		t.Setenv("WORKTIME_SESSION_TTL", "30m")
		t.Setenv("WORKTIME_TIMEZONE", "UTC")
		t.Setenv("WORKTIME_WEEK_DAYS", "7")
		t.Setenv("WORKTIME_DAY_CAP_HOURS", "10")
		t.Setenv("WORKTIME_WEEK_CAP_HOURS", "45")
		t.Setenv("WORKTIME_EARLY_CAP_HOURS", "4")
		t.Setenv("WORKTIME_WEEKEND_CAP_HOURS", "5")
		t.Setenv("WORKTIME_MAX_BLOCK_HOURS", "8")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8081 || cfg.SQLiteDSN != "file:/tmp/cal.db" {
			t.Fatalf("unexpected overrides: %+v", cfg)
		}
		if cfg.SessionTTL != 30*time.Minute || cfg.Timezone != "UTC" {
			t.Fatalf("unexpected overrides: %+v", cfg)
		}
		if cfg.WeekDays != 7 || cfg.DayCapHours != 10 || cfg.WeekCapHours != 45 {
			t.Fatalf("unexpected policy overrides: %+v", cfg)
		}
		if cfg.EarlyCapHours != 4 || cfg.WeekendCapHours != 5 || cfg.MaxBlockHours != 8 {
			t.Fatalf("unexpected cap overrides: %+v", cfg)
		}
	})

	t.Run("collects invalid values", func(t *testing.T) {
		clearEnvironment(t)
		t.Setenv("WORKTIME_PASSWORD", "letmein")
		t.Setenv("WORKTIME_HTTP_PORT", "zero")
		t.Setenv("WORKTIME_WEEK_DAYS", "6")

		_, err := Load()
		if err == nil {
			t.Fatalf("expected error for invalid values")
		}
		expected := "invalid environment variable values: WORKTIME_HTTP_PORT, WORKTIME_WEEK_DAYS"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})
}
