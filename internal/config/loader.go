// Package config loads environment driven settings for the worktime
// calendar service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	Password        string
	SessionTTL      time.Duration
	Timezone        string
	WeekDays        int
	DayCapHours     float64
	WeekCapHours    float64
	EarlyCapHours   float64
	WeekendCapHours float64
	MaxBlockHours   float64
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating required
// values and reporting every missing or malformed entry at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:     3000,
		SQLiteDSN:    "file:worktime.db",
		SessionTTL:   time.Hour,
		Timezone:     "Europe/Brussels",
		WeekDays:     5,
		DayCapHours:  8,
		WeekCapHours: 40,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("WORKTIME_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "WORKTIME_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("WORKTIME_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if password := strings.TrimSpace(os.Getenv("WORKTIME_PASSWORD")); password == "" {
		missing = append(missing, "WORKTIME_PASSWORD")
	} else {
		cfg.Password = password
	}

	if ttlValue := strings.TrimSpace(os.Getenv("WORKTIME_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "WORKTIME_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if zone := strings.TrimSpace(os.Getenv("WORKTIME_TIMEZONE")); zone != "" {
		cfg.Timezone = zone
	}

	if daysValue := strings.TrimSpace(os.Getenv("WORKTIME_WEEK_DAYS")); daysValue != "" {
		days, err := strconv.Atoi(daysValue)
		if err != nil || (days != 5 && days != 7) {
			invalid = append(invalid, "WORKTIME_WEEK_DAYS")
		} else {
			cfg.WeekDays = days
		}
	}

	parseHours := func(name string, target *float64, allowZero bool) {
		value := strings.TrimSpace(os.Getenv(name))
		if value == "" {
			return
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil || hours < 0 || (!allowZero && hours == 0) {
			invalid = append(invalid, name)
			return
		}
		*target = hours
	}

	parseHours("WORKTIME_DAY_CAP_HOURS", &cfg.DayCapHours, false)
	parseHours("WORKTIME_WEEK_CAP_HOURS", &cfg.WeekCapHours, false)
	parseHours("WORKTIME_EARLY_CAP_HOURS", &cfg.EarlyCapHours, true)
	parseHours("WORKTIME_WEEKEND_CAP_HOURS", &cfg.WeekendCapHours, true)
	parseHours("WORKTIME_MAX_BLOCK_HOURS", &cfg.MaxBlockHours, true)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
