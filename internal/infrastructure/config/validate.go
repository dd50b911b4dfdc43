package config

import (
	"errors"
	"fmt"
	"slices"
)

// validate reports every problem at once
func (c *Config) validate() error {
	var errs []error
	check := func(bad bool, format string, args ...any) {
		if bad {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	db := c.Database
	check(db.MaxOpenConns <= 0, "database.max_open_conns must be positive")
	check(db.MaxIdleConns < 0, "database.max_idle_conns cannot be negative")
	check(db.MaxIdleConns > db.MaxOpenConns,
		"database.max_idle_conns (%d) exceeds database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)

	s := c.Sync
	check(s.MaxAttempts < 1, "sync.max_attempts must be at least 1")
	check(s.Multiplier < 1, "sync.multiplier must be >= 1, got %g", s.Multiplier)
	check(s.MaxDelay < s.BaseDelay, "sync.max_delay (%s) is shorter than sync.base_delay (%s)", s.MaxDelay, s.BaseDelay)
	check(s.AttemptTimeout <= 0, "sync.attempt_timeout must be positive")

	ratio := c.Telemetry.SamplingRatio
	check(ratio < 0 || ratio > 1, "telemetry.sampling_ratio must be within [0, 1], got %g", ratio)

	if c.App.Env == "production" {
		check(len(c.JWT.Secret) < 32, "jwt.secret must be set and at least 32 characters in production")
		check(db.Password == "", "database.password is required in production")
		check(db.SSLMode == "disable", "database.sslmode cannot be disable in production")
		check(!c.Redis.Enabled, "redis.enabled must be true in production")
		check(slices.Contains(c.HTTP.CORSAllowOrigins, "*"), "http.cors_allow_origins cannot contain * in production")
	}

	return errors.Join(errs...)
}
