package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "VH"

// defaults registers every key. Keys unknown to viper are not looked up in
// the environment on Unmarshal, so a setting without a default here cannot
// be overridden by VH_ variables.
var defaults = map[string]any{
	"app.name": "vendorhub",
	"app.env":  "development",
	"app.port": "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "vendorhub",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,

	"redis.enabled":  false,
	"redis.host":     "localhost",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.issuer":                   "vendorhub",

	"auth.allow_registration": false,
	"auth.bcrypt_cost":        12,
	"auth.login_rate_limit":   0.2,
	"auth.login_rate_burst":   5,

	"authz.overrides": []string{},

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":       15 * time.Second,
	"http.write_timeout":      60 * time.Second,
	"http.idle_timeout":       60 * time.Second,
	"http.max_header_bytes":   1 << 20,
	"http.max_body_size":      int64(2 << 20),
	"http.cors_allow_origins": []string{},
	"http.cors_allow_methods": []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
	"http.cors_allow_headers": []string{"Content-Type", "Authorization", "X-Request-ID"},
	"http.trusted_proxies":    []string{},

	"sync.max_attempts":    3,
	"sync.base_delay":      500 * time.Millisecond,
	"sync.max_delay":       10 * time.Second,
	"sync.multiplier":      2.0,
	"sync.attempt_timeout": 10 * time.Second,
	"sync.claim_lease":     5 * time.Minute,

	"telemetry.enabled":            false,
	"telemetry.collector_endpoint": "localhost:4317",
	"telemetry.sampling_ratio":     1.0,
	"telemetry.service_name":       "vendorhub",
	"telemetry.insecure":           false,
	"telemetry.db_trace_enabled":   false,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads ./config.toml, ./config/config.toml or /app/config.toml when
// present. VH_ variables (VH_DATABASE_PASSWORD for database.password) win
// over the file, the file wins over defaults.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	overrides, err := parseOverrides(v.GetStringSlice("authz.overrides"))
	if err != nil {
		return nil, err
	}
	cfg.Authz.Overrides = overrides
	return cfg, nil
}

func parseOverrides(entries []string) (map[string][]string, error) {
	out := make(map[string][]string, len(entries))
	for _, entry := range entries {
		op, roles, ok := strings.Cut(entry, "=")
		op = strings.TrimSpace(op)
		if !ok || op == "" {
			return nil, fmt.Errorf("authz.overrides: malformed entry %q", entry)
		}
		granted := []string{}
		for _, role := range strings.Split(roles, "|") {
			if role = strings.TrimSpace(role); role != "" {
				granted = append(granted, role)
			}
		}
		out[op] = granted
	}
	return out, nil
}
