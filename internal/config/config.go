package config

import (
	"time"

	"github.com/heartmarshall/community-engine/internal/domain"
)

// defaults returns a Config with the fields that default to true already
// set. cleanenv treats a false bool as unset and would reapply an
// env-default over an explicit false, so these carry no env-default tag.
func defaults() Config {
	return Config{
		Storage:   StorageConfig{AutoMigrate: true},
		Community: CommunityConfig{SeedDefaults: true},
	}
}

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
	Community CommunityConfig `yaml:"community"`
	Insight   InsightConfig   `yaml:"insight"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings for browser clients of the community UI.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,OPTIONS"`
	AllowedHeaders string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-User,X-Request-Id"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// StorageConfig selects the persistent store backend.
type StorageConfig struct {
	Driver      string `yaml:"driver"       env:"STORAGE_DRIVER"       env-default:"memory"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"STORAGE_AUTO_MIGRATE"`
}

// DatabaseConfig holds PostgreSQL connection settings. DSN is required only
// when the postgres driver is selected.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// RedisConfig configures delivery of admin notifications to a Redis stream.
// An empty Addr disables delivery.
type RedisConfig struct {
	Addr               string `yaml:"addr"                env:"REDIS_ADDR"`
	Password           string `yaml:"password"            env:"REDIS_PASSWORD"`
	DB                 int    `yaml:"db"                  env:"REDIS_DB"                  env-default:"0"`
	NotificationStream string `yaml:"notification_stream" env:"REDIS_NOTIFICATION_STREAM" env-default:"community:admin-notifications"`
	StreamMaxLen       int64  `yaml:"stream_max_len"      env:"REDIS_STREAM_MAX_LEN"      env-default:"1000"`
}

// Enabled reports whether notification delivery is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CommunityConfig holds scoring and retention parameters.
type CommunityConfig struct {
	ProThreshold      int  `yaml:"pro_threshold"       env:"COMMUNITY_PRO_THRESHOLD"       env-default:"1000"`
	ExpertThreshold   int  `yaml:"expert_threshold"    env:"COMMUNITY_EXPERT_THRESHOLD"    env-default:"2000"`
	ProgressCeiling   int  `yaml:"progress_ceiling"    env:"COMMUNITY_PROGRESS_CEILING"    env-default:"3000"`
	NotificationLimit int  `yaml:"notification_limit"  env:"COMMUNITY_NOTIFICATION_LIMIT"  env-default:"50"`
	SeedDefaults      bool `yaml:"seed_defaults"       env:"COMMUNITY_SEED_DEFAULTS"`
}

// BadgeThresholds converts the configured tiers into domain thresholds.
func (c CommunityConfig) BadgeThresholds() domain.BadgeThresholds {
	return domain.BadgeThresholds{
		Pro:     c.ProThreshold,
		Expert:  c.ExpertThreshold,
		Ceiling: c.ProgressCeiling,
	}
}

// InsightConfig holds insight mining parameters.
type InsightConfig struct {
	TopN            int `yaml:"top_n"            env:"INSIGHT_TOP_N"            env-default:"5"`
	ExampleLimit    int `yaml:"example_limit"    env:"INSIGHT_EXAMPLE_LIMIT"    env-default:"3"`
	NotifyThreshold int `yaml:"notify_threshold" env:"INSIGHT_NOTIFY_THRESHOLD" env-default:"2"`
}

// RateLimitConfig holds per-caller request limits. Zero disables limiting.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"600"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}
