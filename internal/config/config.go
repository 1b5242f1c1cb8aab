package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Quota    QuotaConfig    `mapstructure:"quota"    validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
}

// ServerConfig contains all HTTP server related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains connection settings for the centralized quota
// counter. The address is required; admission control degrades to its
// in-process fallback when the server is unreachable at runtime.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"   validate:"gte=0"`
}

// QuotaConfig defines the admission-control windows. Each action kind has
// an independent limit and window.
type QuotaConfig struct {
	SwipeLimit      int           `mapstructure:"swipe_limit"       validate:"required,gt=0"`
	SwipeWindow     time.Duration `mapstructure:"swipe_window"      validate:"required"`
	SuperLikeLimit  int           `mapstructure:"super_like_limit"  validate:"required,gt=0"`
	SuperLikeWindow time.Duration `mapstructure:"super_like_window" validate:"required"`
}

// TaskConfig sizes the background worker pool used for fire-and-forget
// telemetry and counter work.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`
}
