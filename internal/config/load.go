package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment variables, e.g. SPARK_SERVER_PORT.
const envPrefix = "SPARK"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values, which take precedence over defaults.
// Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from env.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers the baseline values used when neither the config
// file nor the environment provides a setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Registered empty so AutomaticEnv can see SPARK_DATABASE_URL and
	// SPARK_REDIS_PASSWORD without an explicit BindEnv call.
	v.SetDefault("database.url", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("quota.swipe_limit", 100)
	v.SetDefault("quota.swipe_window", "24h")
	v.SetDefault("quota.super_like_limit", 5)
	v.SetDefault("quota.super_like_window", "24h")

	v.SetDefault("task.queue_size", 256)
	v.SetDefault("task.worker_count", 2)
}
