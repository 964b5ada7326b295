package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml in the working
// directory and from TASKS_-prefixed environment variables, with environment
// variables taking precedence. Returns a populated, validated Config or an
// error describing what is missing or malformed.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine; everything can come from the
	// environment. Any other read error is real.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("TASKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested keys explicitly so AutomaticEnv picks them up even when
	// no config file supplied the key.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"server.read_timeout_seconds",
		"server.write_timeout_seconds",
		"database.url",
		"database.query_timeout_seconds",
		"auth.access_token_secret",
		"auth.refresh_token_secret",
		"auth.access_token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values for settings that have a sensible
// out-of-the-box behavior. Secrets and the database URL deliberately have
// no defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("database.query_timeout_seconds", 5)
	v.SetDefault("auth.access_token_lifetime_minutes", 15)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
}
