package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ReadTimeoutSeconds and WriteTimeoutSeconds bound how long the HTTP
	// server waits on a single request before giving up on it.
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"  validate:"gte=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`

	// QueryTimeoutSeconds bounds every individual store call so a slow
	// database surfaces as a server error instead of a hung request.
	QueryTimeoutSeconds int `mapstructure:"query_timeout_seconds" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
//
// Access and refresh tokens are signed with independent secrets and carry
// independent lifetimes. The two secrets must never be set to the same
// value; a token signed under one class must not verify under the other.
type AuthConfig struct {
	AccessTokenSecret           string `mapstructure:"access_token_secret"            validate:"required,min=32"`
	RefreshTokenSecret          string `mapstructure:"refresh_token_secret"           validate:"required,min=32,nefield=AccessTokenSecret"`
	AccessTokenLifetimeMinutes  int    `mapstructure:"access_token_lifetime_minutes"  validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}
