// Package config defines the application's typed configuration and its loader.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Display  DisplayConfig  `mapstructure:"display"  validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// DisplayConfig controls how stored UTC timestamps are rendered for clients.
// The conversion is presentation-only; stored values are never altered.
type DisplayConfig struct {
	// TimeLayout is a Go reference-time layout string.
	TimeLayout string `mapstructure:"time_layout" validate:"required"`
	// TimeZone is an IANA zone name resolved at startup.
	TimeZone string `mapstructure:"time_zone" validate:"required"`
}

// AuthConfig configures the optional bearer-token identity accessor. When
// the secret is empty every request is treated as anonymous; there is no
// access control beyond the settings feature gates.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}
