package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("display.time_layout", "Jan 2, 2006 3:04 pm")
	v.SetDefault("display.time_zone", "UTC")

	// Optional config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables with TASKDECK_ prefix
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind the variables AutomaticEnv cannot discover through
	// defaults alone.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"database.url", "TASKDECK_DATABASE_URL"},
		{"auth.jwt_secret", "TASKDECK_AUTH_JWT_SECRET"},
		{"server.port", "TASKDECK_SERVER_PORT"},
		{"server.log_level", "TASKDECK_SERVER_LOG_LEVEL"},
		{"display.time_layout", "TASKDECK_DISPLAY_TIME_LAYOUT"},
		{"display.time_zone", "TASKDECK_DISPLAY_TIME_ZONE"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
