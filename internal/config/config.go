package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Users     UsersConfig     `mapstructure:"users"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// TasksConfig contains business-rule settings for the task engine.
type TasksConfig struct {
	// MaxOpenPerUser caps the number of non-terminal tasks a single owner
	// can hold. Zero disables the limit.
	MaxOpenPerUser int `mapstructure:"max_open_per_user" validate:"gte=0"`
}

// RateLimitConfig contains settings for the per-IP request limiter.
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requests_per_min" validate:"required_if=Enabled true,gte=0"`
	Window         time.Duration `mapstructure:"window"`
}

// UsersConfig contains settings for the user directory.
type UsersConfig struct {
	// DirectoryFile points to a JSON file with directory entries. Empty
	// means the built-in sample directory is used.
	DirectoryFile string `mapstructure:"directory_file"`
}
