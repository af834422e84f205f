package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Queue    QueueConfig    `mapstructure:"queue"    validate:"required"`
	Analysis AnalysisConfig `mapstructure:"analysis" validate:"required"`
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

// QueueConfig contains the background queue settings.
type QueueConfig struct {
	// MaxRetries is the default attempt budget for enqueued jobs.
	MaxRetries int `mapstructure:"max_retries" validate:"required,gte=1"`

	// RetryDelayMillis is the fixed delay before a failed job re-enters the
	// queue. The delay is constant across attempts.
	RetryDelayMillis int `mapstructure:"retry_delay_ms" validate:"required,gte=1"`
}

// RetryDelay returns the configured retry delay as a duration.
func (c QueueConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMillis) * time.Millisecond
}

// AnalysisConfig contains settings for the external analysis service.
type AnalysisConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
}
