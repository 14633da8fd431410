// Package config provides configuration management for the fight predictor.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Dataset    DatasetConfig    `mapstructure:"dataset" validate:"required"`
	Artifacts  ArtifactsConfig  `mapstructure:"artifacts" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	Training   TrainingConfig   `mapstructure:"training" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Health     HealthConfig     `mapstructure:"health"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatasetConfig locates the historical fight dataset. Path is a local file or an http(s) URL.
type DatasetConfig struct {
	Path                string  `mapstructure:"path" validate:"required"`
	FetchTimeoutSeconds int     `mapstructure:"fetch_timeout_seconds" validate:"gt=0"`
	MaxRetries          int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond  float64 `mapstructure:"rate_limit_per_second" validate:"gte=0"`
}

// ArtifactsConfig represents where the fitted scaler and classifier live
type ArtifactsConfig struct {
	ScalerPath string `mapstructure:"scaler_path" validate:"required"`
	ModelPath  string `mapstructure:"model_path" validate:"required"`
	// LockPath defaults to .training.lock next to the model artifact.
	LockPath string `mapstructure:"lock_path"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	AllowedOrigins         []string `mapstructure:"allowed_origins" validate:"required,min=1"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
	RateLimitPerSecond     float64  `mapstructure:"rate_limit_per_second" validate:"gte=0"`
	RateLimitBurst         int      `mapstructure:"rate_limit_burst" validate:"gte=0"`
}

// PredictionConfig represents inference-path options
type PredictionConfig struct {
	CacheEnabled    bool `mapstructure:"cache_enabled"`
	CacheTTLSeconds int  `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CacheMaxSize    int  `mapstructure:"cache_max_size" validate:"gte=0"`
	// RecordPredictions stores served predictions in the database when it is enabled.
	RecordPredictions bool `mapstructure:"record_predictions"`
}

// TrainingConfig represents the offline training routine configuration
type TrainingConfig struct {
	ModelName          string  `mapstructure:"model_name" validate:"required"`
	TestSize           float64 `mapstructure:"test_size" validate:"gt=0,lt=1"`
	Seed               int64   `mapstructure:"seed"`
	ExcludeTitleFights bool    `mapstructure:"exclude_title_fights"`
	MaxIterations      int     `mapstructure:"max_iterations" validate:"gt=0"`
	LearningRate       float64 `mapstructure:"learning_rate" validate:"gt=0"`
	RegularizationC    float64 `mapstructure:"regularization_c" validate:"gt=0"`
	Tolerance          float64 `mapstructure:"tolerance" validate:"gt=0"`
	Schedule           string  `mapstructure:"schedule" validate:"omitempty,cron"`
}

// DatabaseConfig represents the optional model registry database
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port           int    `mapstructure:"port" validate:"gte=0,max=65535"`
	Name           string `mapstructure:"name" validate:"required_if=Enabled true"`
	User           string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// MetricsConfig represents metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// HealthConfig represents the health server configuration. Port 0 disables it.
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,max=65535"`
}

// SecretsConfig enables the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// TrainingLockPath returns the lock file guarding the artifact paths
func (c *Config) TrainingLockPath() string {
	if c.Artifacts.LockPath != "" {
		return c.Artifacts.LockPath
	}
	return filepath.Join(filepath.Dir(c.Artifacts.ModelPath), ".training.lock")
}

// CacheTTL returns the prediction cache TTL
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Prediction.CacheTTLSeconds) * time.Second
}

// Addr returns the API listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
