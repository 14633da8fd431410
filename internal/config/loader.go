package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FIGHT_PREDICTOR_SERVER_PORT.
	EnvPrefix = "FIGHT_PREDICTOR"

	// DefaultConfigPath is used when no path is given.
	DefaultConfigPath = "config/config.yaml"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// readExpanded reads the YAML file and expands ${VAR} placeholders.
func readExpanded(v *viper.Viper, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	if err := readExpanded(v, configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if err := readExpanded(v, configPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// PathFromEnv returns FIGHT_PREDICTOR_CONFIG_PATH when set, otherwise fallback.
func PathFromEnv(fallback string) string {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	return fallback
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "fight-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("dataset.path", "data/fights.csv")
	v.SetDefault("dataset.fetch_timeout_seconds", 30)
	v.SetDefault("dataset.max_retries", 3)
	v.SetDefault("dataset.rate_limit_per_second", 5)

	v.SetDefault("artifacts.scaler_path", "artifacts/scaler.json")
	v.SetDefault("artifacts.model_path", "artifacts/model.json")
	v.SetDefault("artifacts.lock_path", "")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 10)
	v.SetDefault("server.shutdown_timeout_seconds", 15)
	v.SetDefault("server.rate_limit_per_second", 50)
	v.SetDefault("server.rate_limit_burst", 100)

	v.SetDefault("prediction.cache_enabled", true)
	v.SetDefault("prediction.cache_ttl_seconds", 3600)
	v.SetDefault("prediction.cache_max_size", 10000)
	v.SetDefault("prediction.record_predictions", false)

	v.SetDefault("training.model_name", "fight_predictor")
	v.SetDefault("training.test_size", 0.2)
	v.SetDefault("training.seed", 67)
	v.SetDefault("training.exclude_title_fights", true)
	v.SetDefault("training.max_iterations", 5000)
	v.SetDefault("training.learning_rate", 0.5)
	v.SetDefault("training.regularization_c", 1.0)
	v.SetDefault("training.tolerance", 1e-6)
	v.SetDefault("training.schedule", "")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "fight_predictor")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 5)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("health.port", 8081)

	v.SetDefault("secrets.enabled", false)
	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.secret_name", "")
}
