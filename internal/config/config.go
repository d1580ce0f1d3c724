package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Export    ExportConfig    `mapstructure:"export"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
	Mode string `mapstructure:"mode"`
}

type DataConfig struct {
	Path         string `mapstructure:"path"`
	PreviewLimit int    `mapstructure:"preview_limit"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	SampleSchedule string `mapstructure:"sample_schedule"`
}

type DashboardConfig struct {
	Title string `mapstructure:"title"`
	Theme string `mapstructure:"theme"`
}

type ExportConfig struct {
	HistoryLimit int  `mapstructure:"history_limit"`
	Compress     bool `mapstructure:"compress"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Environment variable bindings
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.mode", "GIN_MODE")
	viper.BindEnv("data.path", "DATA_PATH")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, rely on defaults and environment
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	var errors []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errors = append(errors, fmt.Sprintf("server.mode must be one of debug, release, test, got %q", c.Server.Mode))
	}

	if c.Data.Path == "" {
		errors = append(errors, "data.path is required")
	}

	if c.Data.PreviewLimit < 1 {
		errors = append(errors, fmt.Sprintf("data.preview_limit must be positive, got %d", c.Data.PreviewLimit))
	}

	if c.Export.HistoryLimit < 1 {
		errors = append(errors, fmt.Sprintf("export.history_limit must be positive, got %d", c.Export.HistoryLimit))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("data.path", "./data/sales.csv")
	viper.SetDefault("data.preview_limit", 10)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.sample_schedule", "0 */30 * * * *")

	viper.SetDefault("dashboard.title", "Sales Insights")
	viper.SetDefault("dashboard.theme", "westeros")

	viper.SetDefault("export.history_limit", 50)
	viper.SetDefault("export.compress", false)
}
