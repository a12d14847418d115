package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tmdblens.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// PipelineConfig contains the tunable cleaning thresholds.
//
// MinBudgetAdj and MinRevenueAdj are exclusive lower bounds: a movie is kept
// only when its adjusted figure is strictly greater. The default of 1 rejects
// the zero placeholders the dataset uses for unreported figures.
// MaxReleaseYear is an exclusive upper bound reflecting the dataset vintage.
type PipelineConfig struct {
	MaxReleaseYear int   `yaml:"max_release_year" envconfig:"MAX_RELEASE_YEAR" default:"2016"`
	MinBudgetAdj   int64 `yaml:"min_budget_adj" envconfig:"MIN_BUDGET_ADJ" default:"1"`
	MinRevenueAdj  int64 `yaml:"min_revenue_adj" envconfig:"MIN_REVENUE_ADJ" default:"1"`
	TopCategories  int   `yaml:"top_categories" envconfig:"TOP_CATEGORIES" default:"20"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("TMDB", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.ReportsDir == "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if envConfig.Paths.LogsDir == "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	if envConfig.Pipeline.MaxReleaseYear == 0 {
		envConfig.Pipeline.MaxReleaseYear = fileConfig.Pipeline.MaxReleaseYear
	}
	if envConfig.Pipeline.TopCategories == 0 {
		envConfig.Pipeline.TopCategories = fileConfig.Pipeline.TopCategories
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Pipeline.MaxReleaseYear <= 0 {
		return fmt.Errorf("max release year must be positive: %d", c.Pipeline.MaxReleaseYear)
	}

	if c.Pipeline.MinBudgetAdj < 0 {
		return fmt.Errorf("min adjusted budget must not be negative: %d", c.Pipeline.MinBudgetAdj)
	}

	if c.Pipeline.MinRevenueAdj < 0 {
		return fmt.Errorf("min adjusted revenue must not be negative: %d", c.Pipeline.MinRevenueAdj)
	}

	if c.Pipeline.TopCategories < 0 {
		return fmt.Errorf("top categories must not be negative: %d", c.Pipeline.TopCategories)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	if c.Logging.Output != "console" && c.Logging.Output != "file" && c.Logging.Output != "both" {
		c.Logging.Output = "console"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/tmdblens.log"
	}

	return nil
}

// GetLogPath returns the path of a log file inside the logs directory
func (c *Config) GetLogPath(name string) string {
	return filepath.Join(c.Paths.LogsDir, name)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/tmdblens.log",
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "reports",
			LogsDir:    "logs",
		},
		Pipeline: PipelineConfig{
			MaxReleaseYear: 2016,
			MinBudgetAdj:   1,
			MinRevenueAdj:  1,
			TopCategories:  20,
		},
	}
}
