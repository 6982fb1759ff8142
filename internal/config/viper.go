// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Extract struct {
		MergeWrapped     bool    `mapstructure:"merge_wrapped" yaml:"merge_wrapped"`
		DropHeaderFooter bool    `mapstructure:"drop_header_footer" yaml:"drop_header_footer"`
		YTolerance       float64 `mapstructure:"y_tolerance" yaml:"y_tolerance"`
	} `mapstructure:"extract" yaml:"extract"`

	Parse struct {
		HintsFile string `mapstructure:"hints_file" yaml:"hints_file"`
	} `mapstructure:"parse" yaml:"parse"`

	Reconcile struct {
		Tolerance         float64 `mapstructure:"tolerance" yaml:"tolerance"`
		OutlierMinRows    int     `mapstructure:"outlier_min_rows" yaml:"outlier_min_rows"`
		OutlierMultiplier int     `mapstructure:"outlier_multiplier" yaml:"outlier_multiplier"`
	} `mapstructure:"reconcile" yaml:"reconcile"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then LEDGERLENS_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledgerlens")
	v.AddConfigPath(".ledgerlens")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEDGERLENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("extract.merge_wrapped", true)
	v.SetDefault("extract.drop_header_footer", true)
	v.SetDefault("extract.y_tolerance", 3.0)

	v.SetDefault("parse.hints_file", "")

	v.SetDefault("reconcile.tolerance", 0.01)
	v.SetDefault("reconcile.outlier_min_rows", 50)
	v.SetDefault("reconcile.outlier_multiplier", 50)

	v.SetDefault("report.format", "text")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Extract.YTolerance <= 0 {
		return fmt.Errorf("extract.y_tolerance must be positive, got: %f", config.Extract.YTolerance)
	}

	if config.Reconcile.Tolerance < 0 {
		return fmt.Errorf("reconcile.tolerance must not be negative, got: %f", config.Reconcile.Tolerance)
	}

	if config.Reconcile.OutlierMinRows < 1 {
		return fmt.Errorf("reconcile.outlier_min_rows must be at least 1, got: %d", config.Reconcile.OutlierMinRows)
	}

	if config.Reconcile.OutlierMultiplier < 1 {
		return fmt.Errorf("reconcile.outlier_multiplier must be at least 1, got: %d", config.Reconcile.OutlierMultiplier)
	}

	if config.Report.Format != "text" && config.Report.Format != "json" {
		return fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", config.Report.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
