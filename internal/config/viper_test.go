package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	var c Config
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.CSV.Delimiter = ","
	c.Extract.MergeWrapped = true
	c.Extract.DropHeaderFooter = true
	c.Extract.YTolerance = 3.0
	c.Reconcile.Tolerance = 0.01
	c.Reconcile.OutlierMinRows = 50
	c.Reconcile.OutlierMultiplier = 50
	c.Report.Format = "text"
	return &c
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "chatty" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multichar delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"zero y tolerance", func(c *Config) { c.Extract.YTolerance = 0 }, "must be positive"},
		{"negative tolerance", func(c *Config) { c.Reconcile.Tolerance = -0.5 }, "must not be negative"},
		{"zero outlier min rows", func(c *Config) { c.Reconcile.OutlierMinRows = 0 }, "at least 1"},
		{"zero outlier multiplier", func(c *Config) { c.Reconcile.OutlierMultiplier = 0 }, "at least 1"},
		{"bad report format", func(c *Config) { c.Report.Format = "pdf" }, "invalid report format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)
			err := validateConfig(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	c := validTestConfig()
	c.Log.Level = "debug"
	c.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(c)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFromConfigBadLevelFallsBack(t *testing.T) {
	c := validTestConfig()
	c.Log.Level = "chatty"

	logger := ConfigureLoggingFromConfig(c)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
