package config

import "time"

// Config represents the complete settings structure
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	List    ListConfig    `mapstructure:"list"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	// File also writes logs to a rotating file in the config directory.
	File bool `mapstructure:"file"`
}

// HTTPConfig controls the client used for every remote call
type HTTPConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRetries         int           `mapstructure:"max_retries"`
	RetryWaitMin       time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax       time.Duration `mapstructure:"retry_wait_max"`
	RateLimit          int           `mapstructure:"rate_limit"` // requests per second, 0 disables
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// ListConfig holds defaults for torrent list
type ListConfig struct {
	DefaultSort string `mapstructure:"default_sort"`
}
