package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/qbtctl/qbittorrent"
)

const (
	// AppName names the config directory and the environment prefix.
	AppName = "qbtctl"

	// DirEnv overrides the config directory.
	DirEnv = "QBTCTL_CONFIG_DIR"

	settingsName    = "settings"
	credentialsFile = "credentials.toml"
	logFile         = "qbtctl.log"
)

// ResolveDir returns the config directory: flagValue when set, then
// $QBTCTL_CONFIG_DIR, then the user config directory.
func ResolveDir(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if dir := os.Getenv(DirEnv); dir != "" {
		return filepath.Abs(dir)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// CredentialsPath returns the path of the credential store in dir.
func CredentialsPath(dir string) string {
	return filepath.Join(dir, credentialsFile)
}

// LogPath returns the path of the log file in dir.
func LogPath(dir string) string {
	return filepath.Join(dir, logFile)
}

// Load loads settings.yaml from dir. A missing file yields the defaults.
// Every key can be overridden from the environment, e.g. QBTCTL_HTTP_TIMEOUT.
func Load(dir string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetConfigName(settingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &cfg, nil
}

// Default returns the settings used when no file exists.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", false)

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.max_retries", 1)
	v.SetDefault("http.retry_wait_min", "1s")
	v.SetDefault("http.retry_wait_max", "10s")
	v.SetDefault("http.rate_limit", 0)
	v.SetDefault("http.insecure_skip_verify", false)

	// List defaults
	v.SetDefault("list.default_sort", "name")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	if cfg.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must not be negative")
	}
	if cfg.HTTP.RetryWaitMin > cfg.HTTP.RetryWaitMax {
		return fmt.Errorf("http.retry_wait_min (%s) must not exceed http.retry_wait_max (%s)", cfg.HTTP.RetryWaitMin, cfg.HTTP.RetryWaitMax)
	}
	if cfg.HTTP.RateLimit < 0 {
		return fmt.Errorf("http.rate_limit must not be negative")
	}

	if cfg.List.DefaultSort != "" && !qbittorrent.IsSortField(cfg.List.DefaultSort) {
		return fmt.Errorf("invalid list.default_sort: %s (must be one of %s)", cfg.List.DefaultSort, strings.Join(qbittorrent.SortFields, ", "))
	}

	return nil
}
