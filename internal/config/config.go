package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const defaultAPIURL = "http://localhost:8000"

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds catalog server configuration
type ServerConfig struct {
	URL string `mapstructure:"url"` // API base origin
}

// PreferencesConfig holds user preferences
type PreferencesConfig struct {
	PageSize int `mapstructure:"page_size"` // Default listing page size
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: defaultAPIURL,
		},
		Preferences: PreferencesConfig{
			PageSize: 20,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmoteca", "filmoteca.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmoteca", "filmoteca.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmoteca")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "filmoteca")
	}
}

// defaultDataPath returns the default data directory for the current OS.
// The query cache and session files live here.
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "filmoteca")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmoteca")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("FILMOTECA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Server.URL == "" {
		cfg.Server.URL = defaultAPIURL
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("preferences.page_size", cfg.Preferences.PageSize)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SessionPath returns the file that persists the signed-in identity
func SessionPath() string {
	return filepath.Join(defaultDataPath(), "user.json")
}

// TokensPath returns the file that persists the credential tokens
func TokensPath() string {
	return filepath.Join(defaultDataPath(), "tokens.json")
}

// CachePath returns the query cache directory
func CachePath() string {
	return filepath.Join(defaultDataPath(), "cache")
}

// ClearCache removes all cached query data
func ClearCache() error {
	if err := os.RemoveAll(CachePath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
