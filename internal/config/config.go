package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Player  PlayerConfig  `mapstructure:"player"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds media server connection settings
type ServerConfig struct {
	URL              string `mapstructure:"url"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	AcceptSelfSigned bool   `mapstructure:"accept_self_signed"` // skip TLS verification
	DeviceID         string `mapstructure:"device_id"`          // generated once, reported to the server
}

// PlayerConfig holds external player settings
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // player binary, defaults to mpv
	Args    []string `mapstructure:"args"`    // extra arguments appended to every launch
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
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
		return filepath.Join(os.Getenv("APPDATA"), "jellyterm", "jellyterm.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jellyterm", "jellyterm.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "jellyterm")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "jellyterm")
	}
}

// DefaultCachePath returns the catalog cache file path for the current OS
func DefaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "jellyterm", "cache.json")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jellyterm", "cache.json")
	}
}

// DefaultDataPath returns the data directory used for the history store
func DefaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "jellyterm")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "jellyterm")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("JELLYTERM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Each install reports a stable device ID to the server
	if cfg.Server.DeviceID == "" {
		cfg.Server.DeviceID = uuid.NewString()
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.username", cfg.Server.Username)
	viper.Set("server.password", cfg.Server.Password)
	viper.Set("server.accept_self_signed", cfg.Server.AcceptSelfSigned)
	viper.Set("server.device_id", cfg.Server.DeviceID)

	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Delete removes the configuration file, forcing a fresh setup on next run
func Delete() error {
	configFile := filepath.Join(defaultConfigPath(), "config.yaml")
	if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the server connection settings are present
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.Username != ""
}
