package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete FocusTâche configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	// ListenAddr is the address the API server binds to
	ListenAddr string `mapstructure:"listen_addr"`
	// ShutdownTimeoutSeconds bounds graceful shutdown on SIGINT/SIGTERM
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds"`
}

// DatabaseConfig controls where session and task data lives
type DatabaseConfig struct {
	// Path is the sqlite database file; empty selects ~/.focustache/focustache.db
	Path string `mapstructure:"path"`
}

// AuthConfig controls account registration
type AuthConfig struct {
	// AllowedEmailDomains restricts registration to institutional addresses
	AllowedEmailDomains []string `mapstructure:"allowed_email_domains"`
}

// LoggingConfig controls server logging
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:             "127.0.0.1:8470",
			ShutdownTimeoutSeconds: 10,
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Auth: AuthConfig{
			AllowedEmailDomains: []string{"etu.univ.fr", "univ.fr"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers defaults with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("server.listen_addr", defaults.Server.ListenAddr)
	viper.SetDefault("server.shutdown_timeout_seconds", defaults.Server.ShutdownTimeoutSeconds)
	viper.SetDefault("database.path", defaults.Database.Path)
	viper.SetDefault("auth.allowed_email_domains", defaults.Auth.AllowedEmailDomains)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Init wires viper to the config file and environment. A missing config file
// is fine; defaults and FOCUSTACHE_* env vars still apply.
func Init() error {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())

	viper.SetEnvPrefix("FOCUSTACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// Load reads the configuration from viper into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "focustache")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focustache"
	}
	return filepath.Join(home, ".config", "focustache")
}
