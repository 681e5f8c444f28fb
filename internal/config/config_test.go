package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.ListenAddr != "127.0.0.1:8470" {
		t.Errorf("listen addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Server.ShutdownTimeoutSeconds != 10 {
		t.Errorf("shutdown timeout = %d", cfg.Server.ShutdownTimeoutSeconds)
	}
	if len(cfg.Auth.AllowedEmailDomains) != 2 {
		t.Errorf("allowed domains = %v", cfg.Auth.AllowedEmailDomains)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.ListenAddr != Default().Server.ListenAddr {
		t.Errorf("loaded listen addr = %q", cfg.Server.ListenAddr)
	}
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("server.listen_addr", "0.0.0.0:9000")
	viper.Set("database.path", "/tmp/ft.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("override not applied: %q", cfg.Server.ListenAddr)
	}
	if cfg.Database.Path != "/tmp/ft.db" {
		t.Errorf("db path override not applied: %q", cfg.Database.Path)
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "focustache") {
		t.Errorf("ConfigDir() = %q", got)
	}
}
