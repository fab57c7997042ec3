package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("server port: want 8080, got %s", cfg.Server.Port)
	}
	if cfg.Database.Port != "5432" {
		t.Errorf("db port: want 5432, got %s", cfg.Database.Port)
	}
	if cfg.JWT.Expiration != 24*time.Hour {
		t.Errorf("jwt expiration: want 24h, got %v", cfg.JWT.Expiration)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("log level: want info, got %s", cfg.Logger.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "finboard_test")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("server port: want 9090, got %s", cfg.Server.Port)
	}
	if cfg.Database.DBName != "finboard_test" {
		t.Errorf("db name: want finboard_test, got %s", cfg.Database.DBName)
	}
	if cfg.JWT.Expiration != 2*time.Hour {
		t.Errorf("jwt expiration: want 2h, got %v", cfg.JWT.Expiration)
	}
}
