package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("default backend: got %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("default shutdown timeout: got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("default session TTL: got %v", cfg.Session.TTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port override: got %d", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("backend override: got %q", cfg.Storage.Backend)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level override: got %q", cfg.Log.Level)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins override: got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongodb")

	_, err := Load()
	if err == nil {
		t.Fatal("unknown backend accepted")
	}
	if !strings.Contains(err.Error(), "STORAGE_BACKEND") {
		t.Fatalf("error does not name the bad variable: %v", err)
	}
}

func TestProductionRequiresRealSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Fatalf("default session secret accepted in production: %v", err)
	}
}

func TestDSNComposition(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.internal", Port: 5433, Name: "medrec",
		User: "svc", Password: "pw", SSLMode: "require",
	}
	dsn := d.DSN()
	for _, part := range []string{"host=db.internal", "port=5433", "dbname=medrec", "sslmode=require"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
