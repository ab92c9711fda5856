package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port default: %q", cfg.Port)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("database url should default empty: %q", cfg.DatabaseURL)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("upload cap default: %d", cfg.MaxUploadBytes)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port: %q", cfg.Port)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Fatalf("bad upload cap should fall back: %d", cfg.MaxUploadBytes)
	}
}
