package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDevelopmentGeneratesSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", EnvDevelopment)
	t.Setenv("SESSION_SIGNING_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SigningSecret == "" {
		t.Fatal("expected generated secret")
	}
	if !cfg.SigningSecretGenerated() {
		t.Fatal("expected generated flag")
	}
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", EnvProduction)
	t.Setenv("SESSION_SIGNING_SECRET", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingSigningSecret) {
		t.Fatalf("expected ErrMissingSigningSecret, got %v", err)
	}
}

func TestLoadDurations(t *testing.T) {
	t.Setenv("ENVIRONMENT", EnvDevelopment)
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("ACTIVITY_RETENTION", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Fatalf("expected 48h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.ActivityRetention != 30*24*time.Hour {
		t.Fatalf("expected default retention, got %v", cfg.ActivityRetention)
	}
}
