package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PASS_THRESHOLD", "MAX_ATTEMPTS", "MAX_CONCURRENT_ASSETS", "GEMINI_API_KEY", "NARRATIVE_PROVIDER", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PassThreshold != 70 {
		t.Fatalf("PassThreshold = %d, want 70", cfg.PassThreshold)
	}
	if cfg.MaxAttempts != 3 {
		t.Fatalf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.MaxConcurrentAssets != 4 {
		t.Fatalf("MaxConcurrentAssets = %d, want 4", cfg.MaxConcurrentAssets)
	}
	if cfg.RequestTimeout != 600*time.Second {
		t.Fatalf("RequestTimeout = %s, want 10m", cfg.RequestTimeout)
	}
	if !cfg.Synthetic() {
		t.Fatal("expected synthetic mode without GEMINI_API_KEY")
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("CORSAllowedOrigins = %#v, want two defaults", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigClampsGenerationKnobs(t *testing.T) {
	t.Setenv("PASS_THRESHOLD", "140")
	t.Setenv("MAX_ATTEMPTS", "0")
	t.Setenv("MAX_CONCURRENT_ASSETS", "-2")
	t.Setenv("NARRATIVE_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PassThreshold != 100 {
		t.Fatalf("PassThreshold = %d, want 100", cfg.PassThreshold)
	}
	if cfg.MaxAttempts != 1 {
		t.Fatalf("MaxAttempts = %d, want 1", cfg.MaxAttempts)
	}
	if cfg.MaxConcurrentAssets != 1 {
		t.Fatalf("MaxConcurrentAssets = %d, want 1", cfg.MaxConcurrentAssets)
	}
}

func TestLoadConfigKeepsZeroThresholdMeaningful(t *testing.T) {
	t.Setenv("PASS_THRESHOLD", "0")
	t.Setenv("NARRATIVE_PROVIDER", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PassThreshold != 1 {
		t.Fatalf("PassThreshold = %d, want 1", cfg.PassThreshold)
	}
}

func TestLoadConfigParsesOriginList(t *testing.T) {
	t.Setenv("NARRATIVE_PROVIDER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	expected := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins = %#v, want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigRequiresOpenAIKey(t *testing.T) {
	t.Setenv("NARRATIVE_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when openai provider lacks a key")
	}
}

func TestLoadConfigRejectsUnknownProvider(t *testing.T) {
	t.Setenv("NARRATIVE_PROVIDER", "claude")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for unknown narrative provider")
	}
}
