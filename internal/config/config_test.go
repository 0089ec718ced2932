package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEILISEARCH_HOST", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No meilisearch by default; search uses the SQL fallback.
	if cfg.MeiliSearchHost != "" {
		t.Errorf("meilisearch host should default to empty, got %q", cfg.MeiliSearchHost)
	}
	if cfg.RateLimitPost <= 0 {
		t.Errorf("post rate limit must have a positive default, got %v", cfg.RateLimitPost)
	}
}

func TestLoadRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_POST", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RateLimitPost != 30*time.Second {
		t.Errorf("RATE_LIMIT_POST not honored: %v", cfg.RateLimitPost)
	}
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_POST", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("invalid RATE_LIMIT_POST must fail loading")
	}
}
