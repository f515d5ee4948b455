package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("default port = %s, want 8082", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("default backend = %s, want memory", cfg.DataBackend)
	}
	if cfg.ChatRateLimit != 5 || cfg.ChatRateWindow != time.Minute {
		t.Errorf("default chat rate = %d/%v, want 5/min", cfg.ChatRateLimit, cfg.ChatRateWindow)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("default cache TTL = %v, want 5m", cfg.CacheTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("CHAT_RATE_LIMIT", "10")
	t.Setenv("CACHE_TTL", "30s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port = %s, want 9000", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("backend = %s, want sqlite", cfg.DataBackend)
	}
	if cfg.ChatRateLimit != 10 {
		t.Errorf("chat rate limit = %d, want 10", cfg.ChatRateLimit)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("cache TTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"bad backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "invalid AMQP URL scheme"},
		{"empty queue with amqp", func(c *Config) { c.AMQPURL = "amqp://localhost"; c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"zero chat limit", func(c *Config) { c.ChatRateLimit = 0 }, "invalid chat rate limit"},
		{"tiny cache ttl", func(c *Config) { c.CacheTTL = time.Millisecond }, "invalid cache TTL"},
		{"huge enrichment timeout", func(c *Config) { c.EnrichmentTimeout = time.Hour }, "invalid enrichment timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
