package config

import (
	"reflect"
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "CART_SESSION_TTL_HOURS", "CORS_ALLOWED_ORIGINS", "RABBITMQ_URL", "APP_ENV"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.CartSessionTTL != 24*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.CartSessionTTL)
	}
	if cfg.RabbitMQURL != "" {
		t.Fatalf("broker must be disabled by default")
	}
	if cfg.Development() {
		t.Fatalf("default profile must be production")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CART_SESSION_TTL_HOURS", "2")
	t.Setenv("WEBHOOK_TIMEOUT_SECONDS", "nope")
	t.Setenv("RABBITMQ_PREFETCH_COUNT", "3")
	t.Setenv("APP_ENV", "development")

	cfg := FromEnv()
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORSAllowedOrigins)
	}
	if cfg.CartSessionTTL != 2*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.CartSessionTTL)
	}
	if cfg.WebhookTimeout != 5*time.Second {
		t.Fatalf("invalid value must fall back to default, got %s", cfg.WebhookTimeout)
	}
	if cfg.RabbitMQPrefetchCount != 3 || !cfg.Development() {
		t.Fatalf("unexpected cfg %+v", cfg)
	}
}
