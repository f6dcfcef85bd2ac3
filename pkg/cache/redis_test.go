package cache

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/lostfound/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url}
}

func TestNewRedisClient_Errors(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"invalid url", "not-a-valid-url"},
		{"unreachable host", "redis://localhost:19999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRedisClient(context.Background(), newTestConfig(tt.url)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestApplyPoolDefaults(t *testing.T) {
	t.Run("fills unset options", func(t *testing.T) {
		opts, err := redis.ParseURL("redis://localhost:6379/0")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		applyPoolDefaults(opts, "lostfound")
		if opts.ClientName != "lostfound" || opts.PoolSize != 10 || opts.MinIdleConns != 2 {
			t.Errorf("unexpected options: name=%q pool=%d idle=%d", opts.ClientName, opts.PoolSize, opts.MinIdleConns)
		}
	})

	t.Run("keeps url overrides", func(t *testing.T) {
		opts, err := redis.ParseURL("redis://localhost:6379/0?pool_size=25&client_name=worker")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		applyPoolDefaults(opts, "lostfound")
		if opts.PoolSize != 25 || opts.ClientName != "worker" {
			t.Errorf("overrides lost: name=%q pool=%d", opts.ClientName, opts.PoolSize)
		}
	})
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Ping_Success", func(t *testing.T) {
		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("Client_NotNil", func(t *testing.T) {
		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})

	t.Run("Close", func(t *testing.T) {
		if err := rc.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}
