package config

import (
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("WORKERS", "")
	t.Setenv("TASK_SERVICE_TIMEOUT", "")

	cfg := New()
	if cfg.HTTPPort != ":8080" {
		t.Fatalf("HTTPPort=%q, want :8080", cfg.HTTPPort)
	}
	if cfg.Workers != 4 {
		t.Fatalf("Workers=%d, want 4", cfg.Workers)
	}
	if cfg.TaskServiceTimeout != 10*time.Second {
		t.Fatalf("TaskServiceTimeout=%v, want 10s", cfg.TaskServiceTimeout)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("WORKERS", "8")
	t.Setenv("TASK_SERVICE_URL", "http://tasks.internal")
	t.Setenv("TASK_SERVICE_TIMEOUT", "3s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg := New()
	if cfg.HTTPPort != ":9090" {
		t.Fatalf("HTTPPort=%q, want :9090", cfg.HTTPPort)
	}
	if cfg.Workers != 8 {
		t.Fatalf("Workers=%d, want 8", cfg.Workers)
	}
	if cfg.TaskServiceURL != "http://tasks.internal" {
		t.Fatalf("TaskServiceURL=%q", cfg.TaskServiceURL)
	}
	if cfg.TaskServiceTimeout != 3*time.Second {
		t.Fatalf("TaskServiceTimeout=%v, want 3s", cfg.TaskServiceTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("AllowedOrigins=%v", cfg.AllowedOrigins)
	}
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("POOL_SIZE", "many")
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")

	cfg := New()
	if cfg.PoolSize != 64 {
		t.Fatalf("PoolSize=%d, want 64", cfg.PoolSize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout=%v, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNew_ZeroWorkersFallsBack(t *testing.T) {
	t.Setenv("WORKERS", "0")
	t.Setenv("POOL_SIZE", "0")

	cfg := New()
	if cfg.Workers != 4 {
		t.Fatalf("Workers=%d, want 4", cfg.Workers)
	}
	if cfg.PoolSize != 0 {
		t.Fatalf("PoolSize=%d, want 0", cfg.PoolSize)
	}
}
