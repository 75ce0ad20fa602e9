package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort        string
	Workers         int
	PoolSize        int
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	TaskServiceURL     string
	TaskServiceTimeout time.Duration

	LogFormat string
	LogLevel  string

	// dev task service
	TaskServicePort string
	StoreDriver     string
	StoreDSN        string
}

func New() Config {
	return Config{
		HTTPPort:           env("HTTP_PORT", ":8080"),
		Workers:            envPositive("WORKERS", 4),
		PoolSize:           envInt("POOL_SIZE", 64),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT", time.Second*10),
		AllowedOrigins:     envList("ALLOWED_ORIGINS", []string{"*"}),
		TaskServiceURL:     env("TASK_SERVICE_URL", "http://localhost:5000"),
		TaskServiceTimeout: envDuration("TASK_SERVICE_TIMEOUT", time.Second*10),
		LogFormat:          env("LOG_FORMAT", "text"),
		LogLevel:           env("LOG_LEVEL", "info"),
		TaskServicePort:    env("TASK_SERVICE_PORT", ":5000"),
		StoreDriver:        env("STORE_DRIVER", "memory"),
		StoreDSN:           env("STORE_DSN", "root:123456@tcp(127.0.0.1:3306)/tasks?parseTime=true"),
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// envPositive is envInt without zero.
func envPositive(key string, def int) int {
	if n := envInt(key, def); n > 0 {
		return n
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
