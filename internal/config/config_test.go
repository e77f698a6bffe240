package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"ASSIGNMENTS_PRIMARY.ENV":                     "local",
		"ASSIGNMENTS_SERVER.PORT":                     "4001",
		"ASSIGNMENTS_SERVER.READ_TIMEOUT":             "30",
		"ASSIGNMENTS_SERVER.WRITE_TIMEOUT":            "30",
		"ASSIGNMENTS_SERVER.IDLE_TIMEOUT":             "60",
		"ASSIGNMENTS_SERVER.CORS_ALLOWED_ORIGINS":     "http://localhost:3000, http://localhost:5173",
		"ASSIGNMENTS_DATABASE.HOST":                   "localhost",
		"ASSIGNMENTS_DATABASE.PORT":                   "5432",
		"ASSIGNMENTS_DATABASE.USER":                   "postgres",
		"ASSIGNMENTS_DATABASE.PASSWORD":               "p@ss:word",
		"ASSIGNMENTS_DATABASE.NAME":                   "assignments",
		"ASSIGNMENTS_DATABASE.SSL_MODE":               "disable",
		"ASSIGNMENTS_DATABASE.MAX_OPEN_CONNS":         "25",
		"ASSIGNMENTS_DATABASE.MAX_IDLE_CONNS":         "5",
		"ASSIGNMENTS_DATABASE.CONN_MAX_LIFETIME":      "300",
		"ASSIGNMENTS_DATABASE.CONN_MAX_IDLE_TIME":     "60",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "4001" {
		t.Errorf("got port %q, want 4001", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("got database port %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.Driver != DriverPgx {
		t.Errorf("got driver %q, want %q", cfg.Database.Driver, DriverPgx)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Errorf("unexpected CORS origins: %v", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.Redis.Address != "" {
		t.Errorf("expected redis to be disabled, got %q", cfg.Redis.Address)
	}

	obs := cfg.Observability
	if obs == nil {
		t.Fatal("expected default observability config")
	}
	if obs.ServiceName != ServiceName {
		t.Errorf("got service name %q, want %q", obs.ServiceName, ServiceName)
	}
	if obs.Environment != "local" {
		t.Errorf("got environment %q, want local", obs.Environment)
	}
	if obs.NewRelicEnabled() {
		t.Error("New Relic should be disabled without a license key")
	}
	if cfg.Server.RateLimit.Requests != 100 || cfg.Server.RateLimit.Window != time.Minute {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.Server.RateLimit)
	}
	if !cfg.IsLocal() {
		t.Error("expected IsLocal to be true")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ASSIGNMENTS_DATABASE.DRIVER", "pq")
	t.Setenv("ASSIGNMENTS_REDIS.ADDRESS", "localhost:6379")
	t.Setenv("ASSIGNMENTS_SERVER.RATE_LIMIT.ENABLED", "true")
	t.Setenv("ASSIGNMENTS_SERVER.RATE_LIMIT.WINDOW", "10s")
	t.Setenv("ASSIGNMENTS_OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv("ASSIGNMENTS_OBSERVABILITY.LOGGING.SLOW_QUERY_THRESHOLD", "250ms")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Database.Driver != DriverPq {
		t.Errorf("got driver %q, want %q", cfg.Database.Driver, DriverPq)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("got redis address %q", cfg.Redis.Address)
	}
	if !cfg.Server.RateLimit.Enabled || cfg.Server.RateLimit.Window != 10*time.Second {
		t.Errorf("unexpected rate limit: %+v", cfg.Server.RateLimit)
	}
	if cfg.Observability.Logging.Level != "debug" {
		t.Errorf("got level %q, want debug", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.Logging.Format != "json" {
		t.Errorf("default format lost on partial override: %q", cfg.Observability.Logging.Format)
	}
	if cfg.Observability.Logging.SlowQueryThreshold != 250*time.Millisecond {
		t.Errorf("got threshold %v", cfg.Observability.Logging.SlowQueryThreshold)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "Missing Database Host",
			env:     map[string]string{"ASSIGNMENTS_DATABASE.HOST": ""},
			wantErr: "config validation failed",
		},
		{
			name:    "Unknown Driver",
			env:     map[string]string{"ASSIGNMENTS_DATABASE.DRIVER": "sqlite"},
			wantErr: "config validation failed",
		},
		{
			name: "Zero Rate Limit Window",
			env: map[string]string{
				"ASSIGNMENTS_SERVER.RATE_LIMIT.ENABLED": "true",
				"ASSIGNMENTS_SERVER.RATE_LIMIT.WINDOW":  "0s",
			},
			wantErr: "config validation failed",
		},
		{
			name: "Sub-second Rate Limit Window",
			env: map[string]string{
				"ASSIGNMENTS_SERVER.RATE_LIMIT.ENABLED": "true",
				"ASSIGNMENTS_SERVER.RATE_LIMIT.WINDOW":  "500ms",
			},
			wantErr: "config validation failed",
		},
		{
			name: "Zero Rate Limit Requests",
			env: map[string]string{
				"ASSIGNMENTS_SERVER.RATE_LIMIT.ENABLED":  "true",
				"ASSIGNMENTS_SERVER.RATE_LIMIT.REQUESTS": "0",
			},
			wantErr: "config validation failed",
		},
		{
			name:    "Invalid Log Level",
			env:     map[string]string{"ASSIGNMENTS_OBSERVABILITY.LOGGING.LEVEL": "verbose"},
			wantErr: "invalid logging level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	tests := []struct {
		env   string
		level string
		want  string
	}{
		{"production", "", "info"},
		{"development", "", "debug"},
		{"local", "", "debug"},
		{"production", "warn", "warn"},
		{"staging", "error", "error"},
	}

	for _, tt := range tests {
		c := &ObservabilityConfig{Environment: tt.env, Logging: LoggingConfig{Level: tt.level}}
		if got := c.GetLogLevel(); got != tt.want {
			t.Errorf("GetLogLevel(%s, %q) = %q, want %q", tt.env, tt.level, got, tt.want)
		}
	}
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	if !c.HealthCheckEnabled("database") || !c.HealthCheckEnabled("redis") {
		t.Error("default checks should include database and redis")
	}
	if c.HealthCheckEnabled("kafka") {
		t.Error("unknown check should be disabled")
	}

	c.HealthChecks.Enabled = false
	if c.HealthCheckEnabled("database") {
		t.Error("checks should be disabled when health checks are off")
	}
}
