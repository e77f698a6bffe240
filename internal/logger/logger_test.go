package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/assignment-api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

func TestNewLogger_JSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := newLogger(&buf, cfg, NewLoggerService(cfg))

	log.Info().Msg("dropped")
	log.Warn().Str("assignment_id", "7").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected exactly one log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "kept" || entry["assignment_id"] != "7" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["service"] != config.ServiceName || entry["environment"] != "production" {
		t.Errorf("missing service labels: %v", entry)
	}
}

func TestLoggerService_Disabled(t *testing.T) {
	ls := NewLoggerService(config.DefaultObservabilityConfig())
	if ls.GetApplication() != nil {
		t.Error("expected no New Relic application without a license key")
	}

	var nilService *LoggerService
	if nilService.GetApplication() != nil {
		t.Error("nil service must report no application")
	}
	ls.Shutdown()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"unknown": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	tests := map[zerolog.Level]tracelog.LogLevel{
		zerolog.TraceLevel: tracelog.LogLevelTrace,
		zerolog.DebugLevel: tracelog.LogLevelDebug,
		zerolog.InfoLevel:  tracelog.LogLevelInfo,
		zerolog.WarnLevel:  tracelog.LogLevelWarn,
		zerolog.ErrorLevel: tracelog.LogLevelError,
		zerolog.Disabled:   tracelog.LogLevelNone,
	}
	for in, want := range tests {
		if got := GetPgxTraceLogLevel(in); got != want {
			t.Errorf("GetPgxTraceLogLevel(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	l := WithTraceContext(base, nil)
	l.Info().Msg("no trace")

	if bytes.Contains(buf.Bytes(), []byte("trace.id")) {
		t.Errorf("unexpected trace fields: %s", buf.String())
	}
}
