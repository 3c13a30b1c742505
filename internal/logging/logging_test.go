package logging

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")

	logger, err := New(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	logger.Named("order-service").Info("Order created", zap.String("order_id", "abc"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	line := string(data)
	for _, want := range []string{`"timestamp"`, `"msg":"Order created"`, `"order_id":"abc"`, `"logger":"order-service"`} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected log line to contain %s, got %s", want, line)
		}
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	logger, err := New(Config{Level: "chatty", Output: "stderr"})
	if err != nil {
		t.Fatalf("Failed to build logger: %v", err)
	}

	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Expected debug to be disabled")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info to be enabled")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("Expected empty request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Errorf("Expected 'req-42', got %q", got)
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	FromContext(WithRequestID(context.Background(), "req-7"), base).Info("hello")
	FromContext(context.Background(), base).Info("bare")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != "req-7" {
		t.Errorf("Expected request_id 'req-7', got %v", got)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Error("Expected no request_id without one in context")
	}
}
