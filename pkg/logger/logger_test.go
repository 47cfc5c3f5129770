package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}
	if err := InitWithWriter(nil, false); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf, true); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Named("orchestrator").Warn(context.Background(), "fetch failed",
		String("player", "Mookie Betts"),
		Int("id", 605141),
		Float64("score", 61.5),
		Bool("available", false),
		Duration("took", 1500*time.Millisecond),
		Error(errors.New("timeout")),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	group, ok := entry["orchestrator"].(map[string]any)
	if !ok {
		t.Fatalf("expected named group in %v", entry)
	}
	if group["player"] != "Mookie Betts" || group["available"] != false {
		t.Errorf("unexpected fields: %v", group)
	}
	src, _ := group["source"].(string)
	if !strings.Contains(src, "logger_test.go") {
		t.Errorf("source should point at the caller, got %q", src)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithWriter(&buf, false); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	if err := SetLevelString("warn"); err != nil {
		t.Fatalf("set level: %v", err)
	}
	defer func() { _ = SetLevelString("info") }()

	Get().Info(context.Background(), "hidden")
	Get().Error(context.Background(), "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("level filter not applied: %q", buf.String())
	}
	if err := SetLevelString("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerNop(t *testing.T) {
	l := NewNop().Named("quiet")
	l.Debug(context.Background(), "nothing")
	l.Error(context.Background(), "still nothing", Any("k", 1))
}
