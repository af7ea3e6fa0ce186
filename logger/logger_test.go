package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
	if l.DebugEnabled() {
		t.Error("invalid level should fall back to info")
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv("env-svc")
	if !l.DebugEnabled() {
		t.Error("expected debug level from LOG_LEVEL")
	}
}

func TestJSONOutputCarriesStageAndCursor(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "debug", Format: "json"}, "seq")
	l.WithStage("orderBy").WithCursor("c-1").Debug("sort buffer built", Fields(FieldElements, 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	checks := map[string]any{
		"service":     "seq",
		FieldStage:    "orderBy",
		FieldCursorID: "c-1",
		FieldElements: float64(3),
		"message":     "sort buffer built",
		"level":       "debug",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], want)
		}
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: "json"}, "")
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no debug output at info level, got %q", buf.String())
	}
	l.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info output, got %q", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "debug", Format: "console", NoColor: true}, "")
	l.Warn("careful")
	if !strings.Contains(buf.String(), "[WRN]") {
		t.Errorf("expected console level tag, got %q", buf.String())
	}
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	if l.DebugEnabled() {
		t.Error("nop logger must not enable debug")
	}
	l.Error("dropped")
}

func TestWithErrorAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, &Config{Level: "info", Format: "json"}, "")
	l.WithError(fmt.Errorf("boom")).WithFields(map[string]interface{}{"k": "v"}).Error("failed")
	out := buf.String()
	if !strings.Contains(out, "boom") || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected error and field in output, got %q", out)
	}
}

func TestGlobalLogger(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
	l := NewNop()
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
	// These should not panic
	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected output 'stderr', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"valid console", Config{Level: "debug", Format: "console", Output: "stderr"}, false},
		{"invalid level", Config{Level: "bad", Format: "json", Output: "stdout"}, true},
		{"invalid format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"invalid output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	t.Cleanup(func() { Unregister("my-component") })
	l := NewNop()
	if prev := Register("my-component", l); prev != nil {
		t.Errorf("expected no previous logger, got %v", prev)
	}

	if got := Get("my-component"); got != l {
		t.Error("expected Get to return the registered logger")
	}
	if got := Get("unregistered-component"); got == nil {
		t.Fatal("expected non-nil logger for unregistered component")
	}

	replacement := NewNop()
	if prev := Register("my-component", replacement); prev != l {
		t.Error("expected Register to return the replaced logger")
	}
}

func TestUnregister(t *testing.T) {
	l := NewNop()
	Register("short-lived", l)
	Unregister("short-lived")

	got := Get("short-lived")
	if got == nil || got == l {
		t.Error("expected Get to fall back to the global logger after Unregister")
	}
	Unregister("never-registered")
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "save", "id", 42}, map[string]interface{}{"op": "save", "id": 42}},
		{"odd number of args", []interface{}{"op", "save", "trailing"}, map[string]interface{}{"op": "save"}},
		{"non-string key skipped", []interface{}{123, "value", "key", "val"}, map[string]interface{}{"key": "val"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Fields(tc.input...)
			if len(result) != len(tc.expected) {
				t.Errorf("len = %d, want %d", len(result), len(tc.expected))
			}
			for k, v := range tc.expected {
				if result[k] != v {
					t.Errorf("Fields[%q] = %v, expected %v", k, result[k], v)
				}
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	fields := ErrorFields("collect", fmt.Errorf("something broke"))
	if fields[FieldOperation] != "collect" {
		t.Errorf("expected operation 'collect', got %v", fields[FieldOperation])
	}
	if fields[FieldError] != "something broke" {
		t.Errorf("expected error 'something broke', got %v", fields[FieldError])
	}
	merged := MergeWithError(nil, fmt.Errorf("x"))
	if merged[FieldError] != "x" {
		t.Errorf("expected merged error, got %v", merged[FieldError])
	}
}
