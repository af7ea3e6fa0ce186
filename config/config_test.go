package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/pipeline"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected service name propagated to logging, got %q", cfg.Logging.ServiceName)
		}
		if cfg.Pipeline.InitialCapacity != 16 {
			t.Errorf("expected default initial capacity 16, got %d", cfg.Pipeline.InitialCapacity)
		}
	})

	t.Run("observability inherits service identity", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		cfg.ApplyDefaults()
		if cfg.Observability.ServiceName != "svc" || cfg.Observability.Environment != "staging" {
			t.Errorf("expected identity propagated, got %+v", cfg.Observability)
		}
		if cfg.Pipeline.Telemetry {
			t.Error("expected telemetry off while observability is disabled")
		}

		cfg = ServiceConfig{Name: "svc", Observability: observability.Config{Enabled: true}}
		cfg.ApplyDefaults()
		if !cfg.Pipeline.Telemetry {
			t.Error("expected enabled observability to turn on pipeline telemetry")
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging in production, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func() ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		cfg.ApplyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		wantErr bool
		errMsg  string
	}{
		{"valid staging", func(*ServiceConfig) {}, false, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, true, "name: is required"},
		{"invalid environment", func(c *ServiceConfig) { c.Environment = "qa" }, true, "environment: must be one of"},
		{"invalid log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, true, "config.logging"},
		{"negative capacity", func(c *ServiceConfig) { c.Pipeline.InitialCapacity = -1 }, true, "pipeline.initial_capacity: must be between"},
		{"sample rate out of range", func(c *ServiceConfig) { c.Observability.SampleRate = 2 }, true, "observability.sample_rate"},
		{"enabled without endpoint", func(c *ServiceConfig) {
			c.Observability.Enabled = true
			c.Observability.Endpoint = ""
		}, true, "observability.endpoint"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestServiceConfigValidateReturnsInvalidConfig(t *testing.T) {
	cfg := ServiceConfig{Environment: "production"}
	cfg.ApplyDefaults()
	err := cfg.Validate()
	if !stderrors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
environment: staging
logging:
  level: warn
  format: json
pipeline:
  trace: true
  initial_capacity: 128
`)

	var cfg ServiceConfig
	if err := LoadConfig("reports", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	want := pipeline.Config{Trace: true, InitialCapacity: 128}
	if diff := cmp.Diff(want, cfg.Pipeline); diff != "" {
		t.Errorf("pipeline config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigObservability(t *testing.T) {
	path := writeConfig(t, `
observability:
  enabled: true
  endpoint: collector:4318
  sample_rate: 0.25
  interval: 5s
`)

	var cfg ServiceConfig
	if err := LoadConfig("reports", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := observability.Config{Enabled: true, Endpoint: "collector:4318", SampleRate: 0.25, Interval: 5 * time.Second}
	if diff := cmp.Diff(want, cfg.Observability); diff != "" {
		t.Errorf("observability config mismatch (-want +got):\n%s", diff)
	}
}

func TestStartTelemetryDisabled(t *testing.T) {
	t.Cleanup(func() { _ = pipeline.Configure(pipeline.Config{}) })
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()

	shutdown, err := cfg.StartTelemetry(context.Background())
	if err != nil {
		t.Fatalf("StartTelemetry failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  initial_capacity: 128
`)
	t.Setenv("PIPELINE_INITIAL_CAPACITY", "512")

	var cfg ServiceConfig
	if err := LoadConfig("reports", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Pipeline.InitialCapacity != 512 {
		t.Errorf("expected env override 512, got %d", cfg.Pipeline.InitialCapacity)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("PIPELINE_TRACE=true\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PIPELINE_TRACE") })

	var cfg ServiceConfig
	if err := LoadConfig("reports", &cfg, WithConfigFile("/nonexistent/reports.yml"), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Pipeline.Trace {
		t.Error("expected trace enabled from .env file")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	// With no config file found, LoadConfig should still succeed (just empty config)
	err := LoadConfig("nonexistent-app", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
environment: production
logging:
  level: error
pipeline:
  initial_capacity: 32
`)
	t.Cleanup(func() { _ = pipeline.Configure(pipeline.Config{}) })

	cfg, err := Load("reports", WithConfigFile(path), WithFileSystem(&RealFileSystem{}))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Name == "" {
		t.Error("expected a name to be set")
	}
	if cfg.Pipeline.InitialCapacity != 32 {
		t.Errorf("expected initial capacity 32, got %d", cfg.Pipeline.InitialCapacity)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := writeConfig(t, `
environment: moon
`)
	_, err := Load("reports", WithConfigFile(path))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "environment") {
		t.Errorf("expected environment error, got %q", err.Error())
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/reports.yml": true,
		"./config.yml":         true,
		"./.env":               true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("reports", LoaderConfig{})
	if files.ConfigFile != "./config/reports.yml" {
		t.Errorf("expected config file at ./config/reports.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected env file at ./.env, got %q", files.EnvFile)
	}
}

func TestResolverPrefersExplicitPaths(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./reports.yml": true}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("reports", LoaderConfig{ConfigFile: "/etc/reports.yml", EnvFile: "/etc/.env"})
	if files.ConfigFile != "/etc/reports.yml" || files.EnvFile != "/etc/.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("PIPELINE_INITIAL_CAPACITY")
	want := []string{
		"pipeline_initial_capacity",
		"pipeline.initial.capacity",
		"pipeline.initial_capacity",
		"pipeline_initial.capacity",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variants mismatch (-want +got):\n%s", diff)
	}
	if got := envKeyVariants("DEBUG"); !cmp.Equal(got, []string{"debug"}) {
		t.Errorf("expected single variant, got %v", got)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/reports.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/reports.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}
