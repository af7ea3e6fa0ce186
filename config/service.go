package config

import (
	"context"
	"fmt"

	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/pipeline"
	"github.com/kbukum/seqkit/validation"
)

var environments = []string{"development", "staging", "production"}

// ServiceConfig contains the settings an application embedding the engine
// loads at startup. Applications extend it by embedding it in their own
// config structs.
//
// Example:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Reports ReportConfig `yaml:"reports" mapstructure:"reports"`
//	}
type ServiceConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Pipeline      pipeline.Config      `yaml:"pipeline" mapstructure:"pipeline"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// GetServiceConfig returns the base ServiceConfig.
// When embedded in a larger config struct, this method is promoted.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	c.Pipeline.ApplyDefaults()

	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
	if c.Observability.Enabled {
		c.Pipeline.Telemetry = true
	}
}

// Validate validates the base configuration fields.
// Override this in embedding structs and call c.ServiceConfig.Validate() first.
func (c *ServiceConfig) Validate() error {
	v := validation.New().
		Required("name", c.Name).
		OneOf("environment", c.Environment, environments...)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("config.pipeline: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// Apply installs the logging and pipeline settings process-wide.
func (c *ServiceConfig) Apply() error {
	logger.Init(&c.Logging)
	return pipeline.Configure(c.Pipeline)
}

// StartTelemetry installs the OTLP providers described by c.Observability and
// rebinds pipeline telemetry to them. The caller owns the returned Shutdown.
// When observability is disabled it does nothing.
func (c *ServiceConfig) StartTelemetry(ctx context.Context) (observability.Shutdown, error) {
	shutdown, err := observability.Setup(ctx, &c.Observability)
	if err != nil {
		return nil, err
	}
	if err := pipeline.Configure(c.Pipeline); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	return shutdown, nil
}

// Load reads, defaults, validates and applies the ServiceConfig of appName.
// Telemetry export is left to StartTelemetry.
func Load(appName string, opts ...LoaderOption) (*ServiceConfig, error) {
	var cfg ServiceConfig
	if err := LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = appName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Apply(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
