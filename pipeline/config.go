package pipeline

import (
	"sync/atomic"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
	"github.com/kbukum/seqkit/observability"
	"github.com/kbukum/seqkit/validation"
)

// Config holds engine-wide settings. The zero value is valid.
type Config struct {
	// Trace wraps every stage's iterator with a debug-level tracing iterator.
	Trace bool `yaml:"trace" mapstructure:"trace"`
	// Telemetry opens an OpenTelemetry span per cursor and records cursor
	// metrics through the global tracer and meter providers.
	Telemetry bool `yaml:"telemetry" mapstructure:"telemetry"`
	// InitialCapacity sizes buffers whose final length cannot be known up front.
	InitialCapacity int `yaml:"initial_capacity" mapstructure:"initial_capacity"`
}

const (
	defaultInitialCapacity = 16
	maxInitialCapacity     = 1 << 20
)

// instrumentationName names the tracer and meter cursors report through.
const instrumentationName = "github.com/kbukum/seqkit/pipeline"

// ApplyDefaults applies default values to the pipeline configuration.
func (c *Config) ApplyDefaults() {
	if c.InitialCapacity == 0 {
		c.InitialCapacity = defaultInitialCapacity
	}
}

// Validate validates the pipeline configuration.
func (c *Config) Validate() error {
	v := validation.For("pipeline").
		Range("initial_capacity", c.InitialCapacity, 0, maxInitialCapacity)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

var (
	activeTracer    atomic.Pointer[logger.Logger]
	activeTelemetry atomic.Pointer[telemetry]
	initialCapacity atomic.Int64
)

func init() {
	initialCapacity.Store(defaultInitialCapacity)
}

// Configure installs cfg as the engine-wide configuration. Iterators already
// opened keep the settings they were created with. Telemetry binds to the
// global providers current at the time of the call, so install them first.
func Configure(cfg Config) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	var tel *telemetry
	if cfg.Telemetry {
		metrics, err := observability.NewCursorMetrics(observability.Meter(instrumentationName))
		if err != nil {
			return errors.InvalidConfig("pipeline telemetry instruments").WithCause(err)
		}
		tel = &telemetry{tracer: observability.Tracer(instrumentationName), metrics: metrics}
	}

	initialCapacity.Store(int64(cfg.InitialCapacity))
	activeTelemetry.Store(tel)
	if cfg.Trace {
		activeTracer.Store(logger.Get("pipeline"))
	} else {
		activeTracer.Store(nil)
	}
	return nil
}

func currentTracer() *logger.Logger {
	return activeTracer.Load()
}

func currentTelemetry() *telemetry {
	return activeTelemetry.Load()
}

// bufferCapacity returns the capacity for a buffer of unknown final size.
func bufferCapacity() int {
	return int(initialCapacity.Load())
}
