package observability

import (
	"context"
	stderrors "errors"
)

// Shutdown flushes and stops the providers installed by Setup.
type Shutdown func(context.Context) error

// Setup installs the OTLP tracer and meter providers globally when cfg is
// enabled. Otherwise it leaves the global providers untouched and returns a
// Shutdown that does nothing.
func Setup(ctx context.Context, cfg *Config) (Shutdown, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return stderrors.Join(mp.Shutdown(ctx), tp.Shutdown(ctx))
	}, nil
}
